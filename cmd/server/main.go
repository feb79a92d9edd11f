package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/nightbite/restaurant-booking/internal/booking"
	"github.com/nightbite/restaurant-booking/internal/catalog"
	"github.com/nightbite/restaurant-booking/internal/config"
	"github.com/nightbite/restaurant-booking/internal/database"
	"github.com/nightbite/restaurant-booking/internal/handler"
	"github.com/nightbite/restaurant-booking/internal/mailer"
	"github.com/nightbite/restaurant-booking/internal/middleware"
	"github.com/nightbite/restaurant-booking/internal/model"
	"github.com/nightbite/restaurant-booking/internal/otp"
	"github.com/nightbite/restaurant-booking/internal/queue"
	"github.com/nightbite/restaurant-booking/internal/repository"
	"github.com/nightbite/restaurant-booking/internal/router"
	queue_publisher "github.com/nightbite/restaurant-booking/internal/service"
	"github.com/nightbite/restaurant-booking/internal/session"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs sessions, the response cache and the rate limiter. When it
	// is unreachable the service still comes up: sessions fall back to an
	// in-process store and the middlewares become passthroughs.
	rdb := config.NewRedisClient()
	var sessions session.Store
	if rdb != nil {
		sessions = session.NewRedisStore(rdb, "sess")
	} else {
		log.Println("redis unavailable, using in-memory session store")
		sessions = session.NewMemoryStore()
	}

	// OTP emails go through the outbound queue; the consumer below delivers
	// them over SMTP. A failed publish never blocks issuing the code.
	notify := func(subject, code string) {
		ev := queue.EmailRequestedEvent{
			To:      subject,
			Subject: "Your NightBite verification code",
			Text:    fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code),
		}
		if err := queue_publisher.PublishEmailRequested(context.Background(), ev); err != nil {
			log.Printf("otp email publish failed for %s: %v", subject, err)
		}
	}
	challenges := otp.New(sessions, notify)

	restaurants := repository.NewRestaurantRepo(db)
	menu := repository.NewMenuRepo(db)
	events := repository.NewEventRepo(db)
	bookings := repository.NewBookingRepo(db)
	users := repository.NewUserRepo(db)

	catalogSvc := catalog.NewService(restaurants, menu)

	flow := booking.NewWorkflow(sessions, challenges, bookings)
	flow.OnConfirmed = func(b model.Booking) {
		ev := queue.BookingConfirmedEvent{
			BookingID:       b.ID,
			OrderRef:        b.OrderRef,
			RestaurantID:    b.RestaurantID,
			Guests:          b.Guests,
			BookingDatetime: b.BookingDatetime,
			ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
		}
		if err := queue_publisher.PublishBookingConfirmed(context.Background(), ev); err != nil {
			log.Printf("booking.confirmed publish failed for %s: %v", b.OrderRef, err)
		}
	}

	go func() {
		if err := queue.StartEmailConsumer(mailer.NewSMTP(cfg.SMTP)); err != nil {
			log.Printf("email consumer stopped: %v", err)
		}
	}()
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAdmin(e, handler.NewAdminAuthHandler(cfg, users, challenges),
		handler.NewAdminHandler(restaurants, menu, events, bookings), cfg.JWTSecret, limiter)
	router.RegisterPublic(e, handler.NewPublicHandler(catalogSvc, events),
		handler.NewBookingHandler(flow, bookings), cache, limiter)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
