package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nightbite/restaurant-booking/internal/handler"
	"github.com/nightbite/restaurant-booking/internal/middleware"
)

// RegisterPublic wires the guest surface. Every route carries the session
// cookie so the booking flow can key its state; catalog GETs go through the
// response cache and the OTP-bearing booking endpoints through the rate
// limiter. Either middleware may be a passthrough when Redis is down.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, b *handler.BookingHandler, cache, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(middleware.EnsureSession())

	g.GET("/restaurants", p.ListRestaurants, cache)
	g.GET("/restaurants/search", p.Search, cache)
	g.GET("/restaurants/:id", p.Details, cache)
	g.GET("/events", p.ListEvents, cache)
	g.POST("/restaurants/:id/rating", p.Rate)

	bg := g.Group("/booking")
	bg.POST("/start", b.Start, limiter)
	bg.GET("/state", b.State)
	bg.POST("/verify", b.Verify, limiter)
	bg.POST("/resend", b.Resend, limiter)
	bg.POST("/cancel", b.Cancel)
	bg.POST("/pending", b.CreatePending)
}
