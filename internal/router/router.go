package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nightbite/restaurant-booking/internal/handler"
	"github.com/nightbite/restaurant-booking/internal/middleware"
)

// RegisterRoutes registers routes that need neither a session nor a token.
// Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAdmin wires the admin surface. The auth endpoints ride the session
// cookie (the OTP challenge is session-scoped) and are rate limited; the
// CRUD endpoints require a valid access token with the ADMIN role.
func RegisterAdmin(e *echo.Echo, auth *handler.AdminAuthHandler, admin *handler.AdminHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	ag := e.Group("/v1/admin/auth")
	ag.Use(middleware.EnsureSession())
	ag.POST("/login", auth.Login, limiter)
	ag.POST("/verify", auth.VerifyOTP, limiter)
	ag.POST("/resend", auth.ResendOTP, limiter)

	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))

	g.GET("/dashboard", admin.Dashboard)

	g.GET("/restaurants", admin.ListRestaurants)
	g.POST("/restaurants", admin.CreateRestaurant)
	g.PUT("/restaurants/:id", admin.UpdateRestaurant)
	g.DELETE("/restaurants/:id", admin.DeleteRestaurant)

	g.POST("/menu-items", admin.AddMenuItem)
	g.DELETE("/menu-items/:id", admin.DeleteMenuItem)

	g.POST("/events", admin.AddEvent)
	g.DELETE("/events/:id", admin.DeleteEvent)

	g.GET("/bookings", admin.ListBookings)
	g.POST("/bookings/:id/confirm", admin.ConfirmBooking)
	g.POST("/bookings/:id/pend", admin.PendBooking)
	g.POST("/bookings/:id/cancel", admin.CancelBooking)
	g.POST("/bookings/clear", admin.ClearBookings)
}
