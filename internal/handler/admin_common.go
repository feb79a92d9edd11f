package handler

import (
	"context"
	"time"

	"github.com/nightbite/restaurant-booking/internal/repository"
)

// AdminHandler bundles the repositories behind the admin CRUD surface. All
// routes using it sit behind JWT auth with the ADMIN role.
type AdminHandler struct {
	Restaurants *repository.RestaurantRepo
	Menu        *repository.MenuRepo
	Events      *repository.EventRepo
	Bookings    *repository.BookingRepo
}

func NewAdminHandler(r *repository.RestaurantRepo, m *repository.MenuRepo, e *repository.EventRepo, b *repository.BookingRepo) *AdminHandler {
	return &AdminHandler{Restaurants: r, Menu: m, Events: e, Bookings: b}
}

// dbCtx derives the 5 second deadline every handler puts on database calls.
func dbCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, 5*time.Second)
}
