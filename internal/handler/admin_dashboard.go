package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Dashboard aggregates everything the admin landing page shows in one
// response: restaurants, menu items, events and bookings.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	restaurants, err := h.Restaurants.List(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list restaurants failed"})
	}
	menu, err := h.Menu.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list menu failed"})
	}
	events, err := h.Events.ListWithRestaurant(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list events failed"})
	}
	bookings, err := h.Bookings.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"restaurants": restaurants,
		"menu_items":  menu,
		"events":      events,
		"bookings":    bookings,
	})
}
