package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nightbite/restaurant-booking/internal/booking"
	"github.com/nightbite/restaurant-booking/internal/model"
	"github.com/nightbite/restaurant-booking/internal/repository"
)

type eventReq struct {
	RestaurantID uint64 `json:"restaurant_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Date         string `json:"event_date"`
	Time         string `json:"event_time"`
	Datetime     string `json:"event_datetime"`
}

// AddEvent creates an event under an existing restaurant. The datetime comes
// either as separate date/time parts or pre-composed.
func (h *AdminHandler) AddEvent(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	when := booking.ComposeWhen(req.Date, req.Time, req.Datetime)
	if req.RestaurantID == 0 || req.Name == "" || when == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant_id, name and datetime required"})
	}

	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	if _, err := h.Restaurants.Get(ctx, req.RestaurantID); err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load restaurant failed"})
	}

	ev := &model.Event{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  strings.TrimSpace(req.Description),
		Datetime:     when,
	}
	if err := h.Events.Create(ctx, ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	return c.JSON(http.StatusCreated, ev)
}

// DeleteEvent removes one event by id.
func (h *AdminHandler) DeleteEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	if err := h.Events.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete event failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
