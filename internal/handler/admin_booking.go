package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nightbite/restaurant-booking/internal/model"
	"github.com/nightbite/restaurant-booking/internal/repository"
)

// ListBookings returns all bookings, newest first.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	items, err := h.Bookings.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": items})
}

// ConfirmBooking moves one booking to confirmed.
func (h *AdminHandler) ConfirmBooking(c echo.Context) error {
	return h.setBookingStatus(c, model.BookingConfirmed)
}

// PendBooking moves one booking back to pending.
func (h *AdminHandler) PendBooking(c echo.Context) error {
	return h.setBookingStatus(c, model.BookingPending)
}

// CancelBooking moves one booking to cancelled. The record stays for the
// admin table; only ClearBookings removes rows.
func (h *AdminHandler) CancelBooking(c echo.Context) error {
	return h.setBookingStatus(c, model.BookingCancelled)
}

func (h *AdminHandler) setBookingStatus(c echo.Context, status string) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	if err := h.Bookings.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update booking failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": status})
}

type clearBookingsReq struct {
	Confirm string `json:"confirm" form:"confirm"`
}

// ClearBookings deletes every booking. The body must carry confirm=confirm;
// anything else leaves the table untouched.
func (h *AdminHandler) ClearBookings(c echo.Context) error {
	var req clearBookingsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Confirm != "confirm" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "confirmation required"})
	}

	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	n, err := h.Bookings.DeleteAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "clear bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": n})
}
