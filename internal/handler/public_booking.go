package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nightbite/restaurant-booking/internal/booking"
	"github.com/nightbite/restaurant-booking/internal/middleware"
	"github.com/nightbite/restaurant-booking/internal/model"
	"github.com/nightbite/restaurant-booking/internal/otp"
	"github.com/nightbite/restaurant-booking/internal/repository"
)

// BookingHandler drives the public, session-scoped booking flow plus the
// internal path that records a booking as pending without verification.
type BookingHandler struct {
	Flow     *booking.Workflow
	Bookings *repository.BookingRepo
}

func NewBookingHandler(w *booking.Workflow, b *repository.BookingRepo) *BookingHandler {
	return &BookingHandler{Flow: w, Bookings: b}
}

type bookingStartReq struct {
	Email        string `json:"email"`
	RestaurantID uint64 `json:"restaurant_id"`
	Guests       int    `json:"number_of_guests"`
	Date         string `json:"booking_date"`
	Time         string `json:"booking_time"`
	Datetime     string `json:"booking_datetime"`
}

type bookingVerifyReq struct {
	Code string `json:"code"`
}

// Start stores the booking intent and, when it is complete, emails a
// verification code. A partial intent is kept and reported as
// need_more_info so the client re-prompts for the missing fields.
func (h *BookingHandler) Start(c echo.Context) error {
	var req bookingStartReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in := booking.Intent{
		Email:        req.Email,
		RestaurantID: req.RestaurantID,
		Guests:       req.Guests,
		When:         booking.ComposeWhen(req.Date, req.Time, req.Datetime),
	}

	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	sid := middleware.SessionID(c)
	if err := h.Flow.Start(ctx, sid, in); err != nil {
		if errors.Is(err, booking.ErrNeedMoreInfo) {
			return c.JSON(http.StatusOK, echo.Map{"status": "need_more_info", "intent": in})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "start booking failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "pending_verification", "email": in.Email})
}

// State reports where the session's booking flow stands, for rendering the
// confirm step after a reload.
func (h *BookingHandler) State(c echo.Context) error {
	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	in, found, err := h.Flow.Pending(ctx, middleware.SessionID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load state failed"})
	}
	if !found {
		return c.JSON(http.StatusOK, echo.Map{"status": "empty"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "pending_verification", "intent": in})
}

// Verify consumes the emailed code. On success the booking is persisted as
// confirmed; on a wrong or expired code the intent survives for a retry.
func (h *BookingHandler) Verify(c echo.Context) error {
	var req bookingVerifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Code) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}

	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	b, err := h.Flow.Verify(ctx, middleware.SessionID(c), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNoPendingIntent):
			return c.JSON(http.StatusConflict, echo.Map{"error": "no_pending_booking"})
		case errors.Is(err, otp.ErrExpired):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "code_expired"})
		case errors.Is(err, otp.ErrMismatch):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "code_mismatch"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verify failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "confirmed", "booking": b})
}

// Resend re-issues the code for the stored intent.
func (h *BookingHandler) Resend(c echo.Context) error {
	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	if err := h.Flow.Resend(ctx, middleware.SessionID(c)); err != nil {
		if errors.Is(err, booking.ErrNoPendingIntent) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "no_pending_booking"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resend failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "code_sent"})
}

// Cancel abandons the flow: intent and outstanding code are cleared.
func (h *BookingHandler) Cancel(c echo.Context) error {
	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	if err := h.Flow.Cancel(ctx, middleware.SessionID(c)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "cancelled"})
}

// CreatePending is the internal path: it records a booking as pending with
// no verification step, for bookings taken over the phone or at the door.
func (h *BookingHandler) CreatePending(c echo.Context) error {
	var req bookingStartReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	when := booking.ComposeWhen(req.Date, req.Time, req.Datetime)
	if req.RestaurantID == 0 || req.Guests <= 0 || when == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant_id, number_of_guests and datetime required"})
	}
	ref, err := booking.NewOrderRef(time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	b := model.Booking{
		OrderRef:        ref,
		RestaurantID:    req.RestaurantID,
		Guests:          req.Guests,
		BookingDatetime: when,
		Status:          model.BookingPending,
	}
	if err := h.Bookings.Create(ctx, &b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	return c.JSON(http.StatusCreated, b)
}
