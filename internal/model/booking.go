package model

import "time"

// Booking statuses. A booking created by the public, OTP-verified flow goes
// straight to confirmed; the internal path creates it pending and an admin
// moves it between states afterwards.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking records a table reservation. The scheduled datetime is stored as
// an opaque "YYYY-MM-DD HH:MM:SS" string; no timezone interpretation is
// performed anywhere in the service.
//
// Fields:
//
//	ID              – primary key identifier.
//	OrderRef        – generated order reference, unique per booking.
//	RestaurantID    – restaurant being booked.
//	Guests          – number of guests, positive.
//	BookingDatetime – scheduled date and time as entered.
//	Status          – pending, confirmed or cancelled.
//	CreatedAt       – creation timestamp.
type Booking struct {
	ID              uint64    `json:"id"`               // bookings.id
	OrderRef        string    `json:"order_id"`         // bookings.order_id
	RestaurantID    uint64    `json:"restaurant_id"`    // bookings.restaurant_id
	Guests          int       `json:"number_of_guests"` // bookings.number_of_guests
	BookingDatetime string    `json:"booking_datetime"` // bookings.booking_datetime
	Status          string    `json:"status"`           // bookings.status
	CreatedAt       time.Time `json:"created_at"`       // bookings.created_at
}
