// Package queue defines message payloads exchanged over the message broker
// and the background consumers that process them.
package queue

// EmailRequestedEvent is published whenever the application wants an email
// delivered. Sending happens asynchronously in the consumer so request
// handlers never block on the SMTP server, and a broker or transport failure
// never invalidates the action that requested the mail.
type EmailRequestedEvent struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
}

// BookingConfirmedEvent is published when a booking passes OTP verification
// and is persisted. It carries enough information for downstream consumers
// to log or notify without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID       uint64 `json:"booking_id"`
	OrderRef        string `json:"order_ref"`
	RestaurantID    uint64 `json:"restaurant_id"`
	Guests          int    `json:"guests"`
	BookingDatetime string `json:"booking_datetime"`
	ConfirmedAt     string `json:"confirmed_at"`
}
