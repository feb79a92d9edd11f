// Package booking orchestrates the public, OTP-verified booking flow. Per
// session the flow moves Empty → PendingVerification → Confirmed, with
// Cancelled and Expired as side exits. The unconfirmed intent lives only in
// the session store and is cleared on success, cancel or session expiry.
package booking

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/nightbite/restaurant-booking/internal/model"
	"github.com/nightbite/restaurant-booking/internal/otp"
	"github.com/nightbite/restaurant-booking/internal/session"
)

const (
	intentKey = "booking:intent"
	// intentTTL bounds how long a half-finished booking survives in the
	// session store. Matches the session cookie lifetime.
	intentTTL = 24 * time.Hour
)

var (
	// ErrNeedMoreInfo signals that the intent is incomplete. The partial
	// intent has been stored so the caller can re-prompt for the missing
	// fields instead of starting over.
	ErrNeedMoreInfo = errors.New("booking: need more info")
	// ErrNoPendingIntent is returned by Verify and Resend when the session
	// holds no booking intent.
	ErrNoPendingIntent = errors.New("booking: no pending intent")
)

// Intent is the transient, unconfirmed booking request held in session
// state pending OTP verification. Zero-valued fields are the ones still
// missing.
type Intent struct {
	Email        string `json:"email,omitempty"`
	RestaurantID uint64 `json:"restaurant_id,omitempty"`
	Guests       int    `json:"guests,omitempty"`
	When         string `json:"booking_datetime,omitempty"`
}

func (in Intent) complete() bool {
	return in.Email != "" && in.RestaurantID != 0 && in.Guests > 0 && in.When != ""
}

// Store is the slice of the persistence layer the workflow needs.
// *repository.BookingRepo satisfies it; tests supply fakes.
type Store interface {
	Create(ctx context.Context, b *model.Booking) error
}

// Workflow drives one session's booking from intent to persisted record.
// OnConfirmed, when set, is invoked best-effort after a booking is stored;
// its failures are the publisher's problem, never the caller's.
type Workflow struct {
	sessions    session.Store
	challenges  *otp.Challenge
	bookings    Store
	now         func() time.Time
	OnConfirmed func(b model.Booking)
}

// NewWorkflow wires the workflow's collaborators.
func NewWorkflow(sessions session.Store, challenges *otp.Challenge, bookings Store) *Workflow {
	return &Workflow{sessions: sessions, challenges: challenges, bookings: bookings, now: time.Now}
}

// SetClock replaces the workflow's time source. Intended for tests.
func (w *Workflow) SetClock(now func() time.Time) { w.now = now }

// Start validates the intent and, when complete, stores it and issues a
// verification code to the guest's email. An incomplete intent is stored
// as-is and ErrNeedMoreInfo is returned so the caller re-prompts; nothing
// about an incomplete intent is an error condition worth aborting for.
func (w *Workflow) Start(ctx context.Context, sessionID string, in Intent) error {
	in.Email = strings.TrimSpace(in.Email)
	in.When = strings.TrimSpace(in.When)
	if err := w.saveIntent(ctx, sessionID, in); err != nil {
		return err
	}
	if !in.complete() {
		return ErrNeedMoreInfo
	}
	_, err := w.challenges.Issue(ctx, sessionID, otp.FlowBooking, in.Email)
	return err
}

// Verify checks the candidate code and, on success, persists the booking as
// confirmed and clears the session state. On otp.ErrExpired or
// otp.ErrMismatch the intent is retained so the guest can retry or ask for a
// resend.
func (w *Workflow) Verify(ctx context.Context, sessionID, code string) (*model.Booking, error) {
	in, found, err := w.intent(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoPendingIntent
	}
	if _, err := w.challenges.Verify(ctx, sessionID, otp.FlowBooking, code); err != nil {
		return nil, err
	}
	ref, err := w.orderRef()
	if err != nil {
		return nil, err
	}
	b := model.Booking{
		OrderRef:        ref,
		RestaurantID:    in.RestaurantID,
		Guests:          in.Guests,
		BookingDatetime: in.When,
		Status:          model.BookingConfirmed,
	}
	// The challenge is already consumed; clear the intent whether or not
	// the insert succeeds, matching the one-shot nature of the code.
	defer func() { _ = w.Cancel(ctx, sessionID) }()
	if err := w.bookings.Create(ctx, &b); err != nil {
		return nil, err
	}
	if w.OnConfirmed != nil {
		w.OnConfirmed(b)
	}
	return &b, nil
}

// Resend re-issues a code for the stored intent's email without altering
// the intent.
func (w *Workflow) Resend(ctx context.Context, sessionID string) error {
	in, found, err := w.intent(ctx, sessionID)
	if err != nil {
		return err
	}
	if !found || in.Email == "" {
		return ErrNoPendingIntent
	}
	_, err = w.challenges.Resend(ctx, sessionID, otp.FlowBooking, in.Email)
	return err
}

// Cancel clears the intent and any outstanding challenge unconditionally.
func (w *Workflow) Cancel(ctx context.Context, sessionID string) error {
	if err := w.challenges.Clear(ctx, sessionID, otp.FlowBooking); err != nil {
		return err
	}
	return w.sessions.Delete(ctx, sessionID, intentKey)
}

// Pending returns the stored intent, if any, for rendering the confirm
// step.
func (w *Workflow) Pending(ctx context.Context, sessionID string) (Intent, bool, error) {
	return w.intent(ctx, sessionID)
}

func (w *Workflow) saveIntent(ctx context.Context, sessionID string, in Intent) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return w.sessions.Set(ctx, sessionID, intentKey, raw, intentTTL)
}

func (w *Workflow) intent(ctx context.Context, sessionID string) (Intent, bool, error) {
	raw, found, err := w.sessions.Get(ctx, sessionID, intentKey)
	if err != nil || !found {
		return Intent{}, false, err
	}
	var in Intent
	if err := json.Unmarshal(raw, &in); err != nil {
		return Intent{}, false, err
	}
	return in, true, nil
}

func (w *Workflow) orderRef() (string, error) {
	return NewOrderRef(w.now())
}

// NewOrderRef builds a reference like NB1765560000123: prefix, unix seconds,
// random 3-digit suffix. Uniqueness is best-effort; the order_id column's
// unique index is the real guarantee.
func NewOrderRef(at time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("NB%d%d", at.Unix(), 100+n.Int64()), nil
}

// ComposeWhen builds the booking datetime from separate date and time parts,
// falling back to a pre-composed string. A bare "HH:MM" time gains a ":00"
// seconds suffix. The result is an opaque local string; no timezone handling
// is performed.
func ComposeWhen(date, timeOfDay, fallback string) string {
	d := strings.TrimSpace(date)
	t := strings.TrimSpace(timeOfDay)
	if d != "" && t != "" {
		if len(t) <= 5 {
			t += ":00"
		}
		return d + " " + t
	}
	return strings.TrimSpace(fallback)
}
