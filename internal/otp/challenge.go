// Package otp implements the emailed one-time passcode gate used by both the
// admin login and the public booking flow. A challenge lives in the
// visitor's session, expires five minutes after issuance and can be consumed
// by exactly one successful verification.
package otp

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/nightbite/restaurant-booking/internal/session"
)

// TTL is how long an issued code stays valid.
const TTL = 300 * time.Second

// Flow names namespace challenges inside one session so an in-progress admin
// login cannot be completed with a booking code and vice versa.
const (
	FlowAdminLogin = "admin"
	FlowBooking    = "booking"
)

var (
	// ErrExpired is returned when no active challenge exists for the
	// session+flow, or the stored one has passed its expiry. A challenge
	// already consumed by a successful verification also reports ErrExpired.
	ErrExpired = errors.New("otp: challenge expired")
	// ErrMismatch is returned when the candidate differs from the stored
	// code. The challenge stays active and its expiry is not extended.
	ErrMismatch = errors.New("otp: code mismatch")
)

// challengeRecord is the JSON blob kept in the session store.
type challengeRecord struct {
	Code      string `json:"code"`
	Subject   string `json:"subject"`
	ExpiresAt int64  `json:"expires_at"` // unix seconds
}

// Challenge issues and verifies one-time codes against a session store.
// Notify delivers the code out of band; it is fire-and-forget and its
// failures never invalidate an issued code. Now is injectable for tests.
type Challenge struct {
	store  session.Store
	notify func(subject, code string)
	now    func() time.Time
}

// New returns a Challenge bound to the given store. notify may be nil when
// no delivery is wanted (tests).
func New(store session.Store, notify func(subject, code string)) *Challenge {
	return &Challenge{store: store, notify: notify, now: time.Now}
}

// SetClock replaces the challenge's time source. Intended for tests.
func (ch *Challenge) SetClock(now func() time.Time) { ch.now = now }

// Issue generates a uniformly random six-digit code for the subject, stores
// it under the session+flow with a five-minute expiry, triggers best-effort
// delivery and returns the code. Any previous challenge for the same
// session+flow is overwritten: the latest issuance wins.
func (ch *Challenge) Issue(ctx context.Context, sessionID, flow, subject string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	rec := challengeRecord{
		Code:      code,
		Subject:   subject,
		ExpiresAt: ch.now().Add(TTL).Unix(),
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	if err := ch.store.Set(ctx, sessionID, storeKey(flow), raw, TTL); err != nil {
		return "", err
	}
	if ch.notify != nil {
		ch.notify(subject, code)
	}
	return code, nil
}

// Verify checks a candidate against the stored challenge. The candidate is
// trimmed and compared as a string so leading zeros survive. On success the
// challenge is cleared and the subject it was issued for is returned; a
// second verification with the same code then fails with ErrExpired.
func (ch *Challenge) Verify(ctx context.Context, sessionID, flow, candidate string) (string, error) {
	raw, found, err := ch.store.Get(ctx, sessionID, storeKey(flow))
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrExpired
	}
	var rec challengeRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return "", ErrExpired
	}
	if ch.now().Unix() > rec.ExpiresAt {
		_ = ch.store.Delete(ctx, sessionID, storeKey(flow))
		return "", ErrExpired
	}
	if strings.TrimSpace(candidate) != rec.Code {
		return "", ErrMismatch
	}
	if err := ch.store.Delete(ctx, sessionID, storeKey(flow)); err != nil {
		return "", err
	}
	return rec.Subject, nil
}

// Resend re-issues a code for the subject, overwriting any unexpired
// challenge for that session+flow.
func (ch *Challenge) Resend(ctx context.Context, sessionID, flow, subject string) (string, error) {
	return ch.Issue(ctx, sessionID, flow, subject)
}

// Clear drops any challenge for the session+flow.
func (ch *Challenge) Clear(ctx context.Context, sessionID, flow string) error {
	return ch.store.Delete(ctx, sessionID, storeKey(flow))
}

func storeKey(flow string) string { return "otp:" + flow }

// generateCode draws a uniform value in [0, 999999] and zero-pads it to six
// digits.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
