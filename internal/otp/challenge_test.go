package otp_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nightbite/restaurant-booking/internal/otp"
	"github.com/nightbite/restaurant-booking/internal/session"
)

type delivery struct {
	subject string
	code    string
}

func newChallenge(t *testing.T) (*otp.Challenge, *[]delivery, func(time.Duration)) {
	t.Helper()
	var sent []delivery
	ch := otp.New(session.NewMemoryStore(), func(subject, code string) {
		sent = append(sent, delivery{subject: subject, code: code})
	})
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	ch.SetClock(func() time.Time { return now })
	advance := func(d time.Duration) { now = now.Add(d) }
	return ch, &sent, advance
}

func TestIssueProducesSixDigitCodeAndNotifies(t *testing.T) {
	ch, sent, _ := newChallenge(t)
	code, err := ch.Issue(context.Background(), "s1", otp.FlowBooking, "a@b.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(code) != 6 {
		t.Fatalf("code %q is not six digits", code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("code %q contains a non-digit", code)
		}
	}
	if len(*sent) != 1 || (*sent)[0].code != code || (*sent)[0].subject != "a@b.com" {
		t.Fatalf("notify got %v, want code %q for a@b.com", *sent, code)
	}
}

func TestVerifySucceedsExactlyOnce(t *testing.T) {
	ch, _, _ := newChallenge(t)
	ctx := context.Background()
	code, err := ch.Issue(ctx, "s1", otp.FlowBooking, "a@b.com")
	if err != nil {
		t.Fatal(err)
	}

	subject, err := ch.Verify(ctx, "s1", otp.FlowBooking, code)
	if err != nil {
		t.Fatal(err)
	}
	if subject != "a@b.com" {
		t.Fatalf("subject = %q", subject)
	}

	// The same correct code a second time finds no challenge.
	if _, err := ch.Verify(ctx, "s1", otp.FlowBooking, code); !errors.Is(err, otp.ErrExpired) {
		t.Fatalf("second verify: want ErrExpired, got %v", err)
	}
}

func TestVerifyMismatchKeepsChallengeAlive(t *testing.T) {
	ch, _, _ := newChallenge(t)
	ctx := context.Background()
	code, _ := ch.Issue(ctx, "s1", otp.FlowBooking, "a@b.com")

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if _, err := ch.Verify(ctx, "s1", otp.FlowBooking, wrong); !errors.Is(err, otp.ErrMismatch) {
		t.Fatalf("want ErrMismatch, got %v", err)
	}
	if _, err := ch.Verify(ctx, "s1", otp.FlowBooking, code); err != nil {
		t.Fatalf("correct code after a mismatch should still verify: %v", err)
	}
}

func TestVerifyTrimsCandidate(t *testing.T) {
	ch, _, _ := newChallenge(t)
	ctx := context.Background()
	code, _ := ch.Issue(ctx, "s1", otp.FlowBooking, "a@b.com")
	if _, err := ch.Verify(ctx, "s1", otp.FlowBooking, "  "+code+"\n"); err != nil {
		t.Fatalf("whitespace around the code should be ignored: %v", err)
	}
}

func TestVerifyExpiresAfterFiveMinutes(t *testing.T) {
	ch, _, advance := newChallenge(t)
	ctx := context.Background()
	code, _ := ch.Issue(ctx, "s1", otp.FlowBooking, "a@b.com")

	advance(otp.TTL + time.Second)
	if _, err := ch.Verify(ctx, "s1", otp.FlowBooking, code); !errors.Is(err, otp.ErrExpired) {
		t.Fatalf("want ErrExpired, got %v", err)
	}
}

func TestLatestIssuanceWins(t *testing.T) {
	ch, _, _ := newChallenge(t)
	ctx := context.Background()
	first, _ := ch.Issue(ctx, "s1", otp.FlowAdminLogin, "admin@b.com")
	second, err := ch.Resend(ctx, "s1", otp.FlowAdminLogin, "admin@b.com")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		if _, err := ch.Verify(ctx, "s1", otp.FlowAdminLogin, first); !errors.Is(err, otp.ErrMismatch) {
			t.Fatalf("stale code: want ErrMismatch, got %v", err)
		}
	}
	if _, err := ch.Verify(ctx, "s1", otp.FlowAdminLogin, second); err != nil {
		t.Fatalf("latest code should verify: %v", err)
	}
}

func TestFlowsAreIsolated(t *testing.T) {
	ch, _, _ := newChallenge(t)
	ctx := context.Background()
	bookingCode, _ := ch.Issue(ctx, "s1", otp.FlowBooking, "a@b.com")
	adminCode, _ := ch.Issue(ctx, "s1", otp.FlowAdminLogin, "admin@b.com")

	if bookingCode != adminCode {
		if _, err := ch.Verify(ctx, "s1", otp.FlowAdminLogin, bookingCode); !errors.Is(err, otp.ErrMismatch) {
			t.Fatalf("booking code must not complete an admin login, got %v", err)
		}
	}
	if _, err := ch.Verify(ctx, "s1", otp.FlowBooking, bookingCode); err != nil {
		t.Fatalf("booking flow untouched by admin issuance: %v", err)
	}
}

func TestClearDropsChallenge(t *testing.T) {
	ch, _, _ := newChallenge(t)
	ctx := context.Background()
	code, _ := ch.Issue(ctx, "s1", otp.FlowBooking, "a@b.com")
	if err := ch.Clear(ctx, "s1", otp.FlowBooking); err != nil {
		t.Fatal(err)
	}
	if _, err := ch.Verify(ctx, "s1", otp.FlowBooking, code); !errors.Is(err, otp.ErrExpired) {
		t.Fatalf("want ErrExpired after clear, got %v", err)
	}
}
