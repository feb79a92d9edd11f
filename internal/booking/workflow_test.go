package booking_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nightbite/restaurant-booking/internal/booking"
	"github.com/nightbite/restaurant-booking/internal/model"
	"github.com/nightbite/restaurant-booking/internal/otp"
	"github.com/nightbite/restaurant-booking/internal/session"
)

type fakeBookings struct {
	created []model.Booking
	fail    error
}

func (f *fakeBookings) Create(_ context.Context, b *model.Booking) error {
	if f.fail != nil {
		return f.fail
	}
	b.ID = uint64(len(f.created) + 1)
	f.created = append(f.created, *b)
	return nil
}

type harness struct {
	flow     *booking.Workflow
	bookings *fakeBookings
	lastCode string
}

func newHarness() *harness {
	h := &harness{bookings: &fakeBookings{}}
	store := session.NewMemoryStore()
	challenges := otp.New(store, func(_, code string) { h.lastCode = code })
	h.flow = booking.NewWorkflow(store, challenges, h.bookings)
	return h
}

func completeIntent() booking.Intent {
	return booking.Intent{
		Email:        "a@b.com",
		RestaurantID: 7,
		Guests:       2,
		When:         "2025-12-12 19:00:00",
	}
}

func TestStartWithMissingGuestsNeedsMoreInfo(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	in := completeIntent()
	in.Guests = 0

	if err := h.flow.Start(ctx, "s1", in); !errors.Is(err, booking.ErrNeedMoreInfo) {
		t.Fatalf("want ErrNeedMoreInfo, got %v", err)
	}
	if h.lastCode != "" {
		t.Fatal("no code should be issued for a partial intent")
	}
	// The partial intent is kept for re-prompting.
	got, found, err := h.flow.Pending(ctx, "s1")
	if err != nil || !found {
		t.Fatalf("partial intent should be stored (found=%v, err=%v)", found, err)
	}
	if got.Email != "a@b.com" || got.Guests != 0 {
		t.Fatalf("stored intent %+v", got)
	}
}

func TestBookingFlowEndToEnd(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	if err := h.flow.Start(ctx, "s1", completeIntent()); err != nil {
		t.Fatal(err)
	}
	if len(h.lastCode) != 6 {
		t.Fatalf("expected a six-digit code, got %q", h.lastCode)
	}

	wrong := "000000"
	if wrong == h.lastCode {
		wrong = "000001"
	}
	if _, err := h.flow.Verify(ctx, "s1", wrong); !errors.Is(err, otp.ErrMismatch) {
		t.Fatalf("want ErrMismatch, got %v", err)
	}
	if _, found, _ := h.flow.Pending(ctx, "s1"); !found {
		t.Fatal("intent must survive a mismatched code")
	}

	b, err := h.flow.Verify(ctx, "s1", h.lastCode)
	if err != nil {
		t.Fatal(err)
	}
	if b.Status != model.BookingConfirmed {
		t.Fatalf("status = %q", b.Status)
	}
	if b.RestaurantID != 7 || b.Guests != 2 || b.BookingDatetime != "2025-12-12 19:00:00" {
		t.Fatalf("booking %+v", b)
	}
	if !strings.HasPrefix(b.OrderRef, "NB") {
		t.Fatalf("order ref %q", b.OrderRef)
	}
	if len(h.bookings.created) != 1 {
		t.Fatalf("expected 1 persisted booking, got %d", len(h.bookings.created))
	}
	if _, found, _ := h.flow.Pending(ctx, "s1"); found {
		t.Fatal("intent must be cleared after confirmation")
	}
	// The code was consumed; a replay finds nothing.
	if _, err := h.flow.Verify(ctx, "s1", h.lastCode); !errors.Is(err, booking.ErrNoPendingIntent) {
		t.Fatalf("want ErrNoPendingIntent after confirmation, got %v", err)
	}
}

func TestVerifyWithoutIntent(t *testing.T) {
	h := newHarness()
	if _, err := h.flow.Verify(context.Background(), "s1", "123456"); !errors.Is(err, booking.ErrNoPendingIntent) {
		t.Fatalf("want ErrNoPendingIntent, got %v", err)
	}
}

func TestOnConfirmedCallbackFires(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	var published *model.Booking
	h.flow.OnConfirmed = func(b model.Booking) { published = &b }

	if err := h.flow.Start(ctx, "s1", completeIntent()); err != nil {
		t.Fatal(err)
	}
	b, err := h.flow.Verify(ctx, "s1", h.lastCode)
	if err != nil {
		t.Fatal(err)
	}
	if published == nil || published.OrderRef != b.OrderRef {
		t.Fatalf("OnConfirmed got %+v, want ref %q", published, b.OrderRef)
	}
}

func TestResendIssuesFreshCode(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	if err := h.flow.Start(ctx, "s1", completeIntent()); err != nil {
		t.Fatal(err)
	}
	first := h.lastCode
	if err := h.flow.Resend(ctx, "s1"); err != nil {
		t.Fatal(err)
	}
	if first != h.lastCode {
		if _, err := h.flow.Verify(ctx, "s1", first); !errors.Is(err, otp.ErrMismatch) {
			t.Fatalf("stale code: want ErrMismatch, got %v", err)
		}
	}
	if _, err := h.flow.Verify(ctx, "s1", h.lastCode); err != nil {
		t.Fatalf("fresh code should verify: %v", err)
	}
}

func TestResendWithoutIntent(t *testing.T) {
	h := newHarness()
	if err := h.flow.Resend(context.Background(), "s1"); !errors.Is(err, booking.ErrNoPendingIntent) {
		t.Fatalf("want ErrNoPendingIntent, got %v", err)
	}
}

func TestCancelClearsIntentAndCode(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	if err := h.flow.Start(ctx, "s1", completeIntent()); err != nil {
		t.Fatal(err)
	}
	if err := h.flow.Cancel(ctx, "s1"); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := h.flow.Pending(ctx, "s1"); found {
		t.Fatal("intent should be gone after cancel")
	}
	if _, err := h.flow.Verify(ctx, "s1", h.lastCode); !errors.Is(err, booking.ErrNoPendingIntent) {
		t.Fatalf("want ErrNoPendingIntent after cancel, got %v", err)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	if err := h.flow.Start(ctx, "s1", completeIntent()); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := h.flow.Pending(ctx, "s2"); found {
		t.Fatal("another session must not see the intent")
	}
	if _, err := h.flow.Verify(ctx, "s2", h.lastCode); !errors.Is(err, booking.ErrNoPendingIntent) {
		t.Fatalf("want ErrNoPendingIntent for foreign session, got %v", err)
	}
}

func TestComposeWhen(t *testing.T) {
	cases := []struct {
		date, timeOfDay, fallback, want string
	}{
		{"2025-12-12", "19:00", "", "2025-12-12 19:00:00"},
		{"2025-12-12", "19:00:30", "", "2025-12-12 19:00:30"},
		{"", "", "2025-12-12 19:00:00", "2025-12-12 19:00:00"},
		{"2025-12-12", "", "fallback wins", "fallback wins"},
		{" 2025-12-12 ", " 9:30 ", "", "2025-12-12 9:30:00"},
		{"", "", "  ", ""},
	}
	for _, tc := range cases {
		if got := booking.ComposeWhen(tc.date, tc.timeOfDay, tc.fallback); got != tc.want {
			t.Errorf("ComposeWhen(%q, %q, %q) = %q, want %q", tc.date, tc.timeOfDay, tc.fallback, got, tc.want)
		}
	}
}

func TestNewOrderRefFormat(t *testing.T) {
	at := time.Date(2025, 12, 12, 19, 0, 0, 0, time.UTC)
	ref, err := booking.NewOrderRef(at)
	if err != nil {
		t.Fatal(err)
	}
	prefix := "NB" + "1765566000" // unix seconds of the fixed time
	if !strings.HasPrefix(ref, prefix) {
		t.Fatalf("ref %q should start with %q", ref, prefix)
	}
	suffix := strings.TrimPrefix(ref, prefix)
	if len(suffix) != 3 || suffix[0] == '0' {
		t.Fatalf("suffix %q should be three digits in [100,999]", suffix)
	}
}
