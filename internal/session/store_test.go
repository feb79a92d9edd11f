package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/nightbite/restaurant-booking/internal/session"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := session.NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "s1", "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	got, found, err := s.Get(ctx, "s1", "k")
	if err != nil || !found {
		t.Fatalf("found=%v err=%v", found, err)
	}
	if string(got) != "v" {
		t.Fatalf("got %q", got)
	}

	// Keys are scoped by session id.
	if _, found, _ := s.Get(ctx, "s2", "k"); found {
		t.Fatal("value leaked across sessions")
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	s := session.NewMemoryStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return now })
	ctx := context.Background()

	if err := s.Set(ctx, "s1", "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := s.Get(ctx, "s1", "k"); !found {
		t.Fatal("value should exist before expiry")
	}

	now = now.Add(time.Minute + time.Second)
	if _, found, _ := s.Get(ctx, "s1", "k"); found {
		t.Fatal("value should be gone after expiry")
	}
}

func TestMemoryStoreDeleteMultiple(t *testing.T) {
	s := session.NewMemoryStore()
	ctx := context.Background()
	_ = s.Set(ctx, "s1", "a", []byte("1"), 0)
	_ = s.Set(ctx, "s1", "b", []byte("2"), 0)
	_ = s.Set(ctx, "s1", "c", []byte("3"), 0)

	if err := s.Delete(ctx, "s1", "a", "b"); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := s.Get(ctx, "s1", "a"); found {
		t.Fatal("a should be deleted")
	}
	if _, found, _ := s.Get(ctx, "s1", "b"); found {
		t.Fatal("b should be deleted")
	}
	if _, found, _ := s.Get(ctx, "s1", "c"); !found {
		t.Fatal("c should survive")
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	s := session.NewMemoryStore()
	ctx := context.Background()

	v := []byte("abc")
	_ = s.Set(ctx, "s1", "k", v, 0)
	v[0] = 'x'

	got, _, _ := s.Get(ctx, "s1", "k")
	if string(got) != "abc" {
		t.Fatalf("stored value mutated: %q", got)
	}
	got[0] = 'y'
	again, _, _ := s.Get(ctx, "s1", "k")
	if string(again) != "abc" {
		t.Fatalf("returned slice aliases storage: %q", again)
	}
}
