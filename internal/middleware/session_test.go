package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nightbite/restaurant-booking/internal/middleware"
)

func TestEnsureSessionIssuesCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	h := middleware.EnsureSession()(func(c echo.Context) error {
		seen = middleware.SessionID(c)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatal(err)
	}
	if seen == "" {
		t.Fatal("handler should see a session id")
	}

	cookie := rec.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "nb_session="+seen) {
		t.Fatalf("Set-Cookie %q should carry the session id %q", cookie, seen)
	}
	if !strings.Contains(cookie, "HttpOnly") {
		t.Fatalf("session cookie must be HttpOnly: %q", cookie)
	}
}

func TestEnsureSessionReusesExistingCookie(t *testing.T) {
	// Shaped like a minted id: 48 lowercase hex characters.
	existing := strings.Repeat("4d7093ab", 6)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "nb_session", Value: existing})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	h := middleware.EnsureSession()(func(c echo.Context) error {
		seen = middleware.SessionID(c)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatal(err)
	}
	if seen != existing {
		t.Fatalf("expected the existing id, got %q", seen)
	}
	if got := rec.Header().Get("Set-Cookie"); got != "" {
		t.Fatalf("no new cookie expected, got %q", got)
	}
}

func TestEnsureSessionRejectsClientInventedIDs(t *testing.T) {
	for _, bogus := range []string{
		"existing-id",
		"short",
		strings.Repeat("X", 48),
		strings.Repeat("a", 47),
		strings.Repeat("a", 49),
	} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "nb_session", Value: bogus})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var seen string
		h := middleware.EnsureSession()(func(c echo.Context) error {
			seen = middleware.SessionID(c)
			return c.NoContent(http.StatusOK)
		})
		if err := h(c); err != nil {
			t.Fatal(err)
		}
		if seen == bogus || seen == "" {
			t.Fatalf("cookie %q should be replaced with a fresh id, got %q", bogus, seen)
		}
		if cookie := rec.Header().Get("Set-Cookie"); !strings.Contains(cookie, "nb_session="+seen) {
			t.Fatalf("fresh id %q should be set on the response, got %q", seen, cookie)
		}
	}
}

func TestSessionIDWithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if got := middleware.SessionID(c); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
