package middleware

// session.go provides the cookie-based session identity used by the public
// booking flow and the admin OTP login. The session id is an opaque random
// value; all per-visitor state lives server-side in the session store under
// that id, never in the cookie itself.

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nightbite/restaurant-booking/internal/utils"
)

// sessionCookieName is the cookie carrying the opaque session id.
const sessionCookieName = "nb_session"

// sessionMaxAge bounds the session cookie's lifetime.
const sessionMaxAge = 24 * time.Hour

// contextSessionKey is where the session id is stashed in the Echo context.
const contextSessionKey = "session_id"

// EnsureSession guarantees every request carries a session id: an existing
// cookie is reused, otherwise a fresh id is generated and set. Handlers read
// the id via SessionID(c).
func EnsureSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ck, err := c.Cookie(sessionCookieName); err == nil && validSessionID(ck.Value) {
				c.Set(contextSessionKey, ck.Value)
				return next(c)
			}
			id, err := utils.RandomHex(24)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session init failed"})
			}
			c.SetCookie(&http.Cookie{
				Name:     sessionCookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(sessionMaxAge / time.Second),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			c.Set(contextSessionKey, id)
			return next(c)
		}
	}
}

// validSessionID accepts only ids shaped like the ones this service mints:
// 48 lowercase hex characters. Anything else is a client-invented value and
// gets replaced with a fresh id, so a caller cannot fixate their own.
func validSessionID(v string) bool {
	if len(v) != 48 {
		return false
	}
	for _, r := range v {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// SessionID returns the request's session id, or "" when EnsureSession did
// not run on the route.
func SessionID(c echo.Context) string {
	if v, ok := c.Get(contextSessionKey).(string); ok {
		return v
	}
	return ""
}
