package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nightbite/restaurant-booking/internal/config"
	"github.com/nightbite/restaurant-booking/internal/middleware"
	"github.com/nightbite/restaurant-booking/internal/otp"
	"github.com/nightbite/restaurant-booking/internal/repository"
	"github.com/nightbite/restaurant-booking/internal/utils"
)

// AdminAuthHandler implements the two-step admin login: password check, then
// an emailed one-time code. A JWT is only issued once the code verifies.
type AdminAuthHandler struct {
	Cfg        config.Config
	Users      *repository.UserRepo
	Challenges *otp.Challenge
}

func NewAdminAuthHandler(cfg config.Config, u *repository.UserRepo, ch *otp.Challenge) *AdminAuthHandler {
	return &AdminAuthHandler{Cfg: cfg, Users: u, Challenges: ch}
}

type adminLoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminVerifyReq struct {
	Code string `json:"code"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type adminPart struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Login checks the password and, when it matches, issues a one-time code to
// the account's email. Wrong email and wrong password produce the same
// response so the endpoint does not leak which accounts exist.
func (h *AdminAuthHandler) Login(c echo.Context) error {
	var req adminLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	sid := middleware.SessionID(c)
	if sid == "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no session"})
	}
	if _, err := h.Challenges.Issue(ctx, sid, otp.FlowAdminLogin, u.Email); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue code failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "code_sent", "email": u.Email})
}

// VerifyOTP consumes the code issued by Login and returns the access token.
func (h *AdminAuthHandler) VerifyOTP(c echo.Context) error {
	var req adminVerifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Code) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}

	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	sid := middleware.SessionID(c)
	email, err := h.Challenges.Verify(ctx, sid, otp.FlowAdminLogin, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, otp.ErrExpired):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "code_expired"})
		case errors.Is(err, otp.ErrMismatch):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "code_mismatch"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verify failed"})
		}
	}

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":   adminPart{ID: u.ID, Email: u.Email, Role: u.Role},
		"access": tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// ResendOTP re-issues the login code. The credentials are verified again on
// every resend so the endpoint cannot be used to mint codes without knowing
// the password.
func (h *AdminAuthHandler) ResendOTP(c echo.Context) error {
	var req adminLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil || !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	sid := middleware.SessionID(c)
	if _, err := h.Challenges.Resend(ctx, sid, otp.FlowAdminLogin, u.Email); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue code failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "code_sent", "email": u.Email})
}
