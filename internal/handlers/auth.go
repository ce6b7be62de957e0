package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/workwear/internal/config"
	"github.com/example/workwear/internal/middleware"
	"github.com/example/workwear/internal/services"
	"github.com/example/workwear/internal/utils"
)

// AuthHandler bundles dependencies for the admin session endpoints.
type AuthHandler struct {
	cfg  *config.Config
	auth *services.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(cfg *config.Config, auth *services.AuthService) *AuthHandler {
	return &AuthHandler{cfg: cfg, auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks the admin credentials and sets the session cookie.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный формат запроса")
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Email and password are required")
	}

	err := h.auth.ValidateCredentials(c.UserContext(), req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	case err != nil:
		return serverError("Auth", err, "Internal server error")
	}

	token, err := utils.GenerateAdminToken(h.cfg.JWTSecret, h.cfg.TokenExpires)
	if err != nil {
		return serverError("Auth", err, "Internal server error")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.TokenExpires / time.Second),
		Expires:  time.Now().Add(h.cfg.TokenExpires),
		HTTPOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return c.JSON(fiber.Map{"success": true})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(fiber.Map{"success": true})
}

// CheckAuth reports whether the caller holds a valid session.
func (h *AuthHandler) CheckAuth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"authenticated": middleware.IsAdmin(c, h.cfg)})
}
