package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/workwear/internal/config"
	"github.com/example/workwear/internal/utils"
)

// SessionCookie is the name of the cookie carrying the admin session token.
const SessionCookie = "admin-token"

// LoginPath is the admin page that stays reachable without a session.
const LoginPath = "/admin/login"

const adminContextKey = "isAdmin"

// RequireAdmin rejects API requests that carry no valid admin session.
func RequireAdmin(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsAdmin(c, cfg) {
			return fiber.NewError(fiber.StatusUnauthorized, "Требуется авторизация")
		}
		return c.Next()
	}
}

// AdminPageGuard protects the admin pages. Requests without a valid session are
// redirected to the login page, which itself is always let through.
func AdminPageGuard(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := strings.TrimRight(c.Path(), "/")
		if path == LoginPath || strings.HasPrefix(path, LoginPath+"/") {
			return c.Next()
		}

		if !IsAdmin(c, cfg) {
			return c.Redirect(LoginPath, fiber.StatusFound)
		}
		return c.Next()
	}
}

// IsAdmin reports whether the request carries a valid admin session cookie.
// The result is cached on the request context.
func IsAdmin(c *fiber.Ctx, cfg *config.Config) bool {
	if cached, ok := c.Locals(adminContextKey).(bool); ok {
		return cached
	}

	_, err := utils.ParseAdminToken(cfg.JWTSecret, c.Cookies(SessionCookie))
	ok := err == nil
	c.Locals(adminContextKey, ok)
	return ok
}
