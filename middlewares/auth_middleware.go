package middlewares

import (
	"doktor.link/models"
	"doktor.link/pkg/renderer"
	"doktor.link/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware sends callers without a session to /login.
func AuthMiddleware(c *fiber.Ctx) error {
	if _, ok := utils.CurrentPrincipal(c); !ok {
		return c.Redirect("/login")
	}
	return c.Next()
}

// RequireRole lets only role through; everyone else is sent to /login.
func RequireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := utils.CurrentPrincipal(c)
		if !ok || p.Role != role {
			return c.Redirect("/login")
		}
		return c.Next()
	}
}

// APIRequireRole JSON variant of RequireRole: 401 without a session, 403 for another role.
func APIRequireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := utils.CurrentPrincipal(c)
		if !ok {
			return renderer.JSONError(c, fiber.StatusUnauthorized, "Login required.")
		}
		if p.Role != role {
			return renderer.JSONError(c, fiber.StatusForbidden, "Only "+string(role)+" accounts can do this.")
		}
		return c.Next()
	}
}
