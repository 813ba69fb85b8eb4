package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/dairydash/internal/config"
	"github.com/example/dairydash/internal/utils"
)

const (
	principalContextKey = "currentPrincipal"
	roleContextKey      = "currentRole"
)

// AuthMiddleware validates JWT tokens and loads the authenticated principal
// (phone or email) and role into context.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		principal, role, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(principalContextKey, principal)
		c.Locals(roleContextKey, role)
		return c.Next()
	}
}

// RequireRole rejects requests whose authenticated role differs from role.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if current, ok := c.Locals(roleContextKey).(string); !ok || current != role {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// GetPrincipal extracts the authenticated principal from context.
func GetPrincipal(c *fiber.Ctx) (string, bool) {
	principal, ok := c.Locals(principalContextKey).(string)
	return principal, ok && principal != ""
}
