package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"lostfound/internal/domain"
	applog "lostfound/internal/log"
	"lostfound/internal/services"
)

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// RequireUser rejects requests without a valid bearer token and stores the
// resolved actor in locals for the handler.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return respondErr(c, fiber.StatusUnauthorized, "authorization required")
		}
		actor, err := auth.Authenticate(tok)
		if err != nil {
			applog.Security(c, "auth.token.invalid", nil)
			return respondErr(c, fiber.StatusUnauthorized, "invalid or expired token")
		}
		c.Locals("actor", actor)
		return c.Next()
	}
}

// OptionalUser attaches the actor when a valid token is present but lets the
// request through either way. Used on public routes whose representation
// depends on who is asking.
func OptionalUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tok := bearerToken(c); tok != "" {
			if actor, err := auth.Authenticate(tok); err == nil {
				c.Locals("actor", actor)
			}
		}
		return c.Next()
	}
}

func actorFrom(c *fiber.Ctx) (domain.Actor, bool) {
	a, ok := c.Locals("actor").(domain.Actor)
	return a, ok
}
