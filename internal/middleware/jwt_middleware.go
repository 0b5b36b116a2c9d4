package middleware

import (
	"log"
	"strings"

	"quill/internal/policy"
	"quill/internal/services"

	"github.com/gofiber/fiber/v2"
)

const actorLocalKey = "actor"

// AuthRequired is a Fiber middleware that rejects requests without a valid
// JWT bearer token and stores the authenticated actor in the context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authorization header format must be 'Bearer <token>'",
			})
		}

		actor, err := authService.ActorFromToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		c.Locals(actorLocalKey, actor)
		return c.Next()
	}
}

// AuthOptional is a Fiber middleware for endpoints an anonymous caller may
// reach. A missing or invalid token leaves the caller anonymous; the
// authorization policy decides what an anonymous actor may see.
func AuthOptional(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return c.Next()
		}

		actor, err := authService.ActorFromToken(tokenString)
		if err != nil {
			log.Printf("Ignoring invalid token on optional-auth route: %v", err)
			return c.Next()
		}

		c.Locals(actorLocalKey, actor)
		return c.Next()
	}
}

// ActorFromCtx returns the actor stored by the auth middleware, or the
// anonymous actor when none was set.
func ActorFromCtx(c *fiber.Ctx) policy.Actor {
	if actor, ok := c.Locals(actorLocalKey).(policy.Actor); ok {
		return actor
	}
	return policy.Anonymous()
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
