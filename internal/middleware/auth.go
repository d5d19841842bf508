package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/perikanan/internal/apperr"
	"github.com/example/perikanan/internal/services"
)

const (
	adminContextKey = "currentAdmin"
	tokenContextKey = "sessionToken"
)

// AdminIdentity is what protected handlers see about the caller.
type AdminIdentity struct {
	ID       uuid.UUID
	Username string
}

// RequireSession guards state-mutating endpoints: it demands a bearer
// token in the Authorization header, validates it against the session
// store and loads the admin identity into request locals. Session
// errors surface to the caller unchanged.
func RequireSession(sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return apperr.Unauthenticated("missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return apperr.Unauthenticated("invalid authorization header")
		}

		admin, err := sessions.Validate(parts[1])
		if err != nil {
			return err
		}

		c.Locals(adminContextKey, AdminIdentity{ID: admin.ID, Username: admin.Username})
		c.Locals(tokenContextKey, parts[1])
		return c.Next()
	}
}

// CurrentAdmin extracts the authenticated admin identity from context.
func CurrentAdmin(c *fiber.Ctx) (AdminIdentity, bool) {
	value := c.Locals(adminContextKey)
	if value == nil {
		return AdminIdentity{}, false
	}

	if identity, ok := value.(AdminIdentity); ok {
		return identity, true
	}

	return AdminIdentity{}, false
}

// CurrentToken extracts the presented session token from context.
func CurrentToken(c *fiber.Ctx) (string, bool) {
	value := c.Locals(tokenContextKey)
	if value == nil {
		return "", false
	}

	if token, ok := value.(string); ok {
		return token, true
	}

	return "", false
}
