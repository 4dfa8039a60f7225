package middleware

import (
	"errors"

	"fuelpass/internal/adapters/persistence/models"
	"fuelpass/internal/core/access"
	"fuelpass/internal/core/domain"
	"fuelpass/internal/core/services"
	"fuelpass/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// userLocalKey is the Locals key holding the resolved principal. Resolution
// runs once per request; downstream handlers reuse the cached user.
const userLocalKey = "currentUser"

// JWTCookieName is the cookie consulted when no Authorization header is present.
const JWTCookieName = "jwt-token"

// Authenticate resolves the request identity and stores it in Locals.
// Sources are tried in fixed order: Authorization bearer header, then the
// jwt-token cookie. The first present source is authoritative; a bad header
// token is a 401 even when a valid cookie token exists.
func Authenticate(resolver *services.IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolver.Resolve(c.Context(),
			services.FromBearerHeader(c.Get(fiber.HeaderAuthorization)),
			services.FromCookie(c.Cookies(JWTCookieName)),
		)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				return response.Unauthorized(c, "Missing or invalid credentials")
			}
			return response.InternalServerError(c, "Failed to authenticate request")
		}

		c.Locals(userLocalKey, user)
		return c.Next()
	}
}

// CurrentUser returns the principal resolved for this request, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalKey).(*models.User)
	return user
}

// Gate enforces the required role for an operation, looked up from the
// access table. Runs after Authenticate.
func Gate(operation string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := access.Check(CurrentUser(c), operation); err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				return response.Unauthorized(c, "Authentication required")
			}
			return response.Forbidden(c, "You don't have permission to perform this operation")
		}
		return c.Next()
	}
}
