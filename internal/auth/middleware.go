package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/frontdesk/visitor-register/internal/domain"
	"github.com/frontdesk/visitor-register/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	User   *domain.User
	Claims *Claims
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	validator *Validator
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(validator *Validator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	user, claims, err := m.validator.Validate(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	switch {
	case errors.Is(err, ErrMissingToken):
		return errorutil.NewUnauthorized("Missing authentication token")
	case errors.Is(err, ErrInvalidToken):
		return errorutil.NewUnauthorized("Invalid or expired token")
	case err != nil:
		return errorutil.MapError(err)
	}

	c.Locals(principalKey, &Principal{User: user, Claims: claims})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok && principal.User != nil
}
