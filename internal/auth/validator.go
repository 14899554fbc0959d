package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/frontdesk/visitor-register/internal/domain"
	"github.com/frontdesk/visitor-register/internal/repository"
	"github.com/frontdesk/visitor-register/pkg/util/errorutil"
)

var (
	// ErrMissingToken means no usable bearer credential was presented.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken covers bad signatures, expiry, unknown users and revoked jti values.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// BearerToken extracts the token from an Authorization header value.
// Runs of whitespace between scheme and token are collapsed.
func BearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// Validator resolves bearer tokens to live users.
type Validator struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewValidator wires a token validator.
func NewValidator(tokens *TokenManager, users repository.UserRepository) *Validator {
	return &Validator{tokens: tokens, users: users}
}

// Validate checks the Authorization header and returns the user it belongs to.
func (v *Validator) Validate(ctx context.Context, header string) (*domain.User, *Claims, error) {
	raw, ok := BearerToken(header)
	if !ok {
		return nil, nil, ErrMissingToken
	}

	claims, err := v.tokens.Parse(raw)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}
	if claims.ID == "" {
		return nil, nil, ErrInvalidToken
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, nil, ErrInvalidToken
	}

	user, err := v.users.GetByID(ctx, userID)
	if err != nil {
		if errorutil.IsNotFound(err) {
			return nil, nil, ErrInvalidToken
		}
		return nil, nil, err
	}
	if user.JTI != claims.ID {
		return nil, nil, ErrInvalidToken
	}
	return user, claims, nil
}
