package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/frontdesk/visitor-register/internal/domain"
)

// ErrNoSigningSecret is returned when every configured secret is blank.
var ErrNoSigningSecret = errors.New("no signing secret configured")

// TokenManager handles issuing and validating JWT tokens.
// The first secret signs; all of them are tried when verifying.
type TokenManager struct {
	secrets [][]byte
	ttl     time.Duration
	now     func() time.Time
}

// NewTokenManager builds a new manager from the candidate secrets in priority order.
func NewTokenManager(secrets []string, ttl time.Duration) (*TokenManager, error) {
	keys := make([][]byte, 0, len(secrets))
	for _, s := range secrets {
		if s == "" {
			continue
		}
		keys = append(keys, []byte(s))
	}
	if len(keys) == 0 {
		return nil, ErrNoSigningSecret
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &TokenManager{secrets: keys, ttl: ttl, now: time.Now}, nil
}

// Claims describes JWT payload.
type Claims struct {
	Scope string `json:"scp"`
	jwt.RegisteredClaims
}

// UserID decodes the numeric subject.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("subject %q: %w", c.Subject, err)
	}
	return id, nil
}

// TTL reports the lifetime of issued tokens.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue signs an access token for the user carrying its current jti.
func (tm *TokenManager) Issue(user *domain.User) (*domain.Token, error) {
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		Scope: domain.TokenScope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        user.JTI,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secrets[0])
	if err != nil {
		return nil, err
	}
	return &domain.Token{
		Value:     signed,
		SubjectID: user.ID,
		JTI:       user.JTI,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Parse validates the token against each candidate secret and returns its claims.
// A token whose signature matches none of them is rejected.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	var lastErr error
	for _, secret := range tm.secrets {
		key := secret
		claims := &Claims{}
		parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
			return key, nil
		},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(tm.now),
		)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
				lastErr = err
				continue
			}
			return nil, err
		}
		if !parsed.Valid {
			return nil, errors.New("invalid token claims")
		}
		return claims, nil
	}
	return nil, lastErr
}
