package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frontdesk/visitor-register/internal/domain"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager([]string{"", ""}, time.Minute)
	assert.ErrorIs(t, err, ErrNoSigningSecret)
}

func TestIssueAndParse(t *testing.T) {
	tm, err := NewTokenManager([]string{"primary"}, 30*time.Minute)
	require.NoError(t, err)
	issuedAt := time.Now().Truncate(time.Second)
	tm.now = fixedClock(issuedAt)

	token, err := tm.Issue(&domain.User{ID: 7, JTI: "marker"})
	require.NoError(t, err)
	assert.True(t, issuedAt.Add(30*time.Minute).Equal(token.ExpiresAt))
	assert.Equal(t, "marker", token.JTI)

	claims, err := tm.Parse(token.Value)
	require.NoError(t, err)
	assert.Equal(t, domain.TokenScope, claims.Scope)
	assert.Equal(t, "marker", claims.ID)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.EqualValues(t, 7, id)
}

func TestParseAcceptsAnyCandidateSecret(t *testing.T) {
	old, err := NewTokenManager([]string{"old-secret"}, time.Minute)
	require.NoError(t, err)
	token, err := old.Issue(&domain.User{ID: 1, JTI: "j"})
	require.NoError(t, err)

	rotated, err := NewTokenManager([]string{"new-secret", "", "old-secret"}, time.Minute)
	require.NoError(t, err)
	_, err = rotated.Parse(token.Value)
	assert.NoError(t, err)
}

func TestParseRejectsUnknownSecret(t *testing.T) {
	other, err := NewTokenManager([]string{"someone-else"}, time.Minute)
	require.NoError(t, err)
	token, err := other.Issue(&domain.User{ID: 1, JTI: "j"})
	require.NoError(t, err)

	tm, err := NewTokenManager([]string{"primary", "secondary"}, time.Minute)
	require.NoError(t, err)
	_, err = tm.Parse(token.Value)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tm, err := NewTokenManager([]string{"primary"}, time.Minute)
	require.NoError(t, err)
	start := time.Now()
	tm.now = fixedClock(start)
	token, err := tm.Issue(&domain.User{ID: 1, JTI: "j"})
	require.NoError(t, err)

	tm.now = fixedClock(start.Add(2 * time.Minute))
	_, err = tm.Parse(token.Value)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	tm, err := NewTokenManager([]string{"primary"}, time.Minute)
	require.NoError(t, err)

	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "1",
		ID:        "j",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("primary"))
	require.NoError(t, err)

	_, err = tm.Parse(signed)
	assert.Error(t, err)
}

func TestParseRequiresExpiry(t *testing.T) {
	tm, err := NewTokenManager([]string{"primary"}, time.Minute)
	require.NoError(t, err)

	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "1", ID: "j"}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("primary"))
	require.NoError(t, err)

	_, err = tm.Parse(signed)
	assert.Error(t, err)
}
