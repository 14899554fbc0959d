package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/frontdesk/visitor-register/internal/auth"
	"github.com/frontdesk/visitor-register/internal/config"
	"github.com/frontdesk/visitor-register/internal/domain"
	"github.com/frontdesk/visitor-register/internal/repository/memory"
	"github.com/frontdesk/visitor-register/pkg/util/errorutil"
)

type AuthServiceSuite struct {
	suite.Suite
	ctx     context.Context
	users   *memory.UserRepository
	tokens  *auth.TokenManager
	service *AuthService
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.users = memory.NewUserRepository()

	tokens, err := auth.NewTokenManager([]string{"test-secret"}, 30*time.Minute)
	s.Require().NoError(err)
	s.tokens = tokens

	cfg := config.Config{Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost}}
	s.service = NewAuthService(cfg, AuthDependencies{UserRepo: s.users, Tokens: tokens})
}

func (s *AuthServiceSuite) signup(email, password string) *domain.User {
	user, err := s.service.Signup(s.ctx, SignupInput{Email: email, Password: password, Name: "Desk"})
	s.Require().NoError(err)
	return user
}

func statusOf(t *testing.T, err error) (int, string) {
	t.Helper()
	require.Error(t, err)
	domainErr := errorutil.ToDomainError(err)
	return domainErr.HTTPStatus, domainErr.Message
}

func (s *AuthServiceSuite) TestSignupDefaultsRoleAndAssignsJTI() {
	user := s.signup("  Desk@Example.com ", "secret123")

	s.Equal("desk@example.com", user.Email)
	s.Equal(domain.UserRoleUser, user.Role)
	s.NotEmpty(user.JTI)
	s.NotEqual("secret123", user.PasswordHash)
}

func (s *AuthServiceSuite) TestSignupCollectsAllProblems() {
	mismatch := "other"
	_, err := s.service.Signup(s.ctx, SignupInput{
		Email:                "not-an-email",
		Password:             "123",
		PasswordConfirmation: &mismatch,
		Role:                 "Owner",
	})

	status, message := statusOf(s.T(), err)
	s.Equal(http.StatusUnprocessableEntity, status)
	s.Equal("Email is invalid, Password is too short (minimum is 6 characters), "+
		"Password confirmation doesn't match Password, Role is not included in the list", message)
}

func (s *AuthServiceSuite) TestSignupRejectsTakenEmail() {
	s.signup("desk@example.com", "secret123")

	_, err := s.service.Signup(s.ctx, SignupInput{Email: "DESK@example.com", Password: "secret123"})
	status, message := statusOf(s.T(), err)
	s.Equal(http.StatusUnprocessableEntity, status)
	s.Equal("Email has already been taken", message)
}

func (s *AuthServiceSuite) TestSignupBlankFields() {
	_, err := s.service.Signup(s.ctx, SignupInput{})
	_, message := statusOf(s.T(), err)
	s.Equal("Email can't be blank, Password can't be blank", message)
}

func (s *AuthServiceSuite) TestSignupAcceptsPasswordsUpTo128Characters() {
	long := strings.Repeat("a", 100)
	s.signup("long@example.com", long)

	_, _, err := s.service.Login(s.ctx, "long@example.com", long)
	s.NoError(err)

	_, err = s.service.Signup(s.ctx, SignupInput{Email: "toolong@example.com", Password: strings.Repeat("a", 129)})
	status, message := statusOf(s.T(), err)
	s.Equal(http.StatusUnprocessableEntity, status)
	s.Equal("Password is too long (maximum is 128 characters)", message)
}

func (s *AuthServiceSuite) TestSignupCountsPasswordCharacters() {
	_, err := s.service.Signup(s.ctx, SignupInput{Email: "short@example.com", Password: "ééééé"})
	_, message := statusOf(s.T(), err)
	s.Equal("Password is too short (minimum is 6 characters)", message)

	s.signup("wide@example.com", strings.Repeat("é", 128))
}

func (s *AuthServiceSuite) TestLogin() {
	registered := s.signup("desk@example.com", "secret123")

	user, token, err := s.service.Login(s.ctx, "DESK@example.com", "secret123")
	s.Require().NoError(err)
	s.Equal(registered.ID, user.ID)
	s.Equal(registered.JTI, token.JTI)

	claims, err := s.tokens.Parse(token.Value)
	s.Require().NoError(err)
	s.Equal(domain.TokenScope, claims.Scope)

	_, _, err = s.service.Login(s.ctx, "desk@example.com", "wrong-password")
	status, message := statusOf(s.T(), err)
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("Invalid email or password.", message)

	_, _, err = s.service.Login(s.ctx, "nobody@example.com", "secret123")
	_, unknownMessage := statusOf(s.T(), err)
	s.Equal(message, unknownMessage)
}

func (s *AuthServiceSuite) TestLoginDoesNotRotateJTI() {
	s.signup("desk@example.com", "secret123")

	_, first, err := s.service.Login(s.ctx, "desk@example.com", "secret123")
	s.Require().NoError(err)
	_, second, err := s.service.Login(s.ctx, "desk@example.com", "secret123")
	s.Require().NoError(err)
	s.Equal(first.JTI, second.JTI)

	_, _, err = s.service.Validator().Validate(s.ctx, "Bearer "+first.Value)
	s.NoError(err)
}

func (s *AuthServiceSuite) TestLogoutRevokesEveryToken() {
	s.signup("desk@example.com", "secret123")
	_, first, err := s.service.Login(s.ctx, "desk@example.com", "secret123")
	s.Require().NoError(err)
	_, second, err := s.service.Login(s.ctx, "desk@example.com", "secret123")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Logout(s.ctx, "Bearer "+first.Value))

	_, _, err = s.service.Validator().Validate(s.ctx, "Bearer "+second.Value)
	s.ErrorIs(err, auth.ErrInvalidToken)

	err = s.service.Logout(s.ctx, "Bearer "+first.Value)
	status, message := statusOf(s.T(), err)
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("Couldn't find an active session.", message)

	_, fresh, err := s.service.Login(s.ctx, "desk@example.com", "secret123")
	s.Require().NoError(err)
	_, _, err = s.service.Validator().Validate(s.ctx, "Bearer "+fresh.Value)
	s.NoError(err)
}

func TestLogoutWithoutHeader(t *testing.T) {
	tokens, err := auth.NewTokenManager([]string{"s"}, time.Minute)
	require.NoError(t, err)
	svc := NewAuthService(config.Config{}, AuthDependencies{UserRepo: memory.NewUserRepository(), Tokens: tokens})

	status, message := statusOf(t, svc.Logout(context.Background(), ""))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Couldn't find an active session.", message)
}
