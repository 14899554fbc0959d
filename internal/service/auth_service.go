package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/frontdesk/visitor-register/internal/auth"
	"github.com/frontdesk/visitor-register/internal/config"
	"github.com/frontdesk/visitor-register/internal/domain"
	"github.com/frontdesk/visitor-register/internal/observability"
	"github.com/frontdesk/visitor-register/internal/repository"
	"github.com/frontdesk/visitor-register/pkg/util/errorutil"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 128
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

// AuthService coordinates signup, login and logout flows.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenManager
	validator *auth.Validator
	hasher    *auth.PasswordHasher
	limiter   *auth.LoginLimiter
	metrics   *observability.Metrics
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Tokens   *auth.TokenManager
	Limiter  *auth.LoginLimiter
	Metrics  *observability.Metrics
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:     deps.UserRepo,
		tokens:    deps.Tokens,
		validator: auth.NewValidator(deps.Tokens, deps.UserRepo),
		hasher:    auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		limiter:   deps.Limiter,
		metrics:   deps.Metrics,
	}
}

// Validator exposes the token validator for middleware usage.
func (s *AuthService) Validator() *auth.Validator {
	return s.validator
}

// SignupInput carries registration fields.
type SignupInput struct {
	Email                string
	Password             string
	PasswordConfirmation *string
	Name                 string
	Role                 string
}

// Signup registers a new operator. Validation failures are reported together.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	role := domain.UserRole(strings.TrimSpace(in.Role))
	if role == "" {
		role = domain.UserRoleUser
	}

	var problems []string
	switch {
	case email == "":
		problems = append(problems, "Email can't be blank")
	case !emailPattern.MatchString(email):
		problems = append(problems, "Email is invalid")
	default:
		if _, err := s.users.GetByEmail(ctx, email); err == nil {
			problems = append(problems, "Email has already been taken")
		} else if !errorutil.IsNotFound(err) {
			return nil, err
		}
	}

	switch {
	case in.Password == "":
		problems = append(problems, "Password can't be blank")
	case utf8.RuneCountInString(in.Password) < minPasswordLength:
		problems = append(problems, "Password is too short (minimum is 6 characters)")
	case utf8.RuneCountInString(in.Password) > maxPasswordLength:
		problems = append(problems, "Password is too long (maximum is 128 characters)")
	}
	if in.PasswordConfirmation != nil && *in.PasswordConfirmation != in.Password {
		problems = append(problems, "Password confirmation doesn't match Password")
	}
	if !role.Valid() {
		problems = append(problems, "Role is not included in the list")
	}
	if len(problems) > 0 {
		return nil, signupError(problems)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
		PasswordHash: hash,
		JTI:          uuid.NewString(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, signupError([]string{"Email has already been taken"})
		}
		return nil, err
	}
	return user, nil
}

func signupError(problems []string) error {
	return errorutil.NewUnprocessable(strings.Join(problems, ", "), map[string]any{"errors": problems})
}

// Login verifies credentials and issues an access token carrying the user's current jti.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.Token, error) {
	email = normalizeEmail(email)
	if !s.limiter.Allowed(ctx, email) {
		return nil, nil, errorutil.NewTooManyRequests("Too many failed login attempts. Please try again later.")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errorutil.IsNotFound(err) {
		return nil, nil, err
	}
	if user == nil || !s.hasher.Matches(user.PasswordHash, password) {
		s.limiter.RecordFailure(ctx, email)
		s.metrics.RecordLoginFailure()
		return nil, nil, errorutil.NewUnauthorized("Invalid email or password.")
	}
	s.limiter.Reset(ctx, email)

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// Logout revokes every token issued to the presenting user by rotating the jti.
func (s *AuthService) Logout(ctx context.Context, authorization string) error {
	user, _, err := s.validator.Validate(ctx, authorization)
	if err != nil {
		if errors.Is(err, auth.ErrMissingToken) || errors.Is(err, auth.ErrInvalidToken) {
			return errorutil.NewUnauthorized("Couldn't find an active session.")
		}
		return err
	}
	return s.users.UpdateJTI(ctx, user.ID, uuid.NewString())
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
