package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/frontdesk/visitor-register/internal/api/dto"
	"github.com/frontdesk/visitor-register/internal/auth"
	"github.com/frontdesk/visitor-register/internal/service"
	"github.com/frontdesk/visitor-register/pkg/util/errorutil"
)

// UsersHandler exposes signup, session and profile endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Signup handles POST /api/v1/users/signup.
func (h *UsersHandler) Signup(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewBadRequest("invalid payload")
	}
	fields := req.Fields()

	user, err := h.auth.Signup(c.UserContext(), service.SignupInput{
		Email:                fields.Email,
		Password:             fields.Password,
		PasswordConfirmation: fields.Confirmation(),
		Name:                 fields.Name,
		Role:                 fields.Role,
	})
	if err != nil {
		return err
	}
	return respond(c, "Signed up successfully.", dto.NewUserResponse(user))
}

// Login handles POST /api/v1/users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewBadRequest("invalid payload")
	}
	fields := req.Fields()

	user, token, err := h.auth.Login(c.UserContext(), fields.Email, fields.Password)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderAuthorization, "Bearer "+token.Value)
	return c.Status(http.StatusOK).JSON(dto.Envelope{
		Status: dto.Status{Code: http.StatusOK, Message: "Logged in successfully."},
		Data:   dto.NewUserResponse(user),
		Auth:   &dto.AuthResponse{Token: token.Value, ExpiresAt: token.ExpiresAt},
	})
}

// Logout handles DELETE /api/v1/users/logout.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.UserContext(), c.Get(fiber.HeaderAuthorization)); err != nil {
		return err
	}
	return respond(c, "Logged out successfully.", nil)
}

// Me handles GET /api/v1/users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return errorutil.NewUnauthorized("Missing authentication token")
	}
	return respond(c, "User retrieved successfully.", dto.NewUserResponse(principal.User))
}
