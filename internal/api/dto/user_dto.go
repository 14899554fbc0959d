package dto

import (
	"time"

	"github.com/frontdesk/visitor-register/internal/domain"
)

// UserFields are the accepted signup and login fields.
type UserFields struct {
	Email                string  `json:"email"`
	Password             string  `json:"password"`
	PasswordConfirmation *string `json:"password_confirmation"`
	// PasswordConfirmationAlt accepts the camelCase spelling.
	PasswordConfirmationAlt *string `json:"passwordConfirmation"`
	Name                    string  `json:"name"`
	Role                    string  `json:"role"`
}

// Confirmation returns whichever confirmation spelling was sent.
func (f UserFields) Confirmation() *string {
	if f.PasswordConfirmation != nil {
		return f.PasswordConfirmation
	}
	return f.PasswordConfirmationAlt
}

// UserRequest accepts fields at the top level or nested under "user".
type UserRequest struct {
	UserFields
	User *UserFields `json:"user"`
}

// Fields resolves the nested form first.
func (r UserRequest) Fields() UserFields {
	if r.User != nil {
		return *r.User
	}
	return r.UserFields
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{ID: user.ID, Email: user.Email, Name: user.Name, Role: string(user.Role)}
}

// AuthResponse echoes the issued bearer token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
