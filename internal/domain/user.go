package domain

import "time"

// UserRole distinguishes front desk administrators from regular operators.
type UserRole string

const (
	UserRoleAdmin UserRole = "Admin"
	UserRoleUser  UserRole = "User"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	return r == UserRoleAdmin || r == UserRoleUser
}

// User is an authenticated operator of the register.
type User struct {
	ID           int64
	Email        string
	Name         string
	Role         UserRole
	PasswordHash string
	// JTI is the current revocation marker. Tokens carrying any other value are rejected.
	JTI       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
