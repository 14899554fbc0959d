// Package memory holds map-backed repositories used when no database is
// configured and by service and handler tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/frontdesk/visitor-register/internal/domain"
	"github.com/frontdesk/visitor-register/internal/repository"
)

// UserRepository is an in-memory repository.UserRepository.
type UserRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]domain.User
}

var _ repository.UserRepository = (*UserRepository)(nil)

// NewUserRepository returns an empty user store.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int64]domain.User)}
}

// Create assigns an id and rejects duplicate emails or jti values.
func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	for _, existing := range r.users {
		if existing.Email == email || existing.JTI == user.JTI {
			return repository.ErrDuplicate
		}
	}

	r.nextID++
	now := time.Now()
	user.ID = r.nextID
	user.Email = email
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

// GetByID returns pgx.ErrNoRows for unknown ids.
func (r *UserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.users[id]; ok {
		return &user, nil
	}
	return nil, pgx.ErrNoRows
}

// GetByEmail matches case-insensitively.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	email = strings.ToLower(email)
	for _, user := range r.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// UpdateJTI replaces the revocation marker.
func (r *UserRepository) UpdateJTI(_ context.Context, id int64, jti string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.JTI = jti
	user.UpdatedAt = time.Now()
	r.users[id] = user
	return nil
}
