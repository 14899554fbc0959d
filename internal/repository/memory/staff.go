package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/frontdesk/visitor-register/internal/domain"
	"github.com/frontdesk/visitor-register/internal/repository"
)

// DefaultStaff mirrors the directory seeded by the database migrations.
func DefaultStaff() []domain.StaffMember {
	return []domain.StaffMember{
		{Name: "John Doe", Department: "Engineering"},
		{Name: "Jane Smith", Department: "Marketing"},
		{Name: "Michael Johnson", Department: "Sales"},
		{Name: "Sarah Williams", Department: "HR"},
		{Name: "David Brown", Department: "Finance"},
		{Name: "Emily Davis", Department: "Operations"},
		{Name: "Robert Wilson", Department: "IT"},
		{Name: "Lisa Anderson", Department: "Customer Service"},
	}
}

// StaffRepository is an in-memory repository.StaffRepository.
type StaffRepository struct {
	mu     sync.RWMutex
	nextID int64
	staff  []domain.StaffMember
}

var _ repository.StaffRepository = (*StaffRepository)(nil)

// NewStaffRepository assigns sequential ids to the seed members.
func NewStaffRepository(seed ...domain.StaffMember) *StaffRepository {
	r := &StaffRepository{}
	for i := range seed {
		_ = r.Create(context.Background(), &seed[i])
	}
	return r
}

// Create assigns the next id.
func (r *StaffRepository) Create(_ context.Context, staff *domain.StaffMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now()
	staff.ID = r.nextID
	staff.CreatedAt = now
	staff.UpdatedAt = now
	r.staff = append(r.staff, *staff)
	return nil
}

// GetByID returns pgx.ErrNoRows for unknown ids.
func (r *StaffRepository) GetByID(_ context.Context, id int64) (*domain.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, staff := range r.staff {
		if staff.ID == id {
			return &staff, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// List returns staff ordered by id.
func (r *StaffRepository) List(_ context.Context) ([]domain.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.StaffMember{}, r.staff...), nil
}
