package service

import (
	"context"
	"strings"

	"github.com/frontdesk/visitor-register/internal/domain"
	"github.com/frontdesk/visitor-register/internal/repository"
	"github.com/frontdesk/visitor-register/pkg/util/errorutil"
)

// StaffService manages the directory of hosts.
type StaffService struct {
	staff repository.StaffRepository
}

// NewStaffService constructs the service.
func NewStaffService(staff repository.StaffRepository) *StaffService {
	return &StaffService{staff: staff}
}

// List returns every staff member ordered by id.
func (s *StaffService) List(ctx context.Context) ([]domain.StaffMember, error) {
	staff, err := s.staff.List(ctx)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return staff, nil
}

// Create adds a staff member. Callers enforce the Admin role.
func (s *StaffService) Create(ctx context.Context, name, department string) (*domain.StaffMember, error) {
	name = strings.TrimSpace(name)
	department = strings.TrimSpace(department)

	var problems []string
	if name == "" {
		problems = append(problems, "Name can't be blank")
	}
	if department == "" {
		problems = append(problems, "Department can't be blank")
	}
	if len(problems) > 0 {
		return nil, errorutil.NewValidationError("Validation failed", map[string]any{"errors": problems})
	}

	member := &domain.StaffMember{Name: name, Department: department}
	if err := s.staff.Create(ctx, member); err != nil {
		return nil, errorutil.MapError(err)
	}
	return member, nil
}
