package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/frontdesk/visitor-register/internal/domain"
	"github.com/frontdesk/visitor-register/internal/repository"
)

// VisitorRepository is an in-memory repository.VisitorRepository.
// Staff rows are joined from the given staff repository at read time.
type VisitorRepository struct {
	mu       sync.RWMutex
	nextID   int64
	visitors []domain.Visitor
	staff    repository.StaffRepository
}

var _ repository.VisitorRepository = (*VisitorRepository)(nil)

// NewVisitorRepository joins staff rows from staff on read.
func NewVisitorRepository(staff repository.StaffRepository) *VisitorRepository {
	return &VisitorRepository{staff: staff}
}

// Create rejects a ticket number that is already stored.
func (r *VisitorRepository) Create(_ context.Context, visitor *domain.Visitor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(visitor.TicketNumber) >= 0 {
		return repository.ErrDuplicate
	}
	r.nextID++
	now := time.Now()
	visitor.ID = r.nextID
	visitor.CreatedAt = now
	visitor.UpdatedAt = now
	r.visitors = append(r.visitors, *visitor)
	return nil
}

func (r *VisitorRepository) indexOf(ticketNumber string) int {
	for i := range r.visitors {
		if r.visitors[i].TicketNumber == ticketNumber {
			return i
		}
	}
	return -1
}

func (r *VisitorRepository) withStaff(ctx context.Context, visitor domain.Visitor) domain.Visitor {
	if staff, err := r.staff.GetByID(ctx, visitor.StaffMemberID); err == nil {
		visitor.Staff = staff
	}
	return visitor
}

// ExistsByTicketNumber reports whether a ticket is taken.
func (r *VisitorRepository) ExistsByTicketNumber(_ context.Context, ticketNumber string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.indexOf(ticketNumber) >= 0, nil
}

// GetByTicketNumber returns pgx.ErrNoRows for unknown tickets.
func (r *VisitorRepository) GetByTicketNumber(ctx context.Context, ticketNumber string) (*domain.Visitor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.indexOf(ticketNumber)
	if idx < 0 {
		return nil, pgx.ErrNoRows
	}
	visitor := r.withStaff(ctx, r.visitors[idx])
	return &visitor, nil
}

// CheckOut only transitions visits that are still checked in.
func (r *VisitorRepository) CheckOut(ctx context.Context, ticketNumber string, at time.Time) (*domain.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(ticketNumber)
	if idx < 0 || r.visitors[idx].Status != domain.VisitorStatusCheckedIn {
		return nil, pgx.ErrNoRows
	}
	r.visitors[idx].Status = domain.VisitorStatusCheckedOut
	r.visitors[idx].CheckOutTime = &at
	r.visitors[idx].UpdatedAt = time.Now()
	visitor := r.withStaff(ctx, r.visitors[idx])
	return &visitor, nil
}

func matches(visitor domain.Visitor, filter repository.VisitorFilter) bool {
	if term := strings.TrimSpace(filter.TicketNumber); term != "" &&
		!strings.Contains(strings.ToLower(visitor.TicketNumber), strings.ToLower(term)) {
		return false
	}
	if filter.From != nil && visitor.CheckInTime.Before(*filter.From) {
		return false
	}
	if filter.To != nil && visitor.CheckInTime.After(*filter.To) {
		return false
	}
	return true
}

// List applies the filter, newest check-in first, and returns the unpaged total.
func (r *VisitorRepository) List(ctx context.Context, filter repository.VisitorFilter) ([]domain.Visitor, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []domain.Visitor{}
	for _, visitor := range r.visitors {
		if matches(visitor, filter) {
			matched = append(matched, visitor)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CheckInTime.Equal(matched[j].CheckInTime) {
			return matched[i].CheckInTime.After(matched[j].CheckInTime)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	if filter.Limit > 0 {
		start := filter.Offset
		if start < 0 {
			start = 0
		}
		if start > len(matched) {
			start = len(matched)
		}
		end := start + filter.Limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}

	result := make([]domain.Visitor, 0, len(matched))
	for _, visitor := range matched {
		result = append(result, r.withStaff(ctx, visitor))
	}
	return result, total, nil
}

// Latest lists visits in the given status, most recent first.
func (r *VisitorRepository) Latest(ctx context.Context, status domain.VisitorStatus, limit int) ([]domain.Visitor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []domain.Visitor{}
	for _, visitor := range r.visitors {
		if visitor.Status == status {
			matched = append(matched, visitor)
		}
	}
	key := func(v domain.Visitor) time.Time {
		if status == domain.VisitorStatusCheckedOut && v.CheckOutTime != nil {
			return *v.CheckOutTime
		}
		return v.CheckInTime
	}
	sort.SliceStable(matched, func(i, j int) bool {
		ki, kj := key(matched[i]), key(matched[j])
		if !ki.Equal(kj) {
			return ki.After(kj)
		}
		return matched[i].ID > matched[j].ID
	})
	if limit >= 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	result := make([]domain.Visitor, 0, len(matched))
	for _, visitor := range matched {
		result = append(result, r.withStaff(ctx, visitor))
	}
	return result, nil
}

// DepartmentVisits counts visits per host department.
func (r *VisitorRepository) DepartmentVisits(ctx context.Context, limit int) ([]domain.DepartmentVisits, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := map[string]int64{}
	for _, visitor := range r.visitors {
		staff, err := r.staff.GetByID(ctx, visitor.StaffMemberID)
		if err != nil {
			continue
		}
		counts[staff.Department]++
	}

	result := make([]domain.DepartmentVisits, 0, len(counts))
	for department, count := range counts {
		result = append(result, domain.DepartmentVisits{Department: department, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Department < result[j].Department
	})
	return truncate(result, limit), nil
}

// MonthlyCounts buckets check-ins since from by YYYY-MM in loc.
func (r *VisitorRepository) MonthlyCounts(_ context.Context, from time.Time, loc *time.Location) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := map[string]int64{}
	for _, visitor := range r.visitors {
		if visitor.CheckInTime.Before(from) {
			continue
		}
		result[visitor.CheckInTime.In(loc).Format("2006-01")]++
	}
	return result, nil
}

// MostVisitedStaff ranks hosts by visit count.
func (r *VisitorRepository) MostVisitedStaff(ctx context.Context, limit int) ([]domain.StaffVisits, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byID := map[int64]*domain.StaffVisits{}
	for _, visitor := range r.visitors {
		staff, err := r.staff.GetByID(ctx, visitor.StaffMemberID)
		if err != nil {
			continue
		}
		item, ok := byID[staff.ID]
		if !ok {
			item = &domain.StaffVisits{StaffID: staff.ID, Name: staff.Name, Department: staff.Department}
			byID[staff.ID] = item
		}
		item.VisitCount++
	}

	result := make([]domain.StaffVisits, 0, len(byID))
	for _, item := range byID {
		result = append(result, *item)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].VisitCount != result[j].VisitCount {
			return result[i].VisitCount > result[j].VisitCount
		}
		return result[i].StaffID < result[j].StaffID
	})
	return truncate(result, limit), nil
}

// MostFrequentVisitors ranks visitors by name and phone.
func (r *VisitorRepository) MostFrequentVisitors(_ context.Context, limit int) ([]domain.FrequentVisitor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type key struct{ name, phone string }
	counts := map[key]int64{}
	for _, visitor := range r.visitors {
		counts[key{visitor.FullName, visitor.Phone}]++
	}

	result := make([]domain.FrequentVisitor, 0, len(counts))
	for k, count := range counts {
		result = append(result, domain.FrequentVisitor{FullName: k.name, Phone: k.phone, VisitCount: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].VisitCount != result[j].VisitCount {
			return result[i].VisitCount > result[j].VisitCount
		}
		if result[i].FullName != result[j].FullName {
			return result[i].FullName < result[j].FullName
		}
		return result[i].Phone < result[j].Phone
	})
	return truncate(result, limit), nil
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
