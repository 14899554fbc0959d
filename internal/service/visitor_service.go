package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/frontdesk/visitor-register/internal/domain"
	"github.com/frontdesk/visitor-register/internal/events"
	"github.com/frontdesk/visitor-register/internal/repository"
	"github.com/frontdesk/visitor-register/pkg/util/errorutil"
)

const (
	visitorsPerPage    = 10
	defaultLatestLimit = 5
	maxLatestLimit     = 10
	analyticsTopN      = 5
)

var (
	phonePattern     = regexp.MustCompile(`^(0|\+233)\d{9}$`)
	ghanaCardPattern = regexp.MustCompile(`^GHA-\d{9}-\d$`)
	digitsPattern    = regexp.MustCompile(`^\d+$`)
)

// VisitorService runs the check-in/check-out lifecycle and the register's read views.
type VisitorService struct {
	visitors   repository.VisitorRepository
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	loc        *time.Location
	now        func() time.Time
	suffix     func() int
}

// VisitorDependencies encapsulates collaborators for the visitor service.
type VisitorDependencies struct {
	VisitorRepo repository.VisitorRepository
	StaffRepo   repository.StaffRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	Location    *time.Location
}

// NewVisitorService constructs the service.
func NewVisitorService(deps VisitorDependencies) *VisitorService {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VisitorService{
		visitors:   deps.VisitorRepo,
		staff:      deps.StaffRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		loc:        loc,
		now:        time.Now,
		suffix:     randomTicketSuffix,
	}
}

// Location is the zone used for ticket dates, periods and rendering.
func (s *VisitorService) Location() *time.Location {
	return s.loc
}

// CheckInInput holds raw check-in parameters as received.
type CheckInInput struct {
	FullName        string
	Phone           string
	GhanaCardNumber string
	StaffMemberID   string
	Purpose         string
}

func missingParameter(name string) error {
	return errorutil.NewDomainError("MISSING_PARAMETER", "Missing required parameter: "+name, 400, map[string]any{"param": name})
}

// CheckIn validates the visit, assigns a unique ticket and records it as checked_in.
func (s *VisitorService) CheckIn(ctx context.Context, actor *domain.User, in CheckInInput) (*domain.Visitor, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.GhanaCardNumber = strings.TrimSpace(in.GhanaCardNumber)
	in.StaffMemberID = strings.TrimSpace(in.StaffMemberID)
	in.Purpose = strings.TrimSpace(in.Purpose)

	required := []struct{ name, value string }{
		{"fullName", in.FullName},
		{"phone", in.Phone},
		{"ghanaCardNumber", in.GhanaCardNumber},
		{"staffMemberId", in.StaffMemberID},
		{"purpose", in.Purpose},
	}
	for _, param := range required {
		if param.value == "" {
			return nil, missingParameter(param.name)
		}
	}

	staff, err := s.lookupStaff(ctx, in.StaffMemberID)
	if err != nil {
		return nil, err
	}

	purpose := domain.VisitPurpose(in.Purpose)
	var problems []string
	if !phonePattern.MatchString(in.Phone) {
		problems = append(problems, "Phone must be in Ghana format (0XXXXXXXXX or +233XXXXXXXXX)")
	}
	if !ghanaCardPattern.MatchString(in.GhanaCardNumber) {
		problems = append(problems, "Ghana card number must be in format GHA-XXXXXXXX-X")
	}
	if !purpose.Valid() {
		problems = append(problems, "Purpose is not included in the list")
	}
	if len(problems) > 0 {
		return nil, errorutil.NewValidationError("Validation failed", map[string]any{"errors": problems})
	}

	now := s.now().In(s.loc)
	visitor := &domain.Visitor{
		FullName:        in.FullName,
		Phone:           in.Phone,
		GhanaCardNumber: in.GhanaCardNumber,
		StaffMemberID:   staff.ID,
		Purpose:         purpose,
		CheckInTime:     now,
		Status:          domain.VisitorStatusCheckedIn,
	}
	if err := s.createWithUniqueTicket(ctx, visitor, now); err != nil {
		return nil, err
	}
	visitor.Staff = staff

	s.publish(ctx, events.EventVisitorCheckedIn, visitor, actor)
	return visitor, nil
}

func (s *VisitorService) lookupStaff(ctx context.Context, rawID string) (*domain.StaffMember, error) {
	notFound := errorutil.NewDomainError("STAFF_NOT_FOUND", "Staff member not found", 400, nil)
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, notFound
	}
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if errorutil.IsNotFound(err) {
			return nil, notFound
		}
		return nil, errorutil.MapError(err)
	}
	return staff, nil
}

// createWithUniqueTicket draws ticket numbers until one is free. The unique
// index is the final arbiter when two check-ins race for the same number.
func (s *VisitorService) createWithUniqueTicket(ctx context.Context, visitor *domain.Visitor, now time.Time) error {
	for attempt := 0; attempt < maxTicketAttempts; attempt++ {
		candidate := ticketNumber(now, s.suffix())
		exists, err := s.visitors.ExistsByTicketNumber(ctx, candidate)
		if err != nil {
			return errorutil.MapError(err)
		}
		if exists {
			continue
		}

		visitor.TicketNumber = candidate
		err = s.visitors.Create(ctx, visitor)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return errorutil.MapError(err)
		}
	}
	return errorutil.NewInternalError(fmt.Errorf("no free ticket number after %d attempts", maxTicketAttempts))
}

// CheckOut moves a checked_in visit to checked_out.
func (s *VisitorService) CheckOut(ctx context.Context, actor *domain.User, ticketNumber string) (*domain.Visitor, error) {
	ticketNumber = strings.TrimSpace(ticketNumber)
	if ticketNumber == "" {
		return nil, errorutil.NewBadRequest("ticketNumber is required")
	}

	visitor, err := s.visitors.GetByTicketNumber(ctx, ticketNumber)
	if err != nil {
		if errorutil.IsNotFound(err) {
			return nil, errorutil.NewNotFound(
				fmt.Sprintf("Visitor with ticket number %s not found", ticketNumber),
				map[string]any{"ticketNumber": ticketNumber},
			)
		}
		return nil, errorutil.MapError(err)
	}

	alreadyOut := errorutil.NewDomainError("ALREADY_CHECKED_OUT", "Visitor has already checked out", 400, nil)
	if visitor.Status == domain.VisitorStatusCheckedOut {
		return nil, alreadyOut
	}

	visitor, err = s.visitors.CheckOut(ctx, ticketNumber, s.now().In(s.loc))
	if err != nil {
		if errorutil.IsNotFound(err) {
			return nil, alreadyOut
		}
		return nil, errorutil.MapError(err)
	}

	s.publish(ctx, events.EventVisitorCheckedOut, visitor, actor)
	return visitor, nil
}

func (s *VisitorService) publish(ctx context.Context, eventType events.EventType, visitor *domain.Visitor, actor *domain.User) {
	if s.dispatcher == nil {
		return
	}
	var actorID *int64
	if actor != nil {
		id := actor.ID
		actorID = &id
	}
	if err := s.dispatcher.Publish(ctx, events.NewVisitorEvent(eventType, visitor, actorID)); err != nil {
		s.logger.Warn("visitor event handler failed",
			zap.String("event_type", string(eventType)),
			zap.String("ticket_number", visitor.TicketNumber),
			zap.Error(err))
	}
}

// Pagination describes one page of a listing.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalCount  int64
	PerPage     int
}

// VisitorPage is a page of visitors, newest check-in first.
type VisitorPage struct {
	Visitors   []domain.Visitor
	Pagination Pagination
}

// List pages through all visits, optionally matching part of the ticket number.
func (s *VisitorService) List(ctx context.Context, page int, ticketNumber string) (*VisitorPage, error) {
	return s.page(ctx, page, repository.VisitorFilter{TicketNumber: ticketNumber})
}

// Logs is List plus an optional calendar window on check-in time.
func (s *VisitorService) Logs(ctx context.Context, page int, ticketNumber, timePeriod string) (*VisitorPage, error) {
	filter, err := s.logFilter(ticketNumber, timePeriod)
	if err != nil {
		return nil, err
	}
	return s.page(ctx, page, filter)
}

// ExportLogs returns every visit the Logs filters match.
func (s *VisitorService) ExportLogs(ctx context.Context, ticketNumber, timePeriod string) ([]domain.Visitor, error) {
	filter, err := s.logFilter(ticketNumber, timePeriod)
	if err != nil {
		return nil, err
	}
	visitors, _, err := s.visitors.List(ctx, filter)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return visitors, nil
}

func (s *VisitorService) logFilter(ticketNumber, timePeriod string) (repository.VisitorFilter, error) {
	from, to, err := PeriodBounds(timePeriod, s.now().In(s.loc))
	if err != nil {
		return repository.VisitorFilter{}, err
	}
	return repository.VisitorFilter{TicketNumber: ticketNumber, From: from, To: to}, nil
}

func (s *VisitorService) page(ctx context.Context, page int, filter repository.VisitorFilter) (*VisitorPage, error) {
	if page < 1 {
		page = 1
	}
	filter.Limit = visitorsPerPage
	filter.Offset = (page - 1) * visitorsPerPage

	visitors, total, err := s.visitors.List(ctx, filter)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return &VisitorPage{
		Visitors: visitors,
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  int(math.Ceil(float64(total) / visitorsPerPage)),
			TotalCount:  total,
			PerPage:     visitorsPerPage,
		},
	}, nil
}

// ParseLimit validates the latest-listing limit. Blank means the default of 5.
func ParseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultLatestLimit, nil
	}
	if !digitsPattern.MatchString(raw) {
		return 0, errorutil.NewBadRequest("Limit must be a valid number")
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit > maxLatestLimit {
		return 0, errorutil.NewBadRequest("Limit cannot exceed 10")
	}
	if limit < 1 {
		return 0, errorutil.NewBadRequest("Limit must be at least 1")
	}
	return limit, nil
}

// LatestCheckIns lists visitors still on site, most recent arrival first.
func (s *VisitorService) LatestCheckIns(ctx context.Context, rawLimit string) ([]domain.Visitor, error) {
	return s.latest(ctx, domain.VisitorStatusCheckedIn, rawLimit)
}

// LatestCheckOuts lists departed visitors, most recent departure first.
func (s *VisitorService) LatestCheckOuts(ctx context.Context, rawLimit string) ([]domain.Visitor, error) {
	return s.latest(ctx, domain.VisitorStatusCheckedOut, rawLimit)
}

func (s *VisitorService) latest(ctx context.Context, status domain.VisitorStatus, rawLimit string) ([]domain.Visitor, error) {
	limit, err := ParseLimit(rawLimit)
	if err != nil {
		return nil, err
	}
	visitors, err := s.visitors.Latest(ctx, status, limit)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return visitors, nil
}

// Analytics builds the dashboard aggregates. Monthly counts cover every month
// from November of last year through the current month, zero-filled.
func (s *VisitorService) Analytics(ctx context.Context) (*domain.Analytics, error) {
	now := s.now().In(s.loc)
	from := time.Date(now.Year()-1, time.November, 1, 0, 0, 0, 0, s.loc)

	departments, err := s.visitors.DepartmentVisits(ctx, analyticsTopN)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	counts, err := s.visitors.MonthlyCounts(ctx, from, s.loc)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	staff, err := s.visitors.MostVisitedStaff(ctx, analyticsTopN)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	frequent, err := s.visitors.MostFrequentVisitors(ctx, analyticsTopN)
	if err != nil {
		return nil, errorutil.MapError(err)
	}

	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	monthly := []domain.MonthlyVisits{}
	for month := from; !month.After(current); month = month.AddDate(0, 1, 0) {
		key := month.Format("2006-01")
		monthly = append(monthly, domain.MonthlyVisits{
			Month:     key,
			MonthName: month.Format("January 2006"),
			Count:     counts[key],
		})
	}

	return &domain.Analytics{
		DepartmentVisits:     departments,
		MonthlyVisits:        monthly,
		MostVisitedStaff:     staff,
		MostFrequentVisitors: frequent,
	}, nil
}
