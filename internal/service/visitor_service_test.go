package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/frontdesk/visitor-register/internal/domain"
	"github.com/frontdesk/visitor-register/internal/events"
	"github.com/frontdesk/visitor-register/internal/repository/memory"
	"github.com/frontdesk/visitor-register/pkg/util/errorutil"
)

type VisitorServiceSuite struct {
	suite.Suite
	ctx       context.Context
	clock     time.Time
	visitors  *memory.VisitorRepository
	service   *VisitorService
	published []events.Event
}

func TestVisitorServiceSuite(t *testing.T) {
	suite.Run(t, new(VisitorServiceSuite))
}

func (s *VisitorServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = time.Date(2026, time.March, 11, 10, 30, 0, 0, time.UTC)
	s.published = nil

	staff := memory.NewStaffRepository(memory.DefaultStaff()...)
	s.visitors = memory.NewVisitorRepository(staff)

	dispatcher := events.NewInMemoryDispatcher()
	record := func(_ context.Context, e events.Event) error {
		s.published = append(s.published, e)
		return nil
	}
	dispatcher.Subscribe(events.EventVisitorCheckedIn, record)
	dispatcher.Subscribe(events.EventVisitorCheckedOut, record)

	s.service = NewVisitorService(VisitorDependencies{
		VisitorRepo: s.visitors,
		StaffRepo:   staff,
		Dispatcher:  dispatcher,
	})
	s.service.now = func() time.Time { return s.clock }
}

func validInput() CheckInInput {
	return CheckInInput{
		FullName:        "Ama Mensah",
		Phone:           "0241234567",
		GhanaCardNumber: "GHA-123456789-0",
		StaffMemberID:   "1",
		Purpose:         "Meeting",
	}
}

func (s *VisitorServiceSuite) checkIn(at time.Time) *domain.Visitor {
	s.clock = at
	visitor, err := s.service.CheckIn(s.ctx, nil, validInput())
	s.Require().NoError(err)
	return visitor
}

func (s *VisitorServiceSuite) TestCheckInAssignsTicketAndPublishes() {
	actor := &domain.User{ID: 4}
	visitor, err := s.service.CheckIn(s.ctx, actor, validInput())
	s.Require().NoError(err)

	s.Regexp(`^VIS-20260311-\d{5}$`, visitor.TicketNumber)
	s.Equal(domain.VisitorStatusCheckedIn, visitor.Status)
	s.True(visitor.CheckInTime.Equal(s.clock))
	s.Nil(visitor.CheckOutTime)
	s.Equal("John Doe - Engineering", domain.StaffLabel(visitor.Staff))

	s.Require().Len(s.published, 1)
	s.Equal(events.EventVisitorCheckedIn, s.published[0].Type)
	s.Equal(visitor.TicketNumber, s.published[0].TicketNumber)
	s.EqualValues(4, *s.published[0].ActorUserID)
}

func (s *VisitorServiceSuite) TestCheckInRetriesTicketCollisions() {
	suffixes := []int{7, 7, 7, 8}
	s.service.suffix = func() int {
		next := suffixes[0]
		suffixes = suffixes[1:]
		return next
	}

	first, err := s.service.CheckIn(s.ctx, nil, validInput())
	s.Require().NoError(err)
	s.Equal("VIS-20260311-00007", first.TicketNumber)

	second, err := s.service.CheckIn(s.ctx, nil, validInput())
	s.Require().NoError(err)
	s.Equal("VIS-20260311-00008", second.TicketNumber)
}

func (s *VisitorServiceSuite) TestCheckInMissingParametersInOrder() {
	cases := []struct {
		mutate func(*CheckInInput)
		param  string
	}{
		{func(in *CheckInInput) { *in = CheckInInput{} }, "fullName"},
		{func(in *CheckInInput) { in.Phone = "  " }, "phone"},
		{func(in *CheckInInput) { in.GhanaCardNumber = ""; in.Purpose = "" }, "ghanaCardNumber"},
		{func(in *CheckInInput) { in.StaffMemberID = "" }, "staffMemberId"},
		{func(in *CheckInInput) { in.Purpose = "" }, "purpose"},
	}
	for _, tc := range cases {
		in := validInput()
		tc.mutate(&in)
		_, err := s.service.CheckIn(s.ctx, nil, in)
		status, message := statusOf(s.T(), err)
		s.Equal(http.StatusBadRequest, status)
		s.Equal("Missing required parameter: "+tc.param, message)
	}
}

func (s *VisitorServiceSuite) TestCheckInUnknownStaff() {
	for _, id := range []string{"99", "abc"} {
		in := validInput()
		in.StaffMemberID = id
		_, err := s.service.CheckIn(s.ctx, nil, in)
		status, message := statusOf(s.T(), err)
		s.Equal(http.StatusBadRequest, status)
		s.Equal("Staff member not found", message)
	}
}

func (s *VisitorServiceSuite) TestCheckInValidationErrors() {
	in := validInput()
	in.Phone = "12345"
	in.GhanaCardNumber = "GHA-1-1"
	in.Purpose = "Party"

	_, err := s.service.CheckIn(s.ctx, nil, in)
	domainErr := errorutil.ToDomainError(err)
	s.Equal(http.StatusBadRequest, domainErr.HTTPStatus)
	s.Equal("Validation failed", domainErr.Message)
	s.Equal([]string{
		"Phone must be in Ghana format (0XXXXXXXXX or +233XXXXXXXXX)",
		"Ghana card number must be in format GHA-XXXXXXXX-X",
		"Purpose is not included in the list",
	}, domainErr.Details["errors"])
	s.Empty(s.published)
}

func (s *VisitorServiceSuite) TestCheckInAcceptsInternationalPhone() {
	in := validInput()
	in.Phone = "+233241234567"
	_, err := s.service.CheckIn(s.ctx, nil, in)
	s.NoError(err)
}

func (s *VisitorServiceSuite) TestCheckOut() {
	visitor := s.checkIn(s.clock)
	s.clock = s.clock.Add(2 * time.Hour)

	out, err := s.service.CheckOut(s.ctx, nil, visitor.TicketNumber)
	s.Require().NoError(err)
	s.Equal(domain.VisitorStatusCheckedOut, out.Status)
	s.Require().NotNil(out.CheckOutTime)
	s.True(out.CheckOutTime.Equal(s.clock))
	s.Equal(events.EventVisitorCheckedOut, s.published[len(s.published)-1].Type)

	_, err = s.service.CheckOut(s.ctx, nil, visitor.TicketNumber)
	status, message := statusOf(s.T(), err)
	s.Equal(http.StatusBadRequest, status)
	s.Equal("Visitor has already checked out", message)
}

func (s *VisitorServiceSuite) TestCheckOutErrors() {
	_, err := s.service.CheckOut(s.ctx, nil, " ")
	status, message := statusOf(s.T(), err)
	s.Equal(http.StatusBadRequest, status)
	s.Equal("ticketNumber is required", message)

	_, err = s.service.CheckOut(s.ctx, nil, "VIS-00000000-00000")
	status, message = statusOf(s.T(), err)
	s.Equal(http.StatusNotFound, status)
	s.Equal("Visitor with ticket number VIS-00000000-00000 not found", message)
}

func (s *VisitorServiceSuite) TestListPaginates() {
	start := s.clock
	for i := 0; i < 12; i++ {
		s.checkIn(start.Add(time.Duration(i) * time.Minute))
	}

	first, err := s.service.List(s.ctx, 0, "")
	s.Require().NoError(err)
	s.Len(first.Visitors, 10)
	s.Equal(Pagination{CurrentPage: 1, TotalPages: 2, TotalCount: 12, PerPage: 10}, first.Pagination)
	s.True(first.Visitors[0].CheckInTime.After(first.Visitors[1].CheckInTime))

	second, err := s.service.List(s.ctx, 2, "")
	s.Require().NoError(err)
	s.Len(second.Visitors, 2)

	empty, err := s.service.List(s.ctx, 1, "no-such-ticket")
	s.Require().NoError(err)
	s.Empty(empty.Visitors)
	s.Equal(0, empty.Pagination.TotalPages)
}

func (s *VisitorServiceSuite) TestLogsTimePeriod() {
	s.checkIn(time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC))
	s.checkIn(time.Date(2026, time.March, 9, 9, 0, 0, 0, time.UTC))
	s.checkIn(time.Date(2026, time.March, 11, 8, 0, 0, 0, time.UTC))
	s.clock = time.Date(2026, time.March, 11, 18, 0, 0, 0, time.UTC)

	cases := map[string]int64{"": 3, "today": 1, "ThisWeek": 2, "thismonth": 2, "THISYEAR": 3}
	for period, want := range cases {
		page, err := s.service.Logs(s.ctx, 1, "", period)
		s.Require().NoError(err, period)
		s.Equal(want, page.Pagination.TotalCount, period)
	}

	_, err := s.service.Logs(s.ctx, 1, "", "lastweek")
	status, message := statusOf(s.T(), err)
	s.Equal(http.StatusBadRequest, status)
	s.Equal("Invalid timePeriod. Valid values: today, thisweek, thismonth, thisyear", message)
}

func (s *VisitorServiceSuite) TestLatest() {
	a := s.checkIn(s.clock)
	s.checkIn(s.clock.Add(time.Minute))
	s.clock = s.clock.Add(time.Hour)
	_, err := s.service.CheckOut(s.ctx, nil, a.TicketNumber)
	s.Require().NoError(err)

	ins, err := s.service.LatestCheckIns(s.ctx, "")
	s.Require().NoError(err)
	s.Len(ins, 1)

	outs, err := s.service.LatestCheckOuts(s.ctx, "1")
	s.Require().NoError(err)
	s.Require().Len(outs, 1)
	s.Equal(a.TicketNumber, outs[0].TicketNumber)

	_, err = s.service.LatestCheckIns(s.ctx, "11")
	_, message := statusOf(s.T(), err)
	s.Equal("Limit cannot exceed 10", message)
}

func (s *VisitorServiceSuite) TestAnalyticsMonthlyRange() {
	s.checkIn(time.Date(2025, time.October, 20, 9, 0, 0, 0, time.UTC))
	s.checkIn(time.Date(2025, time.November, 3, 9, 0, 0, 0, time.UTC))
	s.checkIn(time.Date(2026, time.February, 3, 9, 0, 0, 0, time.UTC))
	s.clock = time.Date(2026, time.March, 11, 12, 0, 0, 0, time.UTC)

	analytics, err := s.service.Analytics(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(analytics.MonthlyVisits, 5)
	s.Equal(domain.MonthlyVisits{Month: "2025-11", MonthName: "November 2025", Count: 1}, analytics.MonthlyVisits[0])
	s.Equal(domain.MonthlyVisits{Month: "2025-12", MonthName: "December 2025", Count: 0}, analytics.MonthlyVisits[1])
	s.Equal(domain.MonthlyVisits{Month: "2026-02", MonthName: "February 2026", Count: 1}, analytics.MonthlyVisits[3])
	s.Equal("2026-03", analytics.MonthlyVisits[4].Month)

	s.Equal([]domain.DepartmentVisits{{Department: "Engineering", Count: 3}}, analytics.DepartmentVisits)
	s.Require().Len(analytics.MostFrequentVisitors, 1)
	s.EqualValues(3, analytics.MostFrequentVisitors[0].VisitCount)
}

func TestParseLimit(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		message string
	}{
		{raw: "", want: 5},
		{raw: "1", want: 1},
		{raw: "10", want: 10},
		{raw: "0", message: "Limit must be at least 1"},
		{raw: "11", message: "Limit cannot exceed 10"},
		{raw: "99999999999999999999999", message: "Limit cannot exceed 10"},
		{raw: "-1", message: "Limit must be a valid number"},
		{raw: "5x", message: "Limit must be a valid number"},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseLimit(tc.raw)
			if tc.message == "" {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
				return
			}
			_, message := statusOf(t, err)
			assert.Equal(t, tc.message, message)
		})
	}
}
