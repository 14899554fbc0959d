//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/frontdesk/visitor-register/internal/domain"
	"github.com/frontdesk/visitor-register/internal/persistence"
	"github.com/frontdesk/visitor-register/internal/repository"
	"github.com/frontdesk/visitor-register/pkg/testutil/containers"
)

type PostgresRepositorySuite struct {
	suite.Suite
	pg       *containers.PostgresContainer
	users    repository.UserRepository
	staff    repository.StaffRepository
	visitors repository.VisitorRepository
}

func TestPostgresRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container tests in short mode")
	}
	suite.Run(t, new(PostgresRepositorySuite))
}

func (s *PostgresRepositorySuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	require.NoError(s.T(), persistence.RunMigrations(s.pg.Pool, zap.NewNop()))

	s.users = repository.NewUserRepository(s.pg.Pool)
	s.staff = repository.NewStaffRepository(s.pg.Pool)
	s.visitors = repository.NewVisitorRepository(s.pg.Pool)
}

func (s *PostgresRepositorySuite) SetupTest() {
	_, err := s.pg.Pool.Exec(context.Background(), `TRUNCATE visitors, users RESTART IDENTITY`)
	s.Require().NoError(err)
}

func (s *PostgresRepositorySuite) checkIn(ticket string, staffID int64, at time.Time) *domain.Visitor {
	visitor := &domain.Visitor{
		TicketNumber:    ticket,
		FullName:        "Ama Mensah",
		Phone:           "0241234567",
		GhanaCardNumber: "GHA-123456789-0",
		StaffMemberID:   staffID,
		Purpose:         domain.PurposeMeeting,
		CheckInTime:     at,
		Status:          domain.VisitorStatusCheckedIn,
	}
	s.Require().NoError(s.visitors.Create(context.Background(), visitor))
	return visitor
}

func (s *PostgresRepositorySuite) TestSeededStaffDirectory() {
	staff, err := s.staff.List(context.Background())
	s.Require().NoError(err)
	s.Require().Len(staff, 8)
	s.Equal("John Doe", staff[0].Name)
	s.Equal("Customer Service", staff[7].Department)
}

func (s *PostgresRepositorySuite) TestUserLifecycle() {
	ctx := context.Background()
	user := &domain.User{
		Email:        "desk@example.com",
		Name:         "Front Desk",
		Role:         domain.UserRoleAdmin,
		PasswordHash: "hash",
		JTI:          uuid.NewString(),
	}
	s.Require().NoError(s.users.Create(ctx, user))

	dup := *user
	dup.JTI = uuid.NewString()
	s.ErrorIs(s.users.Create(ctx, &dup), repository.ErrDuplicate)

	found, err := s.users.GetByEmail(ctx, "DESK@example.com")
	s.Require().NoError(err)
	s.Equal(user.ID, found.ID)
	s.Equal(domain.UserRoleAdmin, found.Role)

	rotated := uuid.NewString()
	s.Require().NoError(s.users.UpdateJTI(ctx, user.ID, rotated))
	found, err = s.users.GetByID(ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(rotated, found.JTI)

	s.ErrorIs(s.users.UpdateJTI(ctx, 9999, rotated), pgx.ErrNoRows)
}

func (s *PostgresRepositorySuite) TestVisitorCheckInAndOut() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	s.checkIn("VIS-20260101-00001", 1, now)

	err := s.visitors.Create(ctx, &domain.Visitor{
		TicketNumber: "VIS-20260101-00001", FullName: "x", Phone: "0241234567",
		GhanaCardNumber: "GHA-123456789-0", StaffMemberID: 1, Purpose: domain.PurposeOther,
		CheckInTime: now, Status: domain.VisitorStatusCheckedIn,
	})
	s.ErrorIs(err, repository.ErrDuplicate)

	out, err := s.visitors.CheckOut(ctx, "VIS-20260101-00001", now.Add(time.Hour))
	s.Require().NoError(err)
	s.Equal(domain.VisitorStatusCheckedOut, out.Status)
	s.Require().NotNil(out.Staff)
	s.Equal("John Doe", out.Staff.Name)

	_, err = s.visitors.CheckOut(ctx, "VIS-20260101-00001", now.Add(2*time.Hour))
	s.ErrorIs(err, pgx.ErrNoRows)
}

func (s *PostgresRepositorySuite) TestListEscapesWildcardsAndPages() {
	ctx := context.Background()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s.checkIn("VIS-20260310-00001", 1, base)
	s.checkIn("VIS-20260310-00002", 2, base.Add(time.Hour))
	s.checkIn("VIS-20260311-00003", 3, base.Add(2*time.Hour))

	page, total, err := s.visitors.List(ctx, repository.VisitorFilter{Limit: 2})
	s.Require().NoError(err)
	s.EqualValues(3, total)
	s.Require().Len(page, 2)
	s.Equal("VIS-20260311-00003", page[0].TicketNumber)

	matched, total, err := s.visitors.List(ctx, repository.VisitorFilter{TicketNumber: "vis-20260310"})
	s.Require().NoError(err)
	s.EqualValues(2, total)
	s.Len(matched, 2)

	_, total, err = s.visitors.List(ctx, repository.VisitorFilter{TicketNumber: "VIS_2026"})
	s.Require().NoError(err)
	s.EqualValues(0, total)
}

func (s *PostgresRepositorySuite) TestAggregates() {
	ctx := context.Background()
	at := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	s.checkIn("T1", 1, at)
	s.checkIn("T2", 1, at)
	s.checkIn("T3", 3, at.AddDate(0, 1, 0))

	departments, err := s.visitors.DepartmentVisits(ctx, 5)
	s.Require().NoError(err)
	s.Equal([]domain.DepartmentVisits{{Department: "Engineering", Count: 2}, {Department: "Sales", Count: 1}}, departments)

	months, err := s.visitors.MonthlyCounts(ctx, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.UTC)
	s.Require().NoError(err)
	s.Equal(map[string]int64{"2026-02": 2, "2026-03": 1}, months)

	staff, err := s.visitors.MostVisitedStaff(ctx, 5)
	s.Require().NoError(err)
	s.Require().Len(staff, 2)
	s.EqualValues(2, staff[0].VisitCount)

	frequent, err := s.visitors.MostFrequentVisitors(ctx, 5)
	s.Require().NoError(err)
	s.Require().Len(frequent, 1)
	s.EqualValues(3, frequent[0].VisitCount)
}
