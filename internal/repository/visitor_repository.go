package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/frontdesk/visitor-register/internal/domain"
)

// VisitorRepository persists visits and answers the register's read queries.
type VisitorRepository interface {
	Create(ctx context.Context, visitor *domain.Visitor) error
	ExistsByTicketNumber(ctx context.Context, ticketNumber string) (bool, error)
	GetByTicketNumber(ctx context.Context, ticketNumber string) (*domain.Visitor, error)
	// CheckOut flips a checked_in visit to checked_out. It returns pgx.ErrNoRows
	// when no checked_in visit carries the ticket.
	CheckOut(ctx context.Context, ticketNumber string, at time.Time) (*domain.Visitor, error)
	List(ctx context.Context, filter VisitorFilter) ([]domain.Visitor, int64, error)
	Latest(ctx context.Context, status domain.VisitorStatus, limit int) ([]domain.Visitor, error)

	DepartmentVisits(ctx context.Context, limit int) ([]domain.DepartmentVisits, error)
	MonthlyCounts(ctx context.Context, from time.Time, loc *time.Location) (map[string]int64, error)
	MostVisitedStaff(ctx context.Context, limit int) ([]domain.StaffVisits, error)
	MostFrequentVisitors(ctx context.Context, limit int) ([]domain.FrequentVisitor, error)
}

// VisitorFilter narrows visitor listings. Zero values mean "no constraint";
// Limit <= 0 returns every matching row.
type VisitorFilter struct {
	TicketNumber string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

type visitorRepository struct {
	db DB
}

// NewVisitorRepository returns a Postgres-backed implementation.
func NewVisitorRepository(db DB) VisitorRepository {
	return &visitorRepository{db: db}
}

const visitorSelect = `
        SELECT v.id, v.ticket_number, v.full_name, v.phone, v.ghana_card_number,
               v.staff_member_id, v.purpose, v.check_in_time, v.check_out_time, v.status,
               v.created_at, v.updated_at,
               s.id, s.name, s.department, s.created_at, s.updated_at
        FROM visitors v
        LEFT JOIN staff_members s ON s.id = v.staff_member_id`

func scanVisitor(row pgx.Row) (*domain.Visitor, error) {
	var (
		visitor    domain.Visitor
		staffID    *int64
		staffName  *string
		staffDept  *string
		staffCreat *time.Time
		staffUpd   *time.Time
	)
	if err := row.Scan(
		&visitor.ID,
		&visitor.TicketNumber,
		&visitor.FullName,
		&visitor.Phone,
		&visitor.GhanaCardNumber,
		&visitor.StaffMemberID,
		&visitor.Purpose,
		&visitor.CheckInTime,
		&visitor.CheckOutTime,
		&visitor.Status,
		&visitor.CreatedAt,
		&visitor.UpdatedAt,
		&staffID,
		&staffName,
		&staffDept,
		&staffCreat,
		&staffUpd,
	); err != nil {
		return nil, err
	}
	if staffID != nil {
		visitor.Staff = &domain.StaffMember{
			ID:         *staffID,
			Name:       deref(staffName),
			Department: deref(staffDept),
		}
		if staffCreat != nil {
			visitor.Staff.CreatedAt = *staffCreat
		}
		if staffUpd != nil {
			visitor.Staff.UpdatedAt = *staffUpd
		}
	}
	return &visitor, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *visitorRepository) Create(ctx context.Context, visitor *domain.Visitor) error {
	const query = `
        INSERT INTO visitors (ticket_number, full_name, phone, ghana_card_number, staff_member_id,
                              purpose, check_in_time, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		visitor.TicketNumber,
		visitor.FullName,
		visitor.Phone,
		visitor.GhanaCardNumber,
		visitor.StaffMemberID,
		visitor.Purpose,
		visitor.CheckInTime,
		visitor.Status,
	).Scan(&visitor.ID, &visitor.CreatedAt, &visitor.UpdatedAt)
	return mapWriteError(err)
}

func (r *visitorRepository) ExistsByTicketNumber(ctx context.Context, ticketNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM visitors WHERE ticket_number=$1)`, ticketNumber).Scan(&exists)
	return exists, err
}

func (r *visitorRepository) GetByTicketNumber(ctx context.Context, ticketNumber string) (*domain.Visitor, error) {
	return scanVisitor(r.db.QueryRow(ctx, visitorSelect+` WHERE v.ticket_number=$1`, ticketNumber))
}

func (r *visitorRepository) CheckOut(ctx context.Context, ticketNumber string, at time.Time) (*domain.Visitor, error) {
	const query = `
        UPDATE visitors SET status=$1, check_out_time=$2, updated_at=NOW()
        WHERE ticket_number=$3 AND status=$4`

	cmd, err := r.db.Exec(ctx, query,
		domain.VisitorStatusCheckedOut,
		at,
		ticketNumber,
		domain.VisitorStatusCheckedIn,
	)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return r.GetByTicketNumber(ctx, ticketNumber)
}

func visitorWhere(filter VisitorFilter) (string, []any) {
	args := []any{}
	clauses := []string{}

	if term := strings.TrimSpace(filter.TicketNumber); term != "" {
		args = append(args, containsPattern(term))
		clauses = append(clauses, fmt.Sprintf(`v.ticket_number ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		clauses = append(clauses, fmt.Sprintf("v.check_in_time >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clauses = append(clauses, fmt.Sprintf("v.check_in_time <= $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *visitorRepository) List(ctx context.Context, filter VisitorFilter) ([]domain.Visitor, int64, error) {
	where, args := visitorWhere(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM visitors v`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := visitorSelect + where + " ORDER BY v.check_in_time DESC, v.id DESC"
	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, offset)
	}

	visitors, err := r.collect(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return visitors, total, nil
}

func (r *visitorRepository) Latest(ctx context.Context, status domain.VisitorStatus, limit int) ([]domain.Visitor, error) {
	order := "v.check_in_time DESC"
	if status == domain.VisitorStatusCheckedOut {
		order = "v.check_out_time DESC"
	}
	query := visitorSelect + ` WHERE v.status=$1 ORDER BY ` + order + `, v.id DESC LIMIT $2`
	return r.collect(ctx, query, status, limit)
}

func (r *visitorRepository) collect(ctx context.Context, query string, args ...any) ([]domain.Visitor, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Visitor{}
	for rows.Next() {
		visitor, err := scanVisitor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *visitor)
	}
	return result, rows.Err()
}

func (r *visitorRepository) DepartmentVisits(ctx context.Context, limit int) ([]domain.DepartmentVisits, error) {
	const query = `
        SELECT s.department, COUNT(v.id)
        FROM visitors v
        JOIN staff_members s ON s.id = v.staff_member_id
        GROUP BY s.department
        ORDER BY COUNT(v.id) DESC, s.department
        LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.DepartmentVisits{}
	for rows.Next() {
		var item domain.DepartmentVisits
		if err := rows.Scan(&item.Department, &item.Count); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *visitorRepository) MonthlyCounts(ctx context.Context, from time.Time, loc *time.Location) (map[string]int64, error) {
	const query = `
        SELECT to_char(check_in_time AT TIME ZONE $2, 'YYYY-MM') AS month, COUNT(*)
        FROM visitors
        WHERE check_in_time >= $1
        GROUP BY month`

	rows, err := r.db.Query(ctx, query, from, loc.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[string]int64{}
	for rows.Next() {
		var (
			month string
			count int64
		)
		if err := rows.Scan(&month, &count); err != nil {
			return nil, err
		}
		result[month] = count
	}
	return result, rows.Err()
}

func (r *visitorRepository) MostVisitedStaff(ctx context.Context, limit int) ([]domain.StaffVisits, error) {
	const query = `
        SELECT s.id, s.name, s.department, COUNT(v.id)
        FROM visitors v
        JOIN staff_members s ON s.id = v.staff_member_id
        GROUP BY s.id, s.name, s.department
        ORDER BY COUNT(v.id) DESC, s.id
        LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.StaffVisits{}
	for rows.Next() {
		var item domain.StaffVisits
		if err := rows.Scan(&item.StaffID, &item.Name, &item.Department, &item.VisitCount); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *visitorRepository) MostFrequentVisitors(ctx context.Context, limit int) ([]domain.FrequentVisitor, error) {
	const query = `
        SELECT full_name, phone, COUNT(*)
        FROM visitors
        GROUP BY full_name, phone
        ORDER BY COUNT(*) DESC, full_name, phone
        LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.FrequentVisitor{}
	for rows.Next() {
		var item domain.FrequentVisitor
		if err := rows.Scan(&item.FullName, &item.Phone, &item.VisitCount); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
