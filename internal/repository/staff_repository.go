package repository

import (
	"context"

	"github.com/frontdesk/visitor-register/internal/domain"
)

// StaffRepository handles persistence for staff members.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffMember) error
	GetByID(ctx context.Context, id int64) (*domain.StaffMember, error)
	List(ctx context.Context) ([]domain.StaffMember, error)
}

type staffRepository struct {
	db DB
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(db DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	const query = `
        INSERT INTO staff_members (name, department)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, staff.Name, staff.Department).
		Scan(&staff.ID, &staff.CreatedAt, &staff.UpdatedAt)
	return mapWriteError(err)
}

func (r *staffRepository) GetByID(ctx context.Context, id int64) (*domain.StaffMember, error) {
	const query = `
        SELECT id, name, department, created_at, updated_at
        FROM staff_members WHERE id=$1`

	var staff domain.StaffMember
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&staff.ID,
		&staff.Name,
		&staff.Department,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) List(ctx context.Context) ([]domain.StaffMember, error) {
	const query = `
        SELECT id, name, department, created_at, updated_at
        FROM staff_members ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.StaffMember{}
	for rows.Next() {
		var staff domain.StaffMember
		if err := rows.Scan(
			&staff.ID,
			&staff.Name,
			&staff.Department,
			&staff.CreatedAt,
			&staff.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, staff)
	}
	return result, rows.Err()
}
