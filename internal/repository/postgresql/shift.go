package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise/roster-backend-go/internal/domain/shift"
	"github.com/shiftwise/roster-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.Repository {
	return &shiftRepositoryImpl{db: db}
}

// List implements shift.Repository.
func (r *shiftRepositoryImpl) List(ctx context.Context, filter shift.ListFilter) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, role_id, date, start_time, end_time, created_at, updated_at
		FROM shifts
		WHERE date >= $1 AND date <= $2
	`
	args := []interface{}{filter.From, filter.To}
	if filter.EmployeeID != nil {
		query += " AND employee_id = $3"
		args = append(args, *filter.EmployeeID)
	}
	query += " ORDER BY date, start_time"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var s shift.Shift
		if err := rows.Scan(&s.ID, &s.EmployeeID, &s.RoleID, &s.Date, &s.StartTime, &s.EndTime, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	return shifts, nil
}

// Create implements shift.Repository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (employee_id, role_id, date, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, s.EmployeeID, s.RoleID, s.Date, s.StartTime, s.EndTime).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return s, nil
}

// BulkCreate implements shift.Repository. Each insert is issued on its own:
// a failure on one item does not roll back the others. The first failure is
// returned after the whole batch has been attempted.
func (r *shiftRepositoryImpl) BulkCreate(ctx context.Context, shifts []shift.Shift) ([]shift.Shift, error) {
	created := make([]shift.Shift, 0, len(shifts))
	var firstErr error
	for _, s := range shifts {
		c, err := r.Create(ctx, s)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		created = append(created, c)
	}
	return created, firstErr
}

// Update implements shift.Repository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, id string, fields shift.UpdateShiftFields) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	updates := []string{}
	args := []interface{}{}
	argIdx := 1

	if fields.RoleID != nil {
		updates = append(updates, fmt.Sprintf("role_id = $%d", argIdx))
		args = append(args, *fields.RoleID)
		argIdx++
	}
	if fields.Date != nil {
		updates = append(updates, fmt.Sprintf("date = $%d", argIdx))
		args = append(args, *fields.Date)
		argIdx++
	}
	if fields.StartTime != nil {
		updates = append(updates, fmt.Sprintf("start_time = $%d", argIdx))
		args = append(args, *fields.StartTime)
		argIdx++
	}
	if fields.EndTime != nil {
		updates = append(updates, fmt.Sprintf("end_time = $%d", argIdx))
		args = append(args, *fields.EndTime)
		argIdx++
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, id)

	query := "UPDATE shifts SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING id, employee_id, role_id, date, start_time, end_time, created_at, updated_at", argIdx)

	var s shift.Shift
	err := q.QueryRow(ctx, query, args...).
		Scan(&s.ID, &s.EmployeeID, &s.RoleID, &s.Date, &s.StartTime, &s.EndTime, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return s, nil
}

// DeleteByID implements shift.Repository.
func (r *shiftRepositoryImpl) DeleteByID(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// DeleteByDateRange implements shift.Repository. Deleting an empty range is
// not an error; the rollout purge relies on that.
func (r *shiftRepositoryImpl) DeleteByDateRange(ctx context.Context, from, to time.Time) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM shifts WHERE date >= $1 AND date <= $2`, from, to); err != nil {
		return fmt.Errorf("failed to delete shifts in range: %w", err)
	}

	return nil
}
