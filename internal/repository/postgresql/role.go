package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftwise/roster-backend-go/internal/domain/role"
	"github.com/shiftwise/roster-backend-go/internal/pkg/database"
)

// Roles live in two tables: the role row itself and one row per schedule day
// in role_schedule_entries with a UNIQUE (role_id, day) constraint. The
// per-day upsert is therefore a single-row ON CONFLICT statement rather than
// a read-modify-write of the whole collection, which keeps concurrent edits
// of different days from clobbering each other.
type roleRepositoryImpl struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) role.Repository {
	return &roleRepositoryImpl{db: db}
}

// List implements role.Repository.
func (r *roleRepositoryImpl) List(ctx context.Context) ([]role.Role, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, description, color, assigned_employees, created_at, updated_at
		FROM roles
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []role.Role
	byID := map[string]int{}
	for rows.Next() {
		var ro role.Role
		if err := rows.Scan(&ro.ID, &ro.Name, &ro.Description, &ro.Color, &ro.AssignedEmployees, &ro.CreatedAt, &ro.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		ro.Schedule = map[string]role.DayTimes{}
		byID[ro.ID] = len(roles)
		roles = append(roles, ro)
	}
	rows.Close()

	entryRows, err := q.Query(ctx, `
		SELECT role_id, day, start_time, end_time
		FROM role_schedule_entries
		ORDER BY day
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list role schedule entries: %w", err)
	}
	defer entryRows.Close()

	for entryRows.Next() {
		var roleID string
		var day time.Time
		var times role.DayTimes
		if err := entryRows.Scan(&roleID, &day, &times.StartTime, &times.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan role schedule entry: %w", err)
		}
		if i, ok := byID[roleID]; ok {
			roles[i].Schedule[day.Format(role.DayLayout)] = times
		}
	}

	return roles, nil
}

// GetByID implements role.Repository.
func (r *roleRepositoryImpl) GetByID(ctx context.Context, id string) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	var ro role.Role
	err := q.QueryRow(ctx, `
		SELECT id, name, description, color, assigned_employees, created_at, updated_at
		FROM roles
		WHERE id = $1
	`, id).Scan(&ro.ID, &ro.Name, &ro.Description, &ro.Color, &ro.AssignedEmployees, &ro.CreatedAt, &ro.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return role.Role{}, role.ErrRoleNotFound
		}
		return role.Role{}, fmt.Errorf("failed to get role: %w", err)
	}

	ro.Schedule = map[string]role.DayTimes{}
	rows, err := q.Query(ctx, `
		SELECT day, start_time, end_time
		FROM role_schedule_entries
		WHERE role_id = $1
		ORDER BY day
	`, id)
	if err != nil {
		return role.Role{}, fmt.Errorf("failed to get role schedule entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var day time.Time
		var times role.DayTimes
		if err := rows.Scan(&day, &times.StartTime, &times.EndTime); err != nil {
			return role.Role{}, fmt.Errorf("failed to scan role schedule entry: %w", err)
		}
		ro.Schedule[day.Format(role.DayLayout)] = times
	}

	return ro, nil
}

// Create implements role.Repository.
func (r *roleRepositoryImpl) Create(ctx context.Context, ro role.Role) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx, `
		INSERT INTO roles (name, description, color, assigned_employees)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, ro.Name, ro.Description, ro.Color, ro.AssignedEmployees).
		Scan(&ro.ID, &ro.CreatedAt, &ro.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return role.Role{}, role.ErrRoleNameExists
		}
		return role.Role{}, fmt.Errorf("failed to create role: %w", err)
	}

	if ro.Schedule == nil {
		ro.Schedule = map[string]role.DayTimes{}
	}
	return ro, nil
}

// Update implements role.Repository.
func (r *roleRepositoryImpl) Update(ctx context.Context, id string, fields role.UpdateRoleFields) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	updates := []string{}
	args := []interface{}{}
	argIdx := 1

	if fields.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *fields.Name)
		argIdx++
	}
	if fields.Description != nil {
		updates = append(updates, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *fields.Description)
		argIdx++
	}
	if fields.Color != nil {
		updates = append(updates, fmt.Sprintf("color = $%d", argIdx))
		args = append(args, *fields.Color)
		argIdx++
	}
	if fields.AssignedEmployees != nil {
		updates = append(updates, fmt.Sprintf("assigned_employees = $%d", argIdx))
		args = append(args, *fields.AssignedEmployees)
		argIdx++
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, id)

	query := "UPDATE roles SET " + strings.Join(updates, ", ") + fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return role.Role{}, role.ErrRoleNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return role.Role{}, role.ErrRoleNameExists
		}
		return role.Role{}, fmt.Errorf("failed to update role: %w", err)
	}

	return r.GetByID(ctx, id)
}

// DeleteRole implements role.Repository. Schedule entries go with the role
// via ON DELETE CASCADE.
func (r *roleRepositoryImpl) DeleteRole(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return role.ErrRoleNotFound
	}

	return nil
}

// UpsertDayEntry implements role.Repository.
func (r *roleRepositoryImpl) UpsertDayEntry(ctx context.Context, roleID, day string, times role.DayTimes) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO role_schedule_entries (role_id, day, start_time, end_time)
		SELECT $1, $2, $3, $4
		WHERE EXISTS (SELECT 1 FROM roles WHERE id = $1)
		ON CONFLICT (role_id, day)
		DO UPDATE SET start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time
	`

	commandTag, err := q.Exec(ctx, query, roleID, day, times.StartTime, times.EndTime)
	if err != nil {
		return fmt.Errorf("failed to upsert role schedule entry: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return role.ErrRoleNotFound
	}

	return nil
}

// DeleteDayEntry implements role.Repository.
func (r *roleRepositoryImpl) DeleteDayEntry(ctx context.Context, roleID, day string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM role_schedule_entries WHERE role_id = $1 AND day = $2`, roleID, day)
	if err != nil {
		return fmt.Errorf("failed to delete role schedule entry: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return role.ErrDayEntryNotFound
	}

	return nil
}

// ReplaceSchedule implements role.Repository. Delete-then-insert inside one
// transaction so readers never observe a half-replaced schedule.
func (r *roleRepositoryImpl) ReplaceSchedule(ctx context.Context, roleID string, schedule map[string]role.DayTimes) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM roles WHERE id = $1)`, roleID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check role: %w", err)
		}
		if !exists {
			return role.ErrRoleNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM role_schedule_entries WHERE role_id = $1`, roleID); err != nil {
			return fmt.Errorf("failed to clear role schedule: %w", err)
		}
		for day, times := range schedule {
			if _, err := tx.Exec(ctx, `
				INSERT INTO role_schedule_entries (role_id, day, start_time, end_time)
				VALUES ($1, $2, $3, $4)
			`, roleID, day, times.StartTime, times.EndTime); err != nil {
				return fmt.Errorf("failed to write role schedule entry: %w", err)
			}
		}
		return nil
	})
}
