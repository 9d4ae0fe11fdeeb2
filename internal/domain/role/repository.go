package role

import "context"

type Repository interface {
	// List returns every role with its full schedule and assignments.
	List(ctx context.Context) ([]Role, error)
	GetByID(ctx context.Context, id string) (Role, error)
	Create(ctx context.Context, r Role) (Role, error)
	Update(ctx context.Context, id string, fields UpdateRoleFields) (Role, error)
	// DeleteRole removes the role and all of its schedule entries as one
	// logical unit.
	DeleteRole(ctx context.Context, id string) error

	// UpsertDayEntry inserts or replaces the single entry for day. Every
	// other day of the role's schedule is untouched from the caller's
	// perspective, whatever rewriting the store does internally.
	UpsertDayEntry(ctx context.Context, roleID, day string, times DayTimes) error
	DeleteDayEntry(ctx context.Context, roleID, day string) error
	// ReplaceSchedule swaps the role's whole schedule collection. Used by the
	// rollout prune and clone persists, which operate on the full window.
	ReplaceSchedule(ctx context.Context, roleID string, schedule map[string]DayTimes) error
}

type UpdateRoleFields struct {
	Name              *string
	Description       *string
	Color             *Color
	AssignedEmployees *[]string
}
