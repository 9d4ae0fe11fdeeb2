package shift

import (
	"context"
	"time"
)

// ListFilter narrows List to an inclusive date window and optionally to one
// employee.
type ListFilter struct {
	From       time.Time
	To         time.Time
	EmployeeID *string
}

type UpdateShiftFields struct {
	RoleID    *string
	Date      *time.Time
	StartTime *string
	EndTime   *string
}

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Shift, error)
	Create(ctx context.Context, s Shift) (Shift, error)
	// BulkCreate inserts each shift independently: a failure on one item does
	// not roll back the others. The returned slice holds the shifts that were
	// created; the error, if any, is the first insertion failure.
	BulkCreate(ctx context.Context, shifts []Shift) ([]Shift, error)
	Update(ctx context.Context, id string, fields UpdateShiftFields) (Shift, error)
	DeleteByID(ctx context.Context, id string) error
	// DeleteByDateRange removes every shift whose date falls in [from, to],
	// both ends inclusive. Used for ad hoc cleanup and as the rollout
	// destination purge.
	DeleteByDateRange(ctx context.Context, from, to time.Time) error
}
