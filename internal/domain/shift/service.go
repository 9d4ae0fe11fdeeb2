package shift

import "context"

type Service interface {
	// GetSchedulesForRange lists shifts in the window, localizing times when
	// the request carries a viewer zone.
	GetSchedulesForRange(ctx context.Context, req ListShiftsRequest) ([]ShiftResponse, error)
	// AssignShift converts the request's local times to UTC wall-clock and
	// creates the shift.
	AssignShift(ctx context.Context, req AssignShiftRequest) (ShiftResponse, error)
	UpdateShift(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	DeleteShift(ctx context.Context, id string) error
	DeleteShiftsInRange(ctx context.Context, from, to string) error
}
