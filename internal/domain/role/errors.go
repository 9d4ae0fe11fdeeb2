package role

import "errors"

var (
	ErrRoleNotFound     = errors.New("role not found")
	ErrRoleNameExists   = errors.New("role with this name already exists")
	ErrDayEntryNotFound = errors.New("role schedule entry not found")

	// Validation errors
	ErrInvalidDayFormat  = errors.New("invalid day format, use YYYY-MM-DD")
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:mm")
	ErrInvalidColor      = errors.New("invalid role color")
)
