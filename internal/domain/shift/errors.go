package shift

import "errors"

var (
	ErrShiftNotFound = errors.New("shift not found")

	// Validation errors
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:mm")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
)
