package shift

import (
	"time"

	"github.com/shiftwise/roster-backend-go/internal/pkg/validator"
)

type AssignShiftRequest struct {
	EmployeeID string  `json:"employee_id"`
	RoleID     *string `json:"role_id"`
	Date       string  `json:"date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	// TimeZone is the viewer's zone; start/end above are local wall times and
	// are converted to UTC at the service boundary. Never persisted.
	TimeZone string `json:"time_zone"`
}

func (r *AssignShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if !validator.IsValidWallTime(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:mm format",
		})
	}
	if !validator.IsValidWallTime(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:mm format",
		})
	}
	if validator.IsValidWallTime(r.StartTime) && validator.IsValidWallTime(r.EndTime) && r.EndTime <= r.StartTime {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be after start_time",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateShiftRequest struct {
	ID        string  `json:"-"`
	RoleID    *string `json:"role_id"`
	Date      *string `json:"date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	TimeZone  string  `json:"time_zone"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}
	if r.StartTime != nil && !validator.IsValidWallTime(*r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:mm format",
		})
	}
	if r.EndTime != nil && !validator.IsValidWallTime(*r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:mm format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListShiftsRequest struct {
	From       string
	To         string
	EmployeeID *string
	// TimeZone, when present, localizes the response times for display.
	TimeZone string
}

func (r *ListShiftsRequest) Validate() error {
	var errs validator.ValidationErrors

	from, okFrom := validator.IsValidDate(r.From)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}
	to, okTo := validator.IsValidDate(r.To)
	if !okTo {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must not be before from",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	RoleID     *string `json:"role_id,omitempty"`
	Date       string  `json:"date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	CreatedAt  string  `json:"created_at,omitempty"`
	UpdatedAt  string  `json:"updated_at,omitempty"`
}

func (s Shift) ToResponse() ShiftResponse {
	resp := ShiftResponse{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		RoleID:     s.RoleID,
		Date:       s.Date.Format(DateLayout),
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
	}
	if !s.CreatedAt.IsZero() {
		resp.CreatedAt = s.CreatedAt.Format(time.RFC3339)
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = s.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}
