package role

import (
	"sort"
	"strings"
	"time"

	"github.com/shiftwise/roster-backend-go/internal/pkg/validator"
)

type CreateRoleRequest struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Color             string   `json:"color"`
	AssignedEmployees []string `json:"assigned_employees"`
}

func (r *CreateRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.Color != "" && !validator.IsInSlice(r.Color, ColorValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "color",
			Message: "color must be one of: " + strings.Join(ColorValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRoleRequest struct {
	ID                string    `json:"-"`
	Name              *string   `json:"name"`
	Description       *string   `json:"description"`
	Color             *string   `json:"color"`
	AssignedEmployees *[]string `json:"assigned_employees"`
}

func (r *UpdateRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be blank",
		})
	}
	if r.Color != nil && !validator.IsInSlice(*r.Color, ColorValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "color",
			Message: "color must be one of: " + strings.Join(ColorValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpsertRoleDayRequest carries local wall times plus the viewer's zone; the
// service converts to UTC before storing. Both times blank means "remove the
// entry for this day".
type UpsertRoleDayRequest struct {
	RoleID    string `json:"-"`
	Day       string `json:"-"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	TimeZone  string `json:"time_zone"`
}

func (r *UpsertRoleDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Day); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "day",
			Message: "day must be in YYYY-MM-DD format",
		})
	}
	// Blank-blank is the removal request; otherwise both times must parse.
	// Overnight templates (end before start) are legitimate, so no ordering
	// check here.
	if r.StartTime != "" || r.EndTime != "" {
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
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DayEntryResponse struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type RoleResponse struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Description       string             `json:"description,omitempty"`
	Color             string             `json:"color"`
	AssignedEmployees []string           `json:"assigned_employees"`
	Schedule          []DayEntryResponse `json:"schedule"`
	CreatedAt         string             `json:"created_at,omitempty"`
	UpdatedAt         string             `json:"updated_at,omitempty"`
}

// ToResponse renders the schedule map as a day-sorted list.
func (r Role) ToResponse() RoleResponse {
	entries := make([]DayEntryResponse, 0, len(r.Schedule))
	for day, times := range r.Schedule {
		entries = append(entries, DayEntryResponse{Day: day, StartTime: times.StartTime, EndTime: times.EndTime})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Day < entries[j].Day })

	resp := RoleResponse{
		ID:                r.ID,
		Name:              r.Name,
		Description:       r.Description,
		Color:             string(r.Color),
		AssignedEmployees: r.AssignedEmployees,
		Schedule:          entries,
	}
	if !r.CreatedAt.IsZero() {
		resp.CreatedAt = r.CreatedAt.Format(time.RFC3339)
	}
	if !r.UpdatedAt.IsZero() {
		resp.UpdatedAt = r.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}
