package rollout

import "github.com/shiftwise/roster-backend-go/internal/pkg/validator"

type RolloutRequest struct {
	// WeekStart is the first day of the week being rolled forward, in
	// YYYY-MM-DD form.
	WeekStart string `json:"week_start"`
}

func (r *RolloutRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.WeekStart); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "week_start",
			Message: "week_start must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RolloutResponse struct {
	// NextWeekStart is the new "current" period after the rollout.
	NextWeekStart string `json:"next_week_start"`
	ShiftsCloned  int    `json:"shifts_cloned"`
	EntriesCloned int    `json:"role_entries_cloned"`
}
