package response

import (
	"errors"
	"net/http"

	"github.com/shiftwise/roster-backend-go/internal/domain/role"
	"github.com/shiftwise/roster-backend-go/internal/domain/rollout"
	"github.com/shiftwise/roster-backend-go/internal/domain/shift"
	"github.com/shiftwise/roster-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A partial rollout is not a plain 500: earlier steps committed and the
	// caller should retry the same window.
	var partialErr *rollout.PartialRolloutError
	if errors.As(err, &partialErr) {
		PartialFailure(w, "Rollout failed partway; re-run it for the same week", map[string]string{
			"step": string(partialErr.Step),
		})
		return
	}

	switch {
	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrInvalidDateFormat),
		errors.Is(err, shift.ErrInvalidTimeFormat),
		errors.Is(err, shift.ErrEndBeforeStart):
		BadRequest(w, err.Error(), nil)

	// Role domain errors
	case errors.Is(err, role.ErrRoleNotFound):
		NotFound(w, "Role not found")
	case errors.Is(err, role.ErrDayEntryNotFound):
		NotFound(w, "Schedule entry not found")
	case errors.Is(err, role.ErrRoleNameExists):
		Conflict(w, "A role with this name already exists")

	// Rollout domain errors
	case errors.Is(err, rollout.ErrRolloutInProgress):
		Conflict(w, "A rollout for this window is already in progress")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
