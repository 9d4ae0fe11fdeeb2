package rollout

import (
	"errors"
	"fmt"
)

// Step names the phases of the rollout saga so a failure is identifiable and
// retryable on its own.
type Step string

const (
	StepPurgeDestinationShifts Step = "purge_destination_shifts"
	StepPruneRoleSchedules     Step = "prune_role_schedules"
	StepCloneShifts            Step = "clone_shifts"
	StepCloneRoleEntries       Step = "clone_role_entries"
)

// ErrRolloutInProgress is returned when another rollout already holds the
// lock for the destination window.
var ErrRolloutInProgress = errors.New("a rollout for this window is already in progress")

// PartialRolloutError reports that one step failed after earlier steps had
// already committed. The destination window may be partially populated;
// re-running the rollout for the same week is safe because the purge and
// prune steps clear it first.
type PartialRolloutError struct {
	Step Step
	Err  error
}

func (e *PartialRolloutError) Error() string {
	return fmt.Sprintf("rollout failed at step %s: %v", e.Step, e.Err)
}

func (e *PartialRolloutError) Unwrap() error {
	return e.Err
}
