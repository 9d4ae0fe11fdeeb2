package rollout

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shiftwise/roster-backend-go/internal/domain/role"
	"github.com/shiftwise/roster-backend-go/internal/domain/rollout"
	"github.com/shiftwise/roster-backend-go/internal/domain/shift"
	"github.com/shiftwise/roster-backend-go/internal/pkg/lock"
	"github.com/shiftwise/roster-backend-go/internal/pkg/period"
	"golang.org/x/sync/errgroup"
)

// lockTTL bounds how long a crashed rollout can keep its window locked.
const lockTTL = 2 * time.Minute

type rolloutServiceImpl struct {
	shiftRepo shift.Repository
	roleRepo  role.Repository
	locker    lock.WindowLocker
}

func NewRolloutService(shiftRepo shift.Repository, roleRepo role.Repository, locker lock.WindowLocker) rollout.Service {
	return &rolloutServiceImpl{
		shiftRepo: shiftRepo,
		roleRepo:  roleRepo,
		locker:    locker,
	}
}

// Rollout implements rollout.Service. The destination purge/prune must land
// before the corresponding clone for the same entity type; that ordering is
// what makes re-running the rollout an overwrite instead of a duplication.
// The shift pipeline and the per-role pipelines have no dependency on each
// other and run concurrently.
func (s *rolloutServiceImpl) Rollout(ctx context.Context, req rollout.RolloutRequest) (rollout.RolloutResponse, error) {
	if err := req.Validate(); err != nil {
		return rollout.RolloutResponse{}, err
	}

	weekStart, _ := time.Parse(shift.DateLayout, req.WeekStart)
	current := period.Range{
		Start:       period.Truncate(weekStart),
		End:         period.Truncate(weekStart).AddDate(0, 0, 6),
		Granularity: period.GranularityWeek,
	}
	next := period.Next(current)

	release, err := s.locker.Acquire(ctx, next.Start.Format(shift.DateLayout), lockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			return rollout.RolloutResponse{}, rollout.ErrRolloutInProgress
		}
		return rollout.RolloutResponse{}, fmt.Errorf("failed to lock rollout window: %w", err)
	}
	defer release()

	var shiftsCloned, entriesCloned int

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.rollShifts(gCtx, current, next)
		if err != nil {
			return err
		}
		shiftsCloned = n
		return nil
	})

	g.Go(func() error {
		n, err := s.rollRoleSchedules(gCtx, current, next)
		if err != nil {
			return err
		}
		entriesCloned = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return rollout.RolloutResponse{}, err
	}

	return rollout.RolloutResponse{
		NextWeekStart: next.Start.Format(shift.DateLayout),
		ShiftsCloned:  shiftsCloned,
		EntriesCloned: entriesCloned,
	}, nil
}

// rollShifts purges the destination window and then clones every
// current-window shift seven days forward in a single bulk insert.
func (s *rolloutServiceImpl) rollShifts(ctx context.Context, current, next period.Range) (int, error) {
	if err := s.shiftRepo.DeleteByDateRange(ctx, next.Start, next.End); err != nil {
		return 0, &rollout.PartialRolloutError{Step: rollout.StepPurgeDestinationShifts, Err: err}
	}

	currentShifts, err := s.shiftRepo.List(ctx, shift.ListFilter{From: current.Start, To: current.End})
	if err != nil {
		return 0, &rollout.PartialRolloutError{Step: rollout.StepCloneShifts, Err: err}
	}

	clones := make([]shift.Shift, 0, len(currentShifts))
	for _, sh := range currentShifts {
		clones = append(clones, shift.Shift{
			EmployeeID: sh.EmployeeID,
			RoleID:     sh.RoleID,
			Date:       sh.Date.AddDate(0, 0, 7),
			StartTime:  sh.StartTime,
			EndTime:    sh.EndTime,
		})
	}
	if len(clones) == 0 {
		return 0, nil
	}

	created, err := s.shiftRepo.BulkCreate(ctx, clones)
	if err != nil {
		return len(created), &rollout.PartialRolloutError{Step: rollout.StepCloneShifts, Err: err}
	}
	return len(created), nil
}

// rollRoleSchedules prunes and re-clones the destination window of every
// role's embedded schedule. Roles are independent of one another, so they
// are processed concurrently.
func (s *rolloutServiceImpl) rollRoleSchedules(ctx context.Context, current, next period.Range) (int, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return 0, &rollout.PartialRolloutError{Step: rollout.StepPruneRoleSchedules, Err: err}
	}

	var cloned atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	for _, ro := range roles {
		g.Go(func() error {
			n, err := s.rollOneRole(gCtx, ro, current, next)
			if err != nil {
				return err
			}
			cloned.Add(int64(n))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	return int(cloned.Load()), nil
}

func (s *rolloutServiceImpl) rollOneRole(ctx context.Context, ro role.Role, current, next period.Range) (int, error) {
	// Prune: drop destination-window entries first, so a re-run cannot stack
	// duplicates on top of a previous clone.
	pruned := make(map[string]role.DayTimes, len(ro.Schedule))
	prunedAny := false
	for day, times := range ro.Schedule {
		d, err := time.Parse(role.DayLayout, day)
		if err != nil || next.Contains(d) {
			prunedAny = prunedAny || err == nil
			continue
		}
		pruned[day] = times
	}
	if prunedAny {
		if err := s.roleRepo.ReplaceSchedule(ctx, ro.ID, pruned); err != nil {
			return 0, &rollout.PartialRolloutError{Step: rollout.StepPruneRoleSchedules, Err: err}
		}
	}

	// Clone: current-window entries shifted into the pruned schedule.
	result := make(map[string]role.DayTimes, len(pruned))
	for day, times := range pruned {
		result[day] = times
	}
	n := 0
	for day, times := range ro.Schedule {
		d, err := time.Parse(role.DayLayout, day)
		if err != nil || !current.Contains(d) {
			continue
		}
		result[d.AddDate(0, 0, 7).Format(role.DayLayout)] = times
		n++
	}
	if n == 0 {
		return 0, nil
	}

	if err := s.roleRepo.ReplaceSchedule(ctx, ro.ID, result); err != nil {
		return 0, &rollout.PartialRolloutError{Step: rollout.StepCloneRoleEntries, Err: err}
	}
	return n, nil
}
