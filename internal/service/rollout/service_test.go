package rollout

import (
	"context"
	"testing"
	"time"

	"github.com/shiftwise/roster-backend-go/internal/domain/role"
	"github.com/shiftwise/roster-backend-go/internal/domain/rollout"
	"github.com/shiftwise/roster-backend-go/internal/domain/shift"
	"github.com/shiftwise/roster-backend-go/internal/pkg/database"
	"github.com/shiftwise/roster-backend-go/internal/pkg/lock"
	"github.com/shiftwise/roster-backend-go/internal/repository/embedded"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (rollout.Service, shift.Repository, role.Repository) {
	t.Helper()

	db, err := database.NewEmbeddedDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	shiftRepo := embedded.NewShiftRepository(db)
	roleRepo := embedded.NewRoleRepository(db)
	svc := NewRolloutService(shiftRepo, roleRepo, lock.NewInProcessLocker())
	return svc, shiftRepo, roleRepo
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(shift.DateLayout, s)
	require.NoError(t, err)
	return d
}

func TestRollout_ClonesShiftsOneWeekForward(t *testing.T) {
	svc, shiftRepo, _ := newTestService(t)
	ctx := context.Background()

	// Week of 2024-06-03 (Monday).
	created, err := shiftRepo.Create(ctx, shift.Shift{
		EmployeeID: "emp-1",
		Date:       mustDate(t, "2024-06-04"),
		StartTime:  "09:00",
		EndTime:    "17:00",
	})
	require.NoError(t, err)

	resp, err := svc.Rollout(ctx, rollout.RolloutRequest{WeekStart: "2024-06-03"})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", resp.NextWeekStart)
	assert.Equal(t, 1, resp.ShiftsCloned)

	next, err := shiftRepo.List(ctx, shift.ListFilter{
		From: mustDate(t, "2024-06-10"),
		To:   mustDate(t, "2024-06-16"),
	})
	require.NoError(t, err)
	require.Len(t, next, 1)
	assert.Equal(t, "2024-06-11", next[0].Date.Format(shift.DateLayout))
	assert.Equal(t, created.StartTime, next[0].StartTime)
	assert.Equal(t, created.EndTime, next[0].EndTime)
	assert.Equal(t, created.EmployeeID, next[0].EmployeeID)
	assert.NotEqual(t, created.ID, next[0].ID)
}

func TestRollout_OverwritesStaleDestinationWindow(t *testing.T) {
	svc, shiftRepo, _ := newTestService(t)
	ctx := context.Background()

	_, err := shiftRepo.Create(ctx, shift.Shift{
		EmployeeID: "emp-1",
		Date:       mustDate(t, "2024-06-05"),
		StartTime:  "08:00",
		EndTime:    "16:00",
	})
	require.NoError(t, err)

	// Stale shift already sitting in the destination week.
	_, err = shiftRepo.Create(ctx, shift.Shift{
		EmployeeID: "emp-2",
		Date:       mustDate(t, "2024-06-12"),
		StartTime:  "10:00",
		EndTime:    "18:00",
	})
	require.NoError(t, err)

	resp, err := svc.Rollout(ctx, rollout.RolloutRequest{WeekStart: "2024-06-03"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ShiftsCloned)

	next, err := shiftRepo.List(ctx, shift.ListFilter{
		From: mustDate(t, "2024-06-10"),
		To:   mustDate(t, "2024-06-16"),
	})
	require.NoError(t, err)
	require.Len(t, next, 1)
	assert.Equal(t, "emp-1", next[0].EmployeeID)
	assert.Equal(t, "2024-06-12", next[0].Date.Format(shift.DateLayout))
}

func TestRollout_Idempotent(t *testing.T) {
	svc, shiftRepo, roleRepo := newTestService(t)
	ctx := context.Background()

	_, err := shiftRepo.Create(ctx, shift.Shift{
		EmployeeID: "emp-1",
		Date:       mustDate(t, "2024-06-03"),
		StartTime:  "09:00",
		EndTime:    "17:00",
	})
	require.NoError(t, err)

	ro, err := roleRepo.Create(ctx, role.Role{Name: "Barista", Color: role.ColorTeal})
	require.NoError(t, err)
	err = roleRepo.UpsertDayEntry(ctx, ro.ID, "2024-06-06", role.DayTimes{StartTime: "07:00", EndTime: "15:00"})
	require.NoError(t, err)

	first, err := svc.Rollout(ctx, rollout.RolloutRequest{WeekStart: "2024-06-03"})
	require.NoError(t, err)
	second, err := svc.Rollout(ctx, rollout.RolloutRequest{WeekStart: "2024-06-03"})
	require.NoError(t, err)

	assert.Equal(t, first, second)

	next, err := shiftRepo.List(ctx, shift.ListFilter{
		From: mustDate(t, "2024-06-10"),
		To:   mustDate(t, "2024-06-16"),
	})
	require.NoError(t, err)
	assert.Len(t, next, 1)

	got, err := roleRepo.GetByID(ctx, ro.ID)
	require.NoError(t, err)
	assert.Len(t, got.Schedule, 2)
	assert.Contains(t, got.Schedule, "2024-06-06")
	assert.Contains(t, got.Schedule, "2024-06-13")
}

func TestRollout_ClonesRoleScheduleEntries(t *testing.T) {
	svc, _, roleRepo := newTestService(t)
	ctx := context.Background()

	ro, err := roleRepo.Create(ctx, role.Role{Name: "Security", Color: role.ColorRed})
	require.NoError(t, err)
	err = roleRepo.UpsertDayEntry(ctx, ro.ID, "2024-06-04", role.DayTimes{StartTime: "22:00", EndTime: "06:00"})
	require.NoError(t, err)
	err = roleRepo.UpsertDayEntry(ctx, ro.ID, "2024-06-07", role.DayTimes{StartTime: "22:00", EndTime: "06:00"})
	require.NoError(t, err)
	// Entry outside the source week must survive untouched.
	err = roleRepo.UpsertDayEntry(ctx, ro.ID, "2024-05-28", role.DayTimes{StartTime: "09:00", EndTime: "17:00"})
	require.NoError(t, err)

	resp, err := svc.Rollout(ctx, rollout.RolloutRequest{WeekStart: "2024-06-03"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.EntriesCloned)

	got, err := roleRepo.GetByID(ctx, ro.ID)
	require.NoError(t, err)
	assert.Len(t, got.Schedule, 5)
	assert.Equal(t, role.DayTimes{StartTime: "22:00", EndTime: "06:00"}, got.Schedule["2024-06-11"])
	assert.Equal(t, role.DayTimes{StartTime: "22:00", EndTime: "06:00"}, got.Schedule["2024-06-14"])
	assert.Contains(t, got.Schedule, "2024-05-28")
}

func TestRollout_EmptySourceWeek(t *testing.T) {
	svc, shiftRepo, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Rollout(ctx, rollout.RolloutRequest{WeekStart: "2024-06-03"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.ShiftsCloned)
	assert.Equal(t, 0, resp.EntriesCloned)

	all, err := shiftRepo.List(ctx, shift.ListFilter{
		From: mustDate(t, "2024-06-10"),
		To:   mustDate(t, "2024-06-16"),
	})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRollout_RejectsInvalidWeekStart(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Rollout(context.Background(), rollout.RolloutRequest{WeekStart: "June 3rd"})
	assert.Error(t, err)
}

func TestRollout_ConcurrentWindowLocked(t *testing.T) {
	db, err := database.NewEmbeddedDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	locker := lock.NewInProcessLocker()
	svc := NewRolloutService(embedded.NewShiftRepository(db), embedded.NewRoleRepository(db), locker)

	// Hold the destination-window lock as another rollout would.
	release, err := locker.Acquire(context.Background(), "2024-06-10", time.Minute)
	require.NoError(t, err)
	defer release()

	_, err = svc.Rollout(context.Background(), rollout.RolloutRequest{WeekStart: "2024-06-03"})
	assert.ErrorIs(t, err, rollout.ErrRolloutInProgress)
}
