package shift

import (
	"context"
	"testing"
	"time"

	"github.com/shiftwise/roster-backend-go/internal/domain/shift"
	"github.com/shiftwise/roster-backend-go/internal/pkg/database"
	"github.com/shiftwise/roster-backend-go/internal/pkg/timecodec"
	"github.com/shiftwise/roster-backend-go/internal/pkg/validator"
	"github.com/shiftwise/roster-backend-go/internal/repository/embedded"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (shift.Service, shift.Repository) {
	t.Helper()

	db, err := database.NewEmbeddedDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := embedded.NewShiftRepository(db)
	return NewShiftService(repo, timecodec.New(time.UTC)), repo
}

func TestAssignShift_ConvertsLocalTimesToUTC(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	// Auckland winter is UTC+12: a 21:00-05:00 local night shift is stored
	// as 09:00-17:00 UTC, anchored to the date the viewer picked.
	resp, err := svc.AssignShift(ctx, shift.AssignShiftRequest{
		EmployeeID: "emp-1",
		Date:       "2024-06-04",
		StartTime:  "21:00",
		EndTime:    "23:00",
		TimeZone:   "Pacific/Auckland",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-04", resp.Date)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "11:00", resp.EndTime)

	stored, err := repo.List(ctx, shift.ListFilter{
		From: mustDate(t, "2024-06-04"),
		To:   mustDate(t, "2024-06-04"),
	})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "09:00", stored[0].StartTime)
	assert.Equal(t, "11:00", stored[0].EndTime)
	// The anchor date is what was requested, not what the conversion would
	// put the local instant on.
	assert.Equal(t, "2024-06-04", stored[0].Date.Format(shift.DateLayout))
}

func TestAssignShift_WithoutZoneStoresTimesVerbatim(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.AssignShift(context.Background(), shift.AssignShiftRequest{
		EmployeeID: "emp-1",
		Date:       "2024-06-04",
		StartTime:  "09:00",
		EndTime:    "17:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "17:00", resp.EndTime)
}

func TestAssignShift_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   shift.AssignShiftRequest
		field string
	}{
		{
			name:  "missing employee",
			req:   shift.AssignShiftRequest{Date: "2024-06-04", StartTime: "09:00", EndTime: "17:00"},
			field: "employee_id",
		},
		{
			name:  "bad date",
			req:   shift.AssignShiftRequest{EmployeeID: "emp-1", Date: "04/06/2024", StartTime: "09:00", EndTime: "17:00"},
			field: "date",
		},
		{
			name:  "bad time",
			req:   shift.AssignShiftRequest{EmployeeID: "emp-1", Date: "2024-06-04", StartTime: "9am", EndTime: "17:00"},
			field: "start_time",
		},
		{
			name:  "end before start",
			req:   shift.AssignShiftRequest{EmployeeID: "emp-1", Date: "2024-06-04", StartTime: "17:00", EndTime: "09:00"},
			field: "end_time",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AssignShift(ctx, tt.req)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestGetSchedulesForRange_LocalizesForViewer(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, shift.Shift{
		EmployeeID: "emp-1",
		Date:       mustDate(t, "2024-06-04"),
		StartTime:  "09:00",
		EndTime:    "17:00",
	})
	require.NoError(t, err)

	got, err := svc.GetSchedulesForRange(ctx, shift.ListShiftsRequest{
		From:     "2024-06-03",
		To:       "2024-06-09",
		TimeZone: "Pacific/Auckland",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "21:00", got[0].StartTime)
	assert.Equal(t, "2024-06-04", got[0].Date)

	// Without a zone the stored UTC wall times come back untouched.
	raw, err := svc.GetSchedulesForRange(ctx, shift.ListShiftsRequest{From: "2024-06-03", To: "2024-06-09"})
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Equal(t, "09:00", raw[0].StartTime)
}

func TestGetSchedulesForRange_FiltersByEmployee(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	for _, emp := range []string{"emp-1", "emp-2"} {
		_, err := repo.Create(ctx, shift.Shift{
			EmployeeID: emp,
			Date:       mustDate(t, "2024-06-04"),
			StartTime:  "09:00",
			EndTime:    "17:00",
		})
		require.NoError(t, err)
	}

	emp := "emp-2"
	got, err := svc.GetSchedulesForRange(ctx, shift.ListShiftsRequest{
		From:       "2024-06-03",
		To:         "2024-06-09",
		EmployeeID: &emp,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "emp-2", got[0].EmployeeID)
}

func TestUpdateShift_RequiresDateWithZonedTimes(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, shift.Shift{
		EmployeeID: "emp-1",
		Date:       mustDate(t, "2024-06-04"),
		StartTime:  "09:00",
		EndTime:    "17:00",
	})
	require.NoError(t, err)

	start := "10:00"
	_, err = svc.UpdateShift(ctx, shift.UpdateShiftRequest{
		ID:        created.ID,
		StartTime: &start,
		TimeZone:  "Pacific/Auckland",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "date")
}

func TestUpdateShift_PartialUpdate(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, shift.Shift{
		EmployeeID: "emp-1",
		Date:       mustDate(t, "2024-06-04"),
		StartTime:  "09:00",
		EndTime:    "17:00",
	})
	require.NoError(t, err)

	end := "18:30"
	updated, err := svc.UpdateShift(ctx, shift.UpdateShiftRequest{ID: created.ID, EndTime: &end})
	require.NoError(t, err)
	assert.Equal(t, "09:00", updated.StartTime)
	assert.Equal(t, "18:30", updated.EndTime)
	assert.Equal(t, "2024-06-04", updated.Date)
}

func TestDeleteShift_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.DeleteShift(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, shift.ErrShiftNotFound)
}

func TestDeleteShiftsInRange(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	for _, date := range []string{"2024-06-03", "2024-06-05", "2024-06-12"} {
		_, err := repo.Create(ctx, shift.Shift{
			EmployeeID: "emp-1",
			Date:       mustDate(t, date),
			StartTime:  "09:00",
			EndTime:    "17:00",
		})
		require.NoError(t, err)
	}

	require.NoError(t, svc.DeleteShiftsInRange(ctx, "2024-06-03", "2024-06-09"))

	left, err := repo.List(ctx, shift.ListFilter{
		From: mustDate(t, "2024-06-01"),
		To:   mustDate(t, "2024-06-30"),
	})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "2024-06-12", left[0].Date.Format(shift.DateLayout))

	// An empty window is not an error.
	assert.NoError(t, svc.DeleteShiftsInRange(ctx, "2024-07-01", "2024-07-07"))
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(shift.DateLayout, s)
	require.NoError(t, err)
	return d
}
