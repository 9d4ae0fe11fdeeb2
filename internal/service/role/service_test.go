package role

import (
	"context"
	"testing"
	"time"

	"github.com/shiftwise/roster-backend-go/internal/domain/role"
	"github.com/shiftwise/roster-backend-go/internal/pkg/database"
	"github.com/shiftwise/roster-backend-go/internal/pkg/timecodec"
	"github.com/shiftwise/roster-backend-go/internal/pkg/validator"
	"github.com/shiftwise/roster-backend-go/internal/repository/embedded"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (role.Service, role.Repository) {
	t.Helper()

	db, err := database.NewEmbeddedDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := embedded.NewRoleRepository(db)
	return NewRoleService(repo, timecodec.New(time.UTC)), repo
}

func TestCreateRole_Defaults(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateRole(context.Background(), role.CreateRoleRequest{Name: "Barista"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Barista", created.Name)
	assert.Equal(t, string(role.ColorSlate), created.Color)
	assert.NotNil(t, created.AssignedEmployees)
	assert.Empty(t, created.Schedule)
}

func TestCreateRole_DuplicateName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateRole(ctx, role.CreateRoleRequest{Name: "Barista"})
	require.NoError(t, err)

	_, err = svc.CreateRole(ctx, role.CreateRoleRequest{Name: "Barista"})
	assert.ErrorIs(t, err, role.ErrRoleNameExists)
}

func TestCreateRole_InvalidColor(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateRole(context.Background(), role.CreateRoleRequest{Name: "Barista", Color: "magenta"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "color")
}

func TestUpdateRole(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateRole(ctx, role.CreateRoleRequest{Name: "Barista"})
	require.NoError(t, err)

	name := "Head Barista"
	color := string(role.ColorTeal)
	updated, err := svc.UpdateRole(ctx, role.UpdateRoleRequest{ID: created.ID, Name: &name, Color: &color})
	require.NoError(t, err)
	assert.Equal(t, "Head Barista", updated.Name)
	assert.Equal(t, "teal", updated.Color)
}

func TestUpdateRole_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	name := "Ghost"
	_, err := svc.UpdateRole(context.Background(), role.UpdateRoleRequest{ID: "no-such-id", Name: &name})
	assert.ErrorIs(t, err, role.ErrRoleNotFound)
}

func TestUpsertRoleDay_StoresConvertedTimes(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateRole(ctx, role.CreateRoleRequest{Name: "Security"})
	require.NoError(t, err)

	err = svc.UpsertRoleDay(ctx, role.UpsertRoleDayRequest{
		RoleID:    created.ID,
		Day:       "2024-06-05",
		StartTime: "21:00",
		EndTime:   "23:00",
		TimeZone:  "Pacific/Auckland",
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, role.DayTimes{StartTime: "09:00", EndTime: "11:00"}, got.Schedule["2024-06-05"])
}

func TestUpsertRoleDay_AllowsOvernightTemplate(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateRole(ctx, role.CreateRoleRequest{Name: "Security"})
	require.NoError(t, err)

	err = svc.UpsertRoleDay(ctx, role.UpsertRoleDayRequest{
		RoleID:    created.ID,
		Day:       "2024-06-05",
		StartTime: "22:00",
		EndTime:   "06:00",
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, role.DayTimes{StartTime: "22:00", EndTime: "06:00"}, got.Schedule["2024-06-05"])
}

func TestUpsertRoleDay_BlankTimesRemoveOnlyThatDay(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateRole(ctx, role.CreateRoleRequest{Name: "Security"})
	require.NoError(t, err)

	for _, day := range []string{"2024-06-04", "2024-06-05", "2024-06-06"} {
		err := svc.UpsertRoleDay(ctx, role.UpsertRoleDayRequest{
			RoleID:    created.ID,
			Day:       day,
			StartTime: "09:00",
			EndTime:   "17:00",
		})
		require.NoError(t, err)
	}

	err = svc.UpsertRoleDay(ctx, role.UpsertRoleDayRequest{RoleID: created.ID, Day: "2024-06-05"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Schedule, 2)
	assert.NotContains(t, got.Schedule, "2024-06-05")
	assert.Contains(t, got.Schedule, "2024-06-04")
	assert.Contains(t, got.Schedule, "2024-06-06")

	// Removing an already-absent entry is a no-op, not an error.
	err = svc.UpsertRoleDay(ctx, role.UpsertRoleDayRequest{RoleID: created.ID, Day: "2024-06-05"})
	assert.NoError(t, err)
}

func TestUpsertRoleDay_ReplacesExistingEntry(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateRole(ctx, role.CreateRoleRequest{Name: "Security"})
	require.NoError(t, err)

	for _, times := range []role.DayTimes{
		{StartTime: "09:00", EndTime: "17:00"},
		{StartTime: "10:00", EndTime: "18:00"},
	} {
		err := svc.UpsertRoleDay(ctx, role.UpsertRoleDayRequest{
			RoleID:    created.ID,
			Day:       "2024-06-05",
			StartTime: times.StartTime,
			EndTime:   times.EndTime,
		})
		require.NoError(t, err)
	}

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Schedule, 1)
	assert.Equal(t, role.DayTimes{StartTime: "10:00", EndTime: "18:00"}, got.Schedule["2024-06-05"])
}

func TestGetRolesForRange_WindowsAndLocalizes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateRole(ctx, role.CreateRoleRequest{Name: "Barista"})
	require.NoError(t, err)

	for _, day := range []string{"2024-05-28", "2024-06-04", "2024-06-12"} {
		err := svc.UpsertRoleDay(ctx, role.UpsertRoleDayRequest{
			RoleID:    created.ID,
			Day:       day,
			StartTime: "09:00",
			EndTime:   "17:00",
		})
		require.NoError(t, err)
	}

	got, err := svc.GetRolesForRange(ctx, "2024-06-03", "2024-06-09", "Pacific/Auckland")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Schedule, 1)
	assert.Equal(t, "2024-06-04", got[0].Schedule[0].Day)
	assert.Equal(t, "21:00", got[0].Schedule[0].StartTime)

	_, err = svc.GetRolesForRange(ctx, "2024-06-09", "2024-06-03", "")
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "to")
}

func TestDeleteRole_RemovesScheduleWithIt(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateRole(ctx, role.CreateRoleRequest{Name: "Barista"})
	require.NoError(t, err)
	err = svc.UpsertRoleDay(ctx, role.UpsertRoleDayRequest{
		RoleID:    created.ID,
		Day:       "2024-06-05",
		StartTime: "09:00",
		EndTime:   "17:00",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRole(ctx, created.ID))

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, role.ErrRoleNotFound)
	assert.ErrorIs(t, svc.DeleteRole(ctx, created.ID), role.ErrRoleNotFound)
}
