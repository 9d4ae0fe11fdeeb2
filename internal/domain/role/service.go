package role

import "context"

type Service interface {
	// GetRolesForRange returns every role with its schedule windowed to
	// [from, to], times localized when a viewer zone is supplied.
	GetRolesForRange(ctx context.Context, from, to, timeZone string) ([]RoleResponse, error)
	CreateRole(ctx context.Context, req CreateRoleRequest) (RoleResponse, error)
	UpdateRole(ctx context.Context, req UpdateRoleRequest) (RoleResponse, error)
	DeleteRole(ctx context.Context, id string) error

	// UpsertRoleDay inserts or replaces the entry for one day; both times
	// blank removes the entry instead.
	UpsertRoleDay(ctx context.Context, req UpsertRoleDayRequest) error
	DeleteRoleDay(ctx context.Context, roleID, day string) error
}
