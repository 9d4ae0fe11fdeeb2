package role

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shiftwise/roster-backend-go/internal/domain/role"
	"github.com/shiftwise/roster-backend-go/internal/pkg/timecodec"
	"github.com/shiftwise/roster-backend-go/internal/pkg/validator"
)

type roleServiceImpl struct {
	repo  role.Repository
	codec *timecodec.Codec
}

func NewRoleService(repo role.Repository, codec *timecodec.Codec) role.Service {
	return &roleServiceImpl{repo: repo, codec: codec}
}

// GetRolesForRange implements role.Service.
func (s *roleServiceImpl) GetRolesForRange(ctx context.Context, fromStr, toStr, timeZone string) ([]role.RoleResponse, error) {
	var errs validator.ValidationErrors
	from, okFrom := validator.IsValidDate(fromStr)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be in YYYY-MM-DD format"})
	}
	to, okTo := validator.IsValidDate(toStr)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be in YYYY-MM-DD format"})
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must not be before from"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	roles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	responses := make([]role.RoleResponse, 0, len(roles))
	for _, ro := range roles {
		windowed := role.Role{
			ID:                ro.ID,
			Name:              ro.Name,
			Description:       ro.Description,
			Color:             ro.Color,
			AssignedEmployees: ro.AssignedEmployees,
			Schedule:          map[string]role.DayTimes{},
			CreatedAt:         ro.CreatedAt,
			UpdatedAt:         ro.UpdatedAt,
		}
		for day, times := range ro.Schedule {
			d, err := time.Parse(role.DayLayout, day)
			if err != nil {
				continue
			}
			if d.Before(from) || d.After(to) {
				continue
			}
			if timeZone != "" {
				times = role.DayTimes{
					StartTime: s.codec.ToLocal(times.StartTime, day, timeZone),
					EndTime:   s.codec.ToLocal(times.EndTime, day, timeZone),
				}
			}
			windowed.Schedule[day] = times
		}
		responses = append(responses, windowed.ToResponse())
	}

	return responses, nil
}

// CreateRole implements role.Service.
func (s *roleServiceImpl) CreateRole(ctx context.Context, req role.CreateRoleRequest) (role.RoleResponse, error) {
	if err := req.Validate(); err != nil {
		return role.RoleResponse{}, err
	}

	color := role.Color(req.Color)
	if req.Color == "" {
		color = role.ColorSlate
	}
	employees := req.AssignedEmployees
	if employees == nil {
		employees = []string{}
	}

	created, err := s.repo.Create(ctx, role.Role{
		Name:              req.Name,
		Description:       req.Description,
		Color:             color,
		AssignedEmployees: employees,
		Schedule:          map[string]role.DayTimes{},
	})
	if err != nil {
		if errors.Is(err, role.ErrRoleNameExists) {
			return role.RoleResponse{}, role.ErrRoleNameExists
		}
		return role.RoleResponse{}, fmt.Errorf("failed to create role: %w", err)
	}

	return created.ToResponse(), nil
}

// UpdateRole implements role.Service.
func (s *roleServiceImpl) UpdateRole(ctx context.Context, req role.UpdateRoleRequest) (role.RoleResponse, error) {
	if err := req.Validate(); err != nil {
		return role.RoleResponse{}, err
	}

	fields := role.UpdateRoleFields{
		Name:              req.Name,
		Description:       req.Description,
		AssignedEmployees: req.AssignedEmployees,
	}
	if req.Color != nil {
		c := role.Color(*req.Color)
		fields.Color = &c
	}

	updated, err := s.repo.Update(ctx, req.ID, fields)
	if err != nil {
		return role.RoleResponse{}, err
	}

	return updated.ToResponse(), nil
}

// DeleteRole implements role.Service. Immediate, non-soft deletion; any
// confirmation gate belongs to the caller.
func (s *roleServiceImpl) DeleteRole(ctx context.Context, id string) error {
	return s.repo.DeleteRole(ctx, id)
}

// UpsertRoleDay implements role.Service.
func (s *roleServiceImpl) UpsertRoleDay(ctx context.Context, req role.UpsertRoleDayRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	times := role.DayTimes{StartTime: req.StartTime, EndTime: req.EndTime}
	if times.Blank() {
		// Both blank means the entry is absent: remove it rather than store a
		// zero-length entry. Removing an already-absent entry is a no-op.
		err := s.repo.DeleteDayEntry(ctx, req.RoleID, req.Day)
		if errors.Is(err, role.ErrDayEntryNotFound) {
			return nil
		}
		return err
	}

	if req.TimeZone != "" {
		times = role.DayTimes{
			StartTime: s.codec.ToUTC(req.StartTime, req.Day, req.TimeZone),
			EndTime:   s.codec.ToUTC(req.EndTime, req.Day, req.TimeZone),
		}
	}

	return s.repo.UpsertDayEntry(ctx, req.RoleID, req.Day, times)
}

// DeleteRoleDay implements role.Service.
func (s *roleServiceImpl) DeleteRoleDay(ctx context.Context, roleID, day string) error {
	if _, ok := validator.IsValidDate(day); !ok {
		return validator.ValidationErrors{{Field: "day", Message: "day must be in YYYY-MM-DD format"}}
	}
	return s.repo.DeleteDayEntry(ctx, roleID, day)
}
