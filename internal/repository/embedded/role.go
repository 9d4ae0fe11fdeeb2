package embedded

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shiftwise/roster-backend-go/internal/domain/role"
	"github.com/tidwall/buntdb"
)

const roleKeyPrefix = "role:"

// roleDoc holds the whole role including its schedule as one JSON document.
// The per-day contract of the repository interface still holds: every
// mutation happens inside a single buntdb transaction, so callers only ever
// observe whole before/after states of one day's change.
type roleDoc struct {
	ID                string                   `json:"id"`
	Name              string                   `json:"name"`
	Description       string                   `json:"description,omitempty"`
	Color             string                   `json:"color"`
	AssignedEmployees []string                 `json:"assigned_employees"`
	Schedule          map[string]role.DayTimes `json:"schedule"`
	CreatedAt         string                   `json:"created_at"`
	UpdatedAt         string                   `json:"updated_at"`
}

func roleKey(id string) string {
	return roleKeyPrefix + id
}

func toRoleDoc(ro role.Role) roleDoc {
	if ro.Schedule == nil {
		ro.Schedule = map[string]role.DayTimes{}
	}
	return roleDoc{
		ID:                ro.ID,
		Name:              ro.Name,
		Description:       ro.Description,
		Color:             string(ro.Color),
		AssignedEmployees: ro.AssignedEmployees,
		Schedule:          ro.Schedule,
		CreatedAt:         ro.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         ro.UpdatedAt.Format(time.RFC3339),
	}
}

func fromRoleDoc(d roleDoc) role.Role {
	createdAt, _ := time.Parse(time.RFC3339, d.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, d.UpdatedAt)
	schedule := d.Schedule
	if schedule == nil {
		schedule = map[string]role.DayTimes{}
	}
	return role.Role{
		ID:                d.ID,
		Name:              d.Name,
		Description:       d.Description,
		Color:             role.Color(d.Color),
		AssignedEmployees: d.AssignedEmployees,
		Schedule:          schedule,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}
}

type roleRepositoryImpl struct {
	db *buntdb.DB
}

func NewRoleRepository(db *buntdb.DB) role.Repository {
	return &roleRepositoryImpl{db: db}
}

// List implements role.Repository.
func (r *roleRepositoryImpl) List(ctx context.Context) ([]role.Role, error) {
	var roles []role.Role
	err := r.db.View(func(tx *buntdb.Tx) error {
		var iterErr error
		err := tx.AscendKeys(roleKeyPrefix+"*", func(key, value string) bool {
			var d roleDoc
			if iterErr = json.Unmarshal([]byte(value), &d); iterErr != nil {
				return false
			}
			roles = append(roles, fromRoleDoc(d))
			return true
		})
		if err != nil {
			return err
		}
		return iterErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	return roles, nil
}

// GetByID implements role.Repository.
func (r *roleRepositoryImpl) GetByID(ctx context.Context, id string) (role.Role, error) {
	var ro role.Role
	err := r.db.View(func(tx *buntdb.Tx) error {
		value, err := tx.Get(roleKey(id))
		if errors.Is(err, buntdb.ErrNotFound) {
			return role.ErrRoleNotFound
		} else if err != nil {
			return err
		}
		var d roleDoc
		if err := json.Unmarshal([]byte(value), &d); err != nil {
			return err
		}
		ro = fromRoleDoc(d)
		return nil
	})
	if err != nil {
		if errors.Is(err, role.ErrRoleNotFound) {
			return role.Role{}, role.ErrRoleNotFound
		}
		return role.Role{}, fmt.Errorf("failed to get role: %w", err)
	}
	return ro, nil
}

// Create implements role.Repository.
func (r *roleRepositoryImpl) Create(ctx context.Context, ro role.Role) (role.Role, error) {
	if ro.ID == "" {
		ro.ID = uuid.NewString()
	}
	if ro.Schedule == nil {
		ro.Schedule = map[string]role.DayTimes{}
	}
	now := time.Now().UTC().Truncate(time.Second)
	ro.CreatedAt = now
	ro.UpdatedAt = now

	err := r.db.Update(func(tx *buntdb.Tx) error {
		// Name uniqueness is a constraint in the relational store; enforce
		// the same here.
		var exists bool
		var iterErr error
		err := tx.AscendKeys(roleKeyPrefix+"*", func(key, value string) bool {
			var d roleDoc
			if iterErr = json.Unmarshal([]byte(value), &d); iterErr != nil {
				return false
			}
			if d.Name == ro.Name {
				exists = true
				return false
			}
			return true
		})
		if err != nil {
			return err
		}
		if iterErr != nil {
			return iterErr
		}
		if exists {
			return role.ErrRoleNameExists
		}

		bs, err := json.Marshal(toRoleDoc(ro))
		if err != nil {
			return err
		}
		_, _, err = tx.Set(roleKey(ro.ID), string(bs), nil)
		return err
	})
	if err != nil {
		if errors.Is(err, role.ErrRoleNameExists) {
			return role.Role{}, role.ErrRoleNameExists
		}
		return role.Role{}, fmt.Errorf("failed to create role: %w", err)
	}

	return ro, nil
}

// Update implements role.Repository.
func (r *roleRepositoryImpl) Update(ctx context.Context, id string, fields role.UpdateRoleFields) (role.Role, error) {
	updated, err := r.mutate(id, func(ro *role.Role) error {
		if fields.Name != nil {
			ro.Name = *fields.Name
		}
		if fields.Description != nil {
			ro.Description = *fields.Description
		}
		if fields.Color != nil {
			ro.Color = *fields.Color
		}
		if fields.AssignedEmployees != nil {
			ro.AssignedEmployees = *fields.AssignedEmployees
		}
		return nil
	})
	if err != nil {
		return role.Role{}, err
	}
	return updated, nil
}

// DeleteRole implements role.Repository. The document holds the schedule, so
// role and entries go as one unit.
func (r *roleRepositoryImpl) DeleteRole(ctx context.Context, id string) error {
	err := r.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(roleKey(id))
		if errors.Is(err, buntdb.ErrNotFound) {
			return role.ErrRoleNotFound
		}
		return err
	})
	if err != nil {
		if errors.Is(err, role.ErrRoleNotFound) {
			return role.ErrRoleNotFound
		}
		return fmt.Errorf("failed to delete role: %w", err)
	}
	return nil
}

// UpsertDayEntry implements role.Repository.
func (r *roleRepositoryImpl) UpsertDayEntry(ctx context.Context, roleID, day string, times role.DayTimes) error {
	_, err := r.mutate(roleID, func(ro *role.Role) error {
		ro.Schedule[day] = times
		return nil
	})
	return err
}

// DeleteDayEntry implements role.Repository.
func (r *roleRepositoryImpl) DeleteDayEntry(ctx context.Context, roleID, day string) error {
	_, err := r.mutate(roleID, func(ro *role.Role) error {
		if _, ok := ro.Schedule[day]; !ok {
			return role.ErrDayEntryNotFound
		}
		delete(ro.Schedule, day)
		return nil
	})
	return err
}

// ReplaceSchedule implements role.Repository.
func (r *roleRepositoryImpl) ReplaceSchedule(ctx context.Context, roleID string, schedule map[string]role.DayTimes) error {
	_, err := r.mutate(roleID, func(ro *role.Role) error {
		if schedule == nil {
			schedule = map[string]role.DayTimes{}
		}
		ro.Schedule = schedule
		return nil
	})
	return err
}

// mutate applies fn to the stored role inside one transaction and persists
// the result.
func (r *roleRepositoryImpl) mutate(id string, fn func(*role.Role) error) (role.Role, error) {
	var out role.Role
	err := r.db.Update(func(tx *buntdb.Tx) error {
		value, err := tx.Get(roleKey(id))
		if errors.Is(err, buntdb.ErrNotFound) {
			return role.ErrRoleNotFound
		} else if err != nil {
			return err
		}

		var d roleDoc
		if err := json.Unmarshal([]byte(value), &d); err != nil {
			return err
		}
		ro := fromRoleDoc(d)

		if err := fn(&ro); err != nil {
			return err
		}
		ro.UpdatedAt = time.Now().UTC().Truncate(time.Second)

		bs, err := json.Marshal(toRoleDoc(ro))
		if err != nil {
			return err
		}
		if _, _, err := tx.Set(roleKey(id), string(bs), nil); err != nil {
			return err
		}
		out = ro
		return nil
	})
	if err != nil {
		if errors.Is(err, role.ErrRoleNotFound) || errors.Is(err, role.ErrDayEntryNotFound) {
			return role.Role{}, err
		}
		return role.Role{}, fmt.Errorf("failed to update role: %w", err)
	}
	return out, nil
}
