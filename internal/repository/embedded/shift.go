// Package embedded implements the roster repositories on buntdb, an embedded
// JSON document store. It backs the "embedded" store driver and the service
// test suites; the persistence interfaces are store-agnostic, so it is a full
// peer of the postgresql package.
package embedded

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shiftwise/roster-backend-go/internal/domain/shift"
	"github.com/tidwall/buntdb"
)

const shiftKeyPrefix = "shift:"

type shiftDoc struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	RoleID     *string `json:"role_id,omitempty"`
	Date       string  `json:"date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func shiftKey(id string) string {
	return shiftKeyPrefix + id
}

func toShiftDoc(s shift.Shift) shiftDoc {
	return shiftDoc{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		RoleID:     s.RoleID,
		Date:       s.Date.Format(shift.DateLayout),
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  s.UpdatedAt.Format(time.RFC3339),
	}
}

func fromShiftDoc(d shiftDoc) (shift.Shift, error) {
	date, err := time.Parse(shift.DateLayout, d.Date)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("corrupt shift document %s: %w", d.ID, err)
	}
	createdAt, _ := time.Parse(time.RFC3339, d.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, d.UpdatedAt)
	return shift.Shift{
		ID:         d.ID,
		EmployeeID: d.EmployeeID,
		RoleID:     d.RoleID,
		Date:       date,
		StartTime:  d.StartTime,
		EndTime:    d.EndTime,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

type shiftRepositoryImpl struct {
	db *buntdb.DB
}

func NewShiftRepository(db *buntdb.DB) shift.Repository {
	return &shiftRepositoryImpl{db: db}
}

// List implements shift.Repository.
func (r *shiftRepositoryImpl) List(ctx context.Context, filter shift.ListFilter) ([]shift.Shift, error) {
	var shifts []shift.Shift
	err := r.db.View(func(tx *buntdb.Tx) error {
		var iterErr error
		err := tx.AscendKeys(shiftKeyPrefix+"*", func(key, value string) bool {
			var d shiftDoc
			if iterErr = json.Unmarshal([]byte(value), &d); iterErr != nil {
				return false
			}
			s, err := fromShiftDoc(d)
			if err != nil {
				iterErr = err
				return false
			}
			if s.Date.Before(filter.From) || s.Date.After(filter.To) {
				return true
			}
			if filter.EmployeeID != nil && s.EmployeeID != *filter.EmployeeID {
				return true
			}
			shifts = append(shifts, s)
			return true
		})
		if err != nil {
			return err
		}
		return iterErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	sort.Slice(shifts, func(i, j int) bool {
		if !shifts[i].Date.Equal(shifts[j].Date) {
			return shifts[i].Date.Before(shifts[j].Date)
		}
		return shifts[i].StartTime < shifts[j].StartTime
	})
	return shifts, nil
}

// Create implements shift.Repository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now().UTC().Truncate(time.Second)
	s.CreatedAt = now
	s.UpdatedAt = now

	err := r.db.Update(func(tx *buntdb.Tx) error {
		bs, err := json.Marshal(toShiftDoc(s))
		if err != nil {
			return err
		}
		_, _, err = tx.Set(shiftKey(s.ID), string(bs), nil)
		return err
	})
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return s, nil
}

// BulkCreate implements shift.Repository. Inserts are independent per item.
func (r *shiftRepositoryImpl) BulkCreate(ctx context.Context, shifts []shift.Shift) ([]shift.Shift, error) {
	created := make([]shift.Shift, 0, len(shifts))
	var firstErr error
	for _, s := range shifts {
		c, err := r.Create(ctx, s)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		created = append(created, c)
	}
	return created, firstErr
}

// Update implements shift.Repository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, id string, fields shift.UpdateShiftFields) (shift.Shift, error) {
	var updated shift.Shift
	err := r.db.Update(func(tx *buntdb.Tx) error {
		value, err := tx.Get(shiftKey(id))
		if errors.Is(err, buntdb.ErrNotFound) {
			return shift.ErrShiftNotFound
		} else if err != nil {
			return err
		}

		var d shiftDoc
		if err := json.Unmarshal([]byte(value), &d); err != nil {
			return err
		}
		s, err := fromShiftDoc(d)
		if err != nil {
			return err
		}

		if fields.RoleID != nil {
			s.RoleID = fields.RoleID
		}
		if fields.Date != nil {
			s.Date = *fields.Date
		}
		if fields.StartTime != nil {
			s.StartTime = *fields.StartTime
		}
		if fields.EndTime != nil {
			s.EndTime = *fields.EndTime
		}
		s.UpdatedAt = time.Now().UTC().Truncate(time.Second)

		bs, err := json.Marshal(toShiftDoc(s))
		if err != nil {
			return err
		}
		if _, _, err := tx.Set(shiftKey(id), string(bs), nil); err != nil {
			return err
		}
		updated = s
		return nil
	})
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return updated, nil
}

// DeleteByID implements shift.Repository.
func (r *shiftRepositoryImpl) DeleteByID(ctx context.Context, id string) error {
	err := r.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(shiftKey(id))
		if errors.Is(err, buntdb.ErrNotFound) {
			return shift.ErrShiftNotFound
		}
		return err
	})
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}

// DeleteByDateRange implements shift.Repository.
func (r *shiftRepositoryImpl) DeleteByDateRange(ctx context.Context, from, to time.Time) error {
	err := r.db.Update(func(tx *buntdb.Tx) error {
		// buntdb forbids mutation during iteration; collect first.
		var keys []string
		var iterErr error
		err := tx.AscendKeys(shiftKeyPrefix+"*", func(key, value string) bool {
			var d shiftDoc
			if iterErr = json.Unmarshal([]byte(value), &d); iterErr != nil {
				return false
			}
			date, err := time.Parse(shift.DateLayout, d.Date)
			if err != nil {
				iterErr = err
				return false
			}
			if !date.Before(from) && !date.After(to) {
				keys = append(keys, key)
			}
			return true
		})
		if err != nil {
			return err
		}
		if iterErr != nil {
			return iterErr
		}
		for _, key := range keys {
			if _, err := tx.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete shifts in range: %w", err)
	}
	return nil
}
