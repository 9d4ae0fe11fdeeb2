package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftwise/roster-backend-go/internal/domain/shift"
	"github.com/shiftwise/roster-backend-go/internal/pkg/timecodec"
	"github.com/shiftwise/roster-backend-go/internal/pkg/validator"
)

type shiftServiceImpl struct {
	repo  shift.Repository
	codec *timecodec.Codec
}

func NewShiftService(repo shift.Repository, codec *timecodec.Codec) shift.Service {
	return &shiftServiceImpl{repo: repo, codec: codec}
}

// GetSchedulesForRange implements shift.Service.
func (s *shiftServiceImpl) GetSchedulesForRange(ctx context.Context, req shift.ListShiftsRequest) ([]shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	from, _ := time.Parse(shift.DateLayout, req.From)
	to, _ := time.Parse(shift.DateLayout, req.To)

	shifts, err := s.repo.List(ctx, shift.ListFilter{From: from, To: to, EmployeeID: req.EmployeeID})
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		resp := sh.ToResponse()
		if req.TimeZone != "" {
			// Display boundary: stored UTC wall times become viewer-local.
			resp.StartTime = s.codec.ToLocal(sh.StartTime, resp.Date, req.TimeZone)
			resp.EndTime = s.codec.ToLocal(sh.EndTime, resp.Date, req.TimeZone)
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// AssignShift implements shift.Service.
func (s *shiftServiceImpl) AssignShift(ctx context.Context, req shift.AssignShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	date, _ := time.Parse(shift.DateLayout, req.Date)

	startUTC := req.StartTime
	endUTC := req.EndTime
	if req.TimeZone != "" {
		startUTC = s.codec.ToUTC(req.StartTime, req.Date, req.TimeZone)
		endUTC = s.codec.ToUTC(req.EndTime, req.Date, req.TimeZone)
	}

	created, err := s.repo.Create(ctx, shift.Shift{
		EmployeeID: req.EmployeeID,
		RoleID:     req.RoleID,
		Date:       date,
		StartTime:  startUTC,
		EndTime:    endUTC,
	})
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to assign shift: %w", err)
	}

	return created.ToResponse(), nil
}

// UpdateShift implements shift.Service.
func (s *shiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}
	// Local times need an anchor date to convert; without one the supplied
	// times are taken as UTC wall-clock already.
	if req.TimeZone != "" && req.Date == nil && (req.StartTime != nil || req.EndTime != nil) {
		return shift.ShiftResponse{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date is required when updating times with a time_zone",
		}}
	}

	fields := shift.UpdateShiftFields{RoleID: req.RoleID}
	if req.Date != nil {
		date, _ := time.Parse(shift.DateLayout, *req.Date)
		fields.Date = &date
	}
	if req.StartTime != nil {
		start := *req.StartTime
		if req.TimeZone != "" {
			start = s.codec.ToUTC(start, *req.Date, req.TimeZone)
		}
		fields.StartTime = &start
	}
	if req.EndTime != nil {
		end := *req.EndTime
		if req.TimeZone != "" {
			end = s.codec.ToUTC(end, *req.Date, req.TimeZone)
		}
		fields.EndTime = &end
	}

	updated, err := s.repo.Update(ctx, req.ID, fields)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return updated.ToResponse(), nil
}

// DeleteShift implements shift.Service. A missing id is reported to the
// caller as not-found; it is up to the caller whether that is fatal.
func (s *shiftServiceImpl) DeleteShift(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}

// DeleteShiftsInRange implements shift.Service.
func (s *shiftServiceImpl) DeleteShiftsInRange(ctx context.Context, fromStr, toStr string) error {
	req := shift.ListShiftsRequest{From: fromStr, To: toStr}
	if err := req.Validate(); err != nil {
		return err
	}

	from, _ := time.Parse(shift.DateLayout, fromStr)
	to, _ := time.Parse(shift.DateLayout, toStr)

	if err := s.repo.DeleteByDateRange(ctx, from, to); err != nil {
		return fmt.Errorf("failed to delete shifts in range: %w", err)
	}
	return nil
}
