package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftwise/roster-backend-go/internal/domain/shift"
	"github.com/shiftwise/roster-backend-go/internal/handler/http/response"
)

type ShiftHandler interface {
	ListShifts(w http.ResponseWriter, r *http.Request)
	AssignShift(w http.ResponseWriter, r *http.Request)
	UpdateShift(w http.ResponseWriter, r *http.Request)
	DeleteShift(w http.ResponseWriter, r *http.Request)
	DeleteShiftsInRange(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.Service
}

func NewShiftHandler(shiftService shift.Service) ShiftHandler {
	return &shiftHandlerImpl{
		shiftService: shiftService,
	}
}

// ListShifts implements ShiftHandler.
func (h *shiftHandlerImpl) ListShifts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	req := shift.ListShiftsRequest{
		From:     params.Get("from"),
		To:       params.Get("to"),
		TimeZone: params.Get("time_zone"),
	}
	if employeeID := params.Get("employee_id"); employeeID != "" {
		req.EmployeeID = &employeeID
	}

	results, err := h.shiftService.GetSchedulesForRange(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// AssignShift implements ShiftHandler.
func (h *shiftHandlerImpl) AssignShift(w http.ResponseWriter, r *http.Request) {
	var req shift.AssignShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.shiftService.AssignShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift assigned successfully", result)
}

// UpdateShift implements ShiftHandler.
func (h *shiftHandlerImpl) UpdateShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req shift.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.shiftService.UpdateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift updated successfully", result)
}

// DeleteShift implements ShiftHandler.
func (h *shiftHandlerImpl) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.shiftService.DeleteShift(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted successfully", nil)
}

// DeleteShiftsInRange implements ShiftHandler.
func (h *shiftHandlerImpl) DeleteShiftsInRange(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	err := h.shiftService.DeleteShiftsInRange(r.Context(), params.Get("from"), params.Get("to"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shifts deleted successfully", nil)
}
