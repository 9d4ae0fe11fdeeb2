package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftwise/roster-backend-go/internal/domain/role"
	"github.com/shiftwise/roster-backend-go/internal/handler/http/response"
)

type RoleHandler interface {
	ListRoles(w http.ResponseWriter, r *http.Request)
	CreateRole(w http.ResponseWriter, r *http.Request)
	UpdateRole(w http.ResponseWriter, r *http.Request)
	DeleteRole(w http.ResponseWriter, r *http.Request)
	UpsertRoleDay(w http.ResponseWriter, r *http.Request)
	DeleteRoleDay(w http.ResponseWriter, r *http.Request)
}

type roleHandlerImpl struct {
	roleService role.Service
}

func NewRoleHandler(roleService role.Service) RoleHandler {
	return &roleHandlerImpl{
		roleService: roleService,
	}
}

// ListRoles implements RoleHandler.
func (h *roleHandlerImpl) ListRoles(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	results, err := h.roleService.GetRolesForRange(r.Context(), params.Get("from"), params.Get("to"), params.Get("time_zone"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// CreateRole implements RoleHandler.
func (h *roleHandlerImpl) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req role.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.roleService.CreateRole(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Role created successfully", result)
}

// UpdateRole implements RoleHandler.
func (h *roleHandlerImpl) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req role.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.roleService.UpdateRole(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role updated successfully", result)
}

// DeleteRole implements RoleHandler.
func (h *roleHandlerImpl) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.roleService.DeleteRole(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role deleted successfully", nil)
}

// UpsertRoleDay implements RoleHandler.
func (h *roleHandlerImpl) UpsertRoleDay(w http.ResponseWriter, r *http.Request) {
	roleID := chi.URLParam(r, "id")
	day := chi.URLParam(r, "day")

	var req role.UpsertRoleDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.RoleID = roleID
	req.Day = day

	if err := h.roleService.UpsertRoleDay(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role schedule updated successfully", nil)
}

// DeleteRoleDay implements RoleHandler.
func (h *roleHandlerImpl) DeleteRoleDay(w http.ResponseWriter, r *http.Request) {
	roleID := chi.URLParam(r, "id")
	day := chi.URLParam(r, "day")

	if err := h.roleService.DeleteRoleDay(r.Context(), roleID, day); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role schedule entry deleted successfully", nil)
}
