package http

import (
	"encoding/json"
	"net/http"

	"github.com/shiftwise/roster-backend-go/internal/domain/rollout"
	"github.com/shiftwise/roster-backend-go/internal/handler/http/response"
)

type RolloutHandler interface {
	Rollout(w http.ResponseWriter, r *http.Request)
}

type rolloutHandlerImpl struct {
	rolloutService rollout.Service
}

func NewRolloutHandler(rolloutService rollout.Service) RolloutHandler {
	return &rolloutHandlerImpl{
		rolloutService: rolloutService,
	}
}

// Rollout implements RolloutHandler.
func (h *rolloutHandlerImpl) Rollout(w http.ResponseWriter, r *http.Request) {
	var req rollout.RolloutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.rolloutService.Rollout(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Week rolled out successfully", result)
}
