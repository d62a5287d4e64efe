package http

import (
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/policy"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
)

type PolicyHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
}

type policyHandlerImpl struct {
	policyProvider policy.Provider
}

func NewPolicyHandler(policyProvider policy.Provider) PolicyHandler {
	return &policyHandlerImpl{
		policyProvider: policyProvider,
	}
}

// Get implements PolicyHandler.
func (h *policyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	active, err := h.policyProvider.ActivePolicy(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, policy.PolicyResponse{
		ID:                 active.ID,
		Name:               active.Name,
		StartTime:          active.StartTime,
		EndTime:            active.EndTime,
		GracePeriodMinutes: active.GracePeriodMinutes,
		HalfDayHours:       active.HalfDayHours,
		FullDayHours:       active.FullDayHours,
		IsDefault:          active.IsDefault,
	})
}
