package http

import (
	"net/http"
	"strconv"

	"github.com/attendly/attendance-backend-go/internal/domain/penalty"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
)

type PenaltyHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type penaltyHandlerImpl struct {
	penaltyService penalty.PenaltyService
}

func NewPenaltyHandler(penaltyService penalty.PenaltyService) PenaltyHandler {
	return &penaltyHandlerImpl{
		penaltyService: penaltyService,
	}
}

// List implements PenaltyHandler.
func (h *penaltyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.penaltyService.ListForEmployee(r.Context(), employeeID, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements PenaltyHandler.
func (h *penaltyHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var month *string
	if m := r.URL.Query().Get("month"); m != "" {
		month = &m
	}

	result, err := h.penaltyService.Summary(r.Context(), employeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
