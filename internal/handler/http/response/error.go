package response

import (
	"errors"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/policy"
	"github.com/attendly/attendance-backend-go/internal/domain/regularization"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance state conflicts
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "Not checked in today")
	case errors.Is(err, attendance.ErrAlreadyOnBreak):
		Conflict(w, "A break is already in progress")
	case errors.Is(err, attendance.ErrNotOnBreak):
		Conflict(w, "No break is in progress")
	case errors.Is(err, attendance.ErrBreakStillOpen):
		Conflict(w, "End the open break before checking out")
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, "Check-out time is before check-in time", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Regularization domain errors
	case errors.Is(err, regularization.ErrRequestNotFound):
		NotFound(w, "Regularization request not found")
	case errors.Is(err, regularization.ErrRequestAlreadyProcessed):
		Conflict(w, "Regularization request already processed")
	case errors.Is(err, regularization.ErrPendingRequestExists):
		Conflict(w, "A pending request already exists for this date")

	// Policy domain errors
	case errors.Is(err, policy.ErrPolicyNotFound):
		NotFound(w, "Shift policy not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
