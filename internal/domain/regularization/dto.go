package regularization

import (
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// REGULARIZATION DTOs
// ========================================

type CreateRequestRequest struct {
	EmployeeID        string  `json:"-"`
	Date              string  `json:"date"` // YYYY-MM-DD
	RequestType       string  `json:"request_type"`
	RequestedCheckIn  *string `json:"requested_check_in,omitempty"`  // HH:MM
	RequestedCheckOut *string `json:"requested_check_out,omitempty"` // HH:MM
	Reason            string  `json:"reason"`
}

func (r *CreateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !validator.IsInSlice(r.RequestType, ValidTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_type",
			Message: "request_type must be one of: missing-checkin, missing-checkout, wrong-time, forgot-checkin",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if r.RequestedCheckIn != nil && !validator.IsValidTimeOfDay(*r.RequestedCheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "requested_check_in",
			Message: "requested_check_in must be in HH:MM format",
		})
	}

	if r.RequestedCheckOut != nil && !validator.IsValidTimeOfDay(*r.RequestedCheckOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "requested_check_out",
			Message: "requested_check_out must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ApproveRequestRequest reviews a pending request favourably; notes are
// optional on approval.
type ApproveRequestRequest struct {
	ID          string  `json:"-"`
	ReviewerID  string  `json:"-"`
	ReviewNotes *string `json:"review_notes,omitempty"`
}

// RejectRequestRequest reviews a pending request unfavourably; rejection
// always requires a reason.
type RejectRequestRequest struct {
	ID          string `json:"-"`
	ReviewerID  string `json:"-"`
	ReviewNotes string `json:"review_notes"`
}

func (r *RejectRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ReviewNotes) {
		errs = append(errs, validator.ValidationError{
			Field:   "review_notes",
			Message: "review notes are required when rejecting a request",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RequestResponse struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	EmployeeName      *string `json:"employee_name,omitempty"`
	AttendanceID      string  `json:"attendance_id"`
	Date              string  `json:"date"`
	RequestType       string  `json:"request_type"`
	RequestedCheckIn  *string `json:"requested_check_in,omitempty"`
	RequestedCheckOut *string `json:"requested_check_out,omitempty"`
	Reason            string  `json:"reason"`
	Status            string  `json:"status"`
	ReviewedBy        *string `json:"reviewed_by,omitempty"`
	ReviewerName      *string `json:"reviewer_name,omitempty"`
	ReviewedAt        *string `json:"reviewed_at,omitempty"`
	ReviewNotes       *string `json:"review_notes,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

// ListFilter filters the admin listing by status.
type ListFilter struct {
	Status *string `json:"status,omitempty"`
	Limit  int     `json:"limit"`
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 50 // Default limit
	}
	if f.Limit > 200 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 200",
		})
	}

	if f.Status != nil && *f.Status != "" {
		if !validator.IsInSlice(*f.Status, ValidStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: pending, approved, rejected",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
