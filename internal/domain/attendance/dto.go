package attendance

import (
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string       `json:"-"`
	Location   *GeoLocation `json:"location,omitempty"`
	Notes      *string      `json:"notes,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Location != nil {
		if r.Location.Latitude < -90 || r.Location.Latitude > 90 {
			errs = append(errs, validator.ValidationError{
				Field:   "location.latitude",
				Message: "latitude must be between -90 and 90",
			})
		}
		if r.Location.Longitude < -180 || r.Location.Longitude > 180 {
			errs = append(errs, validator.ValidationError{
				Field:   "location.longitude",
				Message: "longitude must be between -180 and 180",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type StartBreakRequest struct {
	EmployeeID string  `json:"-"`
	Reason     *string `json:"reason,omitempty"`
}

func (r *StartBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EndBreakRequest struct {
	EmployeeID string `json:"-"`
}

type CheckOutRequest struct {
	EmployeeID string `json:"-"`
	// BreakTimeMinutes overrides the accumulated break ledger total when
	// supplied (including an explicit zero).
	BreakTimeMinutes *int    `json:"break_time_minutes,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.BreakTimeMinutes != nil && *r.BreakTimeMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_time_minutes",
			Message: "break_time_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MarkAbsentRequest is the admin action that forces a date to absent.
type MarkAbsentRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Notes      *string `json:"notes,omitempty"`
}

func (r *MarkAbsentRequest) Validate() error {
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

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BreakPeriodResponse struct {
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Reason          *string `json:"reason,omitempty"`
}

type AttendanceResponse struct {
	ID                string                `json:"id"`
	EmployeeID        string                `json:"employee_id"`
	EmployeeName      *string               `json:"employee_name,omitempty"`
	Date              string                `json:"date"`
	CheckIn           *string               `json:"check_in,omitempty"`
	CheckOut          *string               `json:"check_out,omitempty"`
	Status            string                `json:"status"`
	IsLate            bool                  `json:"is_late"`
	LateByMinutes     int                   `json:"late_by_minutes,omitempty"`
	IsEarlyDeparture  bool                  `json:"is_early_departure"`
	EarlyByMinutes    int                   `json:"early_by_minutes,omitempty"`
	BreakTotalMinutes int                   `json:"break_total_minutes"`
	IsOnBreak         bool                  `json:"is_on_break"`
	CurrentBreakStart *string               `json:"current_break_start,omitempty"`
	BreakPeriods      []BreakPeriodResponse `json:"break_periods,omitempty"`
	TotalHours        *float64              `json:"total_hours,omitempty"`
	WorkingHours      *float64              `json:"working_hours,omitempty"`
	OvertimeHours     *float64              `json:"overtime_hours,omitempty"`
	Notes             *string               `json:"notes,omitempty"`
	Location          *GeoLocation          `json:"location,omitempty"`
	CreatedAt         string                `json:"created_at"`
	UpdatedAt         string                `json:"updated_at"`
}

// TodayStatusResponse tells the client which actions are currently valid.
type TodayStatusResponse struct {
	Date         string              `json:"date"`
	HasCheckedIn bool                `json:"has_checked_in"`
	CanCheckIn   bool                `json:"can_check_in"`
	CanCheckOut  bool                `json:"can_check_out"`
	IsOnBreak    bool                `json:"is_on_break"`
	Record       *AttendanceResponse `json:"record,omitempty"`
}

// AdminAttendanceFilter filters the admin-facing listing, sorted by
// creation time descending.
type AdminAttendanceFilter struct {
	Date   *string `json:"date,omitempty"` // YYYY-MM-DD
	Status *string `json:"status,omitempty"`
	Limit  int     `json:"limit"`
}

func (f *AdminAttendanceFilter) Validate() error {
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

	if f.Date != nil && *f.Date != "" {
		if _, ok := validator.IsValidDate(*f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Status != nil && *f.Status != "" {
		if !validator.IsInSlice(*f.Status, ValidStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: present, late, half-day, absent, on-leave",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MonthlyReportResponse is the per-employee month summary plus the raw
// records it was derived from.
type MonthlyReportResponse struct {
	EmployeeID         string               `json:"employee_id"`
	Month              string               `json:"month"` // YYYY-MM
	PresentDays        int                  `json:"present_days"`
	LateDays           int                  `json:"late_days"`
	HalfDays           int                  `json:"half_days"`
	AbsentDays         int                  `json:"absent_days"`
	TotalHours         float64              `json:"total_hours"`
	TotalOvertimeHours float64              `json:"total_overtime_hours"`
	AvgHoursPerDay     float64              `json:"avg_hours_per_day"`
	Records            []AttendanceResponse `json:"records"`
}
