package attendance

import (
	"time"
)

// Attendance statuses
const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusHalfDay = "half-day"
	StatusAbsent  = "absent"
	StatusOnLeave = "on-leave"
)

var ValidStatuses = []string{StatusPresent, StatusLate, StatusHalfDay, StatusAbsent, StatusOnLeave}

// AttendanceRecord is one employee's attendance for one organization-local
// calendar date. It is created lazily on first check-in, or as an empty
// "absent" placeholder when a regularization request references a date with
// no record. Records are never deleted, only patched.
type AttendanceRecord struct {
	ID         string
	EmployeeID string
	Date       string // "YYYY-MM-DD", organization-local

	CheckIn  *string // "HH:MM"
	CheckOut *string // "HH:MM"
	Status   string

	IsLate           bool
	LateByMinutes    int
	IsEarlyDeparture bool
	EarlyByMinutes   int

	BreakTotalMinutes int
	IsOnBreak         bool
	CurrentBreakStart *string // "HH:MM" while a break is open
	BreakPeriods      []BreakPeriod

	TotalHours    *float64
	WorkingHours  *float64
	OvertimeHours *float64

	Notes    *string
	Location *GeoLocation

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// BreakPeriod is one contiguous on-break interval within a day. At most one
// period per record has no EndTime.
type BreakPeriod struct {
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Reason          *string `json:"reason,omitempty"`
}

// GeoLocation is the client-supplied position captured at check-in. Stored
// verbatim, never validated beyond coordinate ranges.
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   *string `json:"address,omitempty"`
}
