package regularization

import "time"

// Request statuses. pending is the only non-terminal state; a request is
// reviewed exactly once.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var ValidStatuses = []string{StatusPending, StatusApproved, StatusRejected}

// Request types
const (
	TypeMissingCheckIn  = "missing-checkin"
	TypeMissingCheckOut = "missing-checkout"
	TypeWrongTime       = "wrong-time"
	TypeForgotCheckIn   = "forgot-checkin"
)

var ValidTypes = []string{TypeMissingCheckIn, TypeMissingCheckOut, TypeWrongTime, TypeForgotCheckIn}

// Request is an employee-initiated retroactive correction of one day's
// attendance record. It always links an attendance record: a placeholder
// is created when the date has none.
type Request struct {
	ID           string
	EmployeeID   string
	AttendanceID string
	Date         string // "YYYY-MM-DD"
	RequestType  string

	RequestedCheckIn  *string // "HH:MM"
	RequestedCheckOut *string // "HH:MM"
	Reason            string

	Status      string
	ReviewedBy  *string
	ReviewedAt  *time.Time
	ReviewNotes *string

	CreatedAt time.Time

	// DTO
	EmployeeName *string
	ReviewerName *string
}
