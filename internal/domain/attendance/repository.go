package attendance

import (
	"context"
)

// AttendanceRepository defines data access for attendance records. Each
// record is the unit of consistency: Update writes the full mutable column
// set in one statement, so concurrent queries only ever observe a record
// before or after a transition, never half of one.
type AttendanceRepository interface {
	// Create inserts a new record for (employee, date); the unique key on
	// that pair rejects concurrent duplicate creation
	Create(ctx context.Context, rec AttendanceRecord) (AttendanceRecord, error)

	// Update rewrites the record's mutable fields
	Update(ctx context.Context, rec AttendanceRecord) error

	// GetByID retrieves a record, joining the employee display name.
	// Returns ErrAttendanceNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (AttendanceRecord, error)

	// GetByEmployeeAndDate returns nil (no error) when no record exists
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*AttendanceRecord, error)

	// ListByEmployee returns records most-recent-first
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]AttendanceRecord, error)

	// ListByMonth returns records whose date falls in month "YYYY-MM"
	ListByMonth(ctx context.Context, employeeID string, month string) ([]AttendanceRecord, error)

	// List returns the admin listing, newest creation first
	List(ctx context.Context, filter AdminAttendanceFilter) ([]AttendanceRecord, error)

	// ListOpenBefore returns records with a check-in but no check-out for
	// dates strictly before the given one; used by the auto-close job
	ListOpenBefore(ctx context.Context, date string) ([]AttendanceRecord, error)
}
