package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn records the employee's check-in for the organization-local
	// today, classifying lateness and appending a penalty entry when late
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// StartBreak opens a break period on today's record
	StartBreak(ctx context.Context, req StartBreakRequest) (AttendanceResponse, error)

	// EndBreak closes the open break period and recomputes the break total
	EndBreak(ctx context.Context, req EndBreakRequest) (AttendanceResponse, error)

	// CheckOut records the check-out and computes all derived fields
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// MarkAbsent creates or patches a record to absent (admin)
	MarkAbsent(ctx context.Context, req MarkAbsentRequest) (AttendanceResponse, error)

	// TodayStatus reports which attendance actions are currently valid
	TodayStatus(ctx context.Context, employeeID string) (TodayStatusResponse, error)

	// History retrieves the employee's records, most recent first
	History(ctx context.Context, employeeID string, limit int) ([]AttendanceResponse, error)

	// MonthlyReport aggregates one employee's records for "YYYY-MM"
	MonthlyReport(ctx context.Context, employeeID string, month string) (MonthlyReportResponse, error)

	// ListAll retrieves records across employees (admin)
	ListAll(ctx context.Context, filter AdminAttendanceFilter) ([]AttendanceResponse, error)
}
