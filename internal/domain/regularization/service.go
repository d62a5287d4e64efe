package regularization

import (
	"context"
)

// RegularizationService defines the request/review workflow.
type RegularizationService interface {
	// CreateRequest files a correction request for one date, creating a
	// placeholder attendance record when the date has none. At most one
	// pending request per (employee, date).
	CreateRequest(ctx context.Context, req CreateRequestRequest) (RequestResponse, error)

	// ApproveRequest terminally approves a pending request and patches the
	// linked attendance record with the requested times
	ApproveRequest(ctx context.Context, req ApproveRequestRequest) (RequestResponse, error)

	// RejectRequest terminally rejects a pending request; the attendance
	// record is untouched
	RejectRequest(ctx context.Context, req RejectRequestRequest) (RequestResponse, error)

	// ListPending returns all pending requests (admin)
	ListPending(ctx context.Context) ([]RequestResponse, error)

	// List returns requests filtered by status (admin)
	List(ctx context.Context, filter ListFilter) ([]RequestResponse, error)

	// ListByEmployee returns the employee's own requests, newest first
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]RequestResponse, error)

	// GetByID returns one request; ErrRequestNotFound for unknown ids
	GetByID(ctx context.Context, id string) (RequestResponse, error)
}
