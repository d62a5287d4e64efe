package regularization

import (
	"context"
	"time"
)

// RegularizationRepository defines data access for regularization requests.
type RegularizationRepository interface {
	Create(ctx context.Context, req Request) (Request, error)

	// GetByID joins employee and reviewer display names.
	// Returns ErrRequestNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (Request, error)

	// HasPendingForDate reports whether the employee already has a pending
	// request for the date
	HasPendingForDate(ctx context.Context, employeeID string, date string) (bool, error)

	// UpdateReview records the terminal review outcome
	UpdateReview(ctx context.Context, id string, status string, reviewedBy string, reviewedAt time.Time, reviewNotes *string) error

	// ListPending returns pending requests, oldest first
	ListPending(ctx context.Context) ([]Request, error)

	// List returns requests newest first, optionally filtered by status
	List(ctx context.Context, filter ListFilter) ([]Request, error)

	// ListByEmployee returns the employee's requests, newest first
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]Request, error)
}
