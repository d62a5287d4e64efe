package penalty

import "context"

// PenaltyRepository is append-only: entries are only ever created as a side
// effect of check-in lateness detection, never updated or deleted.
type PenaltyRepository interface {
	Create(ctx context.Context, entry PenaltyEntry) (PenaltyEntry, error)

	// ListByEmployee returns entries newest first
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]PenaltyEntry, error)

	// PointsByType sums points per infraction type, optionally within one
	// "YYYY-MM" month
	PointsByType(ctx context.Context, employeeID string, month *string) (map[string]int, error)
}

// PenaltyService exposes the read side of the ledger.
type PenaltyService interface {
	ListForEmployee(ctx context.Context, employeeID string, limit int) ([]PenaltyResponse, error)
	Summary(ctx context.Context, employeeID string, month *string) (PenaltySummaryResponse, error)
}
