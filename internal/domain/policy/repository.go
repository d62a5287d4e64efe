package policy

import "context"

// ShiftPolicyRepository defines data access for shift policies.
type ShiftPolicyRepository interface {
	// GetDefault retrieves the policy flagged as default.
	// Returns ErrPolicyNotFound when none is configured.
	GetDefault(ctx context.Context) (ShiftPolicy, error)
}

// Provider supplies the active shift policy to the attendance engine.
// Implementations fall back to Fallback() when nothing is configured, so
// ActivePolicy never fails on an empty table.
type Provider interface {
	ActivePolicy(ctx context.Context) (ShiftPolicy, error)
}
