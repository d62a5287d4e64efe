package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/policy"
)

type ShiftPolicyProvider struct {
	policy.ShiftPolicyRepository
}

// ActivePolicy implements policy.Provider. The built-in fallback covers
// the empty-table case, so callers never branch on a missing policy.
func (p *ShiftPolicyProvider) ActivePolicy(ctx context.Context) (policy.ShiftPolicy, error) {
	active, err := p.ShiftPolicyRepository.GetDefault(ctx)
	if err != nil {
		if errors.Is(err, policy.ErrPolicyNotFound) {
			return policy.Fallback(), nil
		}
		return policy.ShiftPolicy{}, fmt.Errorf("failed to get default shift policy: %w", err)
	}
	return active, nil
}

func NewShiftPolicyProvider(repo policy.ShiftPolicyRepository) policy.Provider {
	return &ShiftPolicyProvider{ShiftPolicyRepository: repo}
}
