package postgresql

import (
	"context"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/policy"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftPolicyRepository struct {
	db *database.DB
}

// GetDefault implements policy.ShiftPolicyRepository.
func (s *shiftPolicyRepository) GetDefault(ctx context.Context) (policy.ShiftPolicy, error) {
	q := database.QuerierFrom(ctx, s.db)

	query := `
		SELECT id, name, start_time, end_time, grace_period_minutes,
			   half_day_hours, full_day_hours, is_default, created_at, updated_at
		FROM shift_policies
		WHERE is_default = TRUE
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var p policy.ShiftPolicy
	err := q.QueryRow(ctx, query).Scan(
		&p.ID, &p.Name, &p.StartTime, &p.EndTime, &p.GracePeriodMinutes,
		&p.HalfDayHours, &p.FullDayHours, &p.IsDefault, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return policy.ShiftPolicy{}, policy.ErrPolicyNotFound
		}
		return policy.ShiftPolicy{}, fmt.Errorf("failed to get default shift policy: %w", err)
	}

	return p, nil
}

func NewShiftPolicyRepository(db *database.DB) policy.ShiftPolicyRepository {
	return &shiftPolicyRepository{db: db}
}
