package penalty

import (
	"context"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/penalty"
)

type PenaltyServiceImpl struct {
	penalty.PenaltyRepository
}

// ListForEmployee implements penalty.PenaltyService.
func (p *PenaltyServiceImpl) ListForEmployee(ctx context.Context, employeeID string, limit int) ([]penalty.PenaltyResponse, error) {
	if limit <= 0 {
		limit = 50
	}

	entries, err := p.PenaltyRepository.ListByEmployee(ctx, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list penalty entries: %w", err)
	}

	responses := make([]penalty.PenaltyResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, penalty.PenaltyResponse{
			ID:           e.ID,
			EmployeeID:   e.EmployeeID,
			AttendanceID: e.AttendanceID,
			Date:         e.Date,
			Type:         e.Type,
			Points:       e.Points,
			Description:  e.Description,
			CreatedAt:    e.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return responses, nil
}

// Summary implements penalty.PenaltyService.
func (p *PenaltyServiceImpl) Summary(ctx context.Context, employeeID string, month *string) (penalty.PenaltySummaryResponse, error) {
	points, err := p.PenaltyRepository.PointsByType(ctx, employeeID, month)
	if err != nil {
		return penalty.PenaltySummaryResponse{}, fmt.Errorf("failed to sum penalty points: %w", err)
	}

	total := 0
	for _, v := range points {
		total += v
	}

	return penalty.PenaltySummaryResponse{
		EmployeeID:   employeeID,
		Month:        month,
		PointsByType: points,
		TotalPoints:  total,
	}, nil
}

func NewPenaltyService(repo penalty.PenaltyRepository) penalty.PenaltyService {
	return &PenaltyServiceImpl{PenaltyRepository: repo}
}
