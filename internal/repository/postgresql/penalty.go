package postgresql

import (
	"context"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/penalty"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type penaltyRepository struct {
	db *database.DB
}

// Create implements penalty.PenaltyRepository.
func (p *penaltyRepository) Create(ctx context.Context, entry penalty.PenaltyEntry) (penalty.PenaltyEntry, error) {
	q := database.QuerierFrom(ctx, p.db)

	entry.ID = uuid.NewString()
	query := `
		INSERT INTO penalty_entries (
			id, employee_id, attendance_id, date, type, points, description
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.EmployeeID,
		entry.AttendanceID,
		entry.Date,
		entry.Type,
		entry.Points,
		entry.Description,
	).Scan(&entry.CreatedAt)

	if err != nil {
		return penalty.PenaltyEntry{}, fmt.Errorf("failed to create penalty entry: %w", err)
	}

	return entry, nil
}

// ListByEmployee implements penalty.PenaltyRepository.
func (p *penaltyRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]penalty.PenaltyEntry, error) {
	q := database.QuerierFrom(ctx, p.db)

	query := `
		SELECT id, employee_id, attendance_id, date, type, points, description, created_at
		FROM penalty_entries
		WHERE employee_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list penalty entries: %w", err)
	}
	defer rows.Close()

	var entries []penalty.PenaltyEntry
	for rows.Next() {
		var e penalty.PenaltyEntry
		err := rows.Scan(&e.ID, &e.EmployeeID, &e.AttendanceID, &e.Date, &e.Type, &e.Points, &e.Description, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan penalty entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read penalty rows: %w", err)
	}

	return entries, nil
}

// PointsByType implements penalty.PenaltyRepository.
func (p *penaltyRepository) PointsByType(ctx context.Context, employeeID string, month *string) (map[string]int, error) {
	q := database.QuerierFrom(ctx, p.db)

	query := `
		SELECT type, COALESCE(SUM(points), 0)
		FROM penalty_entries
		WHERE employee_id = $1
	`
	args := []interface{}{employeeID}
	if month != nil && *month != "" {
		query += ` AND date LIKE $2 || '-%'`
		args = append(args, *month)
	}
	query += ` GROUP BY type`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to sum penalty points: %w", err)
	}
	defer rows.Close()

	points := make(map[string]int)
	for rows.Next() {
		var penaltyType string
		var total int
		if err := rows.Scan(&penaltyType, &total); err != nil {
			return nil, fmt.Errorf("failed to scan penalty sum: %w", err)
		}
		points[penaltyType] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read penalty sums: %w", err)
	}

	return points, nil
}

func NewPenaltyRepository(db *database.DB) penalty.PenaltyRepository {
	return &penaltyRepository{db: db}
}
