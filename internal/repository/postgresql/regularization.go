package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/regularization"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type regularizationRepository struct {
	db *database.DB
}

const regularizationColumns = `
	r.id, r.employee_id, e.full_name, r.attendance_id, r.date, r.request_type,
	r.requested_check_in, r.requested_check_out, r.reason,
	r.status, r.reviewed_by, rv.full_name, r.reviewed_at, r.review_notes,
	r.created_at`

func scanRequest(row pgx.Row) (regularization.Request, error) {
	var req regularization.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.EmployeeName, &req.AttendanceID, &req.Date, &req.RequestType,
		&req.RequestedCheckIn, &req.RequestedCheckOut, &req.Reason,
		&req.Status, &req.ReviewedBy, &req.ReviewerName, &req.ReviewedAt, &req.ReviewNotes,
		&req.CreatedAt,
	)
	return req, err
}

func collectRequests(rows pgx.Rows) ([]regularization.Request, error) {
	defer rows.Close()

	var requests []regularization.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan regularization request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read regularization rows: %w", err)
	}
	return requests, nil
}

// Create implements regularization.RegularizationRepository.
func (r *regularizationRepository) Create(ctx context.Context, req regularization.Request) (regularization.Request, error) {
	q := database.QuerierFrom(ctx, r.db)

	req.ID = uuid.NewString()
	query := `
		INSERT INTO regularization_requests (
			id, employee_id, attendance_id, date, request_type,
			requested_check_in, requested_check_out, reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		req.ID,
		req.EmployeeID,
		req.AttendanceID,
		req.Date,
		req.RequestType,
		req.RequestedCheckIn,
		req.RequestedCheckOut,
		req.Reason,
		req.Status,
	).Scan(&req.CreatedAt)

	if err != nil {
		return regularization.Request{}, fmt.Errorf("failed to create regularization request: %w", err)
	}

	return req, nil
}

// GetByID implements regularization.RegularizationRepository.
func (r *regularizationRepository) GetByID(ctx context.Context, id string) (regularization.Request, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + regularizationColumns + `
		FROM regularization_requests r
		LEFT JOIN employees e ON e.id = r.employee_id
		LEFT JOIN employees rv ON rv.id = r.reviewed_by
		WHERE r.id = $1
	`

	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return regularization.Request{}, regularization.ErrRequestNotFound
		}
		return regularization.Request{}, fmt.Errorf("failed to get regularization request: %w", err)
	}

	return req, nil
}

// HasPendingForDate implements regularization.RegularizationRepository.
func (r *regularizationRepository) HasPendingForDate(ctx context.Context, employeeID string, date string) (bool, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM regularization_requests
			WHERE employee_id = $1
			  AND date = $2
			  AND status = 'pending'
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pending requests: %w", err)
	}

	return exists, nil
}

// UpdateReview implements regularization.RegularizationRepository.
func (r *regularizationRepository) UpdateReview(ctx context.Context, id string, status string, reviewedBy string, reviewedAt time.Time, reviewNotes *string) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE regularization_requests SET
			status = $2,
			reviewed_by = $3,
			reviewed_at = $4,
			review_notes = $5
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, status, reviewedBy, reviewedAt, reviewNotes)
	if err != nil {
		return fmt.Errorf("failed to update regularization review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return regularization.ErrRequestNotFound
	}

	return nil
}

// ListPending implements regularization.RegularizationRepository.
func (r *regularizationRepository) ListPending(ctx context.Context) ([]regularization.Request, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + regularizationColumns + `
		FROM regularization_requests r
		LEFT JOIN employees e ON e.id = r.employee_id
		LEFT JOIN employees rv ON rv.id = r.reviewed_by
		WHERE r.status = 'pending'
		ORDER BY r.created_at ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}

	return collectRequests(rows)
}

// List implements regularization.RegularizationRepository.
func (r *regularizationRepository) List(ctx context.Context, filter regularization.ListFilter) ([]regularization.Request, error) {
	q := database.QuerierFrom(ctx, r.db)

	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("r.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}

	query := `
		SELECT ` + regularizationColumns + `
		FROM regularization_requests r
		LEFT JOIN employees e ON e.id = r.employee_id
		LEFT JOIN employees rv ON rv.id = r.reviewed_by
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY r.created_at DESC LIMIT $%d", argPos)
	args = append(args, filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list regularization requests: %w", err)
	}

	return collectRequests(rows)
}

// ListByEmployee implements regularization.RegularizationRepository.
func (r *regularizationRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]regularization.Request, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + regularizationColumns + `
		FROM regularization_requests r
		LEFT JOIN employees e ON e.id = r.employee_id
		LEFT JOIN employees rv ON rv.id = r.reviewed_by
		WHERE r.employee_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list regularization requests: %w", err)
	}

	return collectRequests(rows)
}

func NewRegularizationRepository(db *database.DB) regularization.RegularizationRepository {
	return &regularizationRepository{db: db}
}
