package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	a.id, a.employee_id, e.full_name, a.date, a.check_in, a.check_out, a.status,
	a.is_late, a.late_by_minutes, a.is_early_departure, a.early_by_minutes,
	a.break_total_minutes, a.is_on_break, a.current_break_start, a.break_periods,
	a.total_hours, a.working_hours, a.overtime_hours,
	a.notes, a.location, a.created_at, a.updated_at`

func scanAttendance(row pgx.Row) (attendance.AttendanceRecord, error) {
	var rec attendance.AttendanceRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.Status,
		&rec.IsLate, &rec.LateByMinutes, &rec.IsEarlyDeparture, &rec.EarlyByMinutes,
		&rec.BreakTotalMinutes, &rec.IsOnBreak, &rec.CurrentBreakStart, &rec.BreakPeriods,
		&rec.TotalHours, &rec.WorkingHours, &rec.OvertimeHours,
		&rec.Notes, &rec.Location, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func collectAttendances(rows pgx.Rows) ([]attendance.AttendanceRecord, error) {
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance rows: %w", err)
	}
	return records, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := database.QuerierFrom(ctx, a.db)

	rec.ID = uuid.NewString()
	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, check_in, check_out, status,
			is_late, late_by_minutes, is_early_departure, early_by_minutes,
			break_total_minutes, is_on_break, current_break_start, break_periods,
			total_hours, working_hours, overtime_hours, notes, location
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.Date,
		rec.CheckIn,
		rec.CheckOut,
		rec.Status,
		rec.IsLate,
		rec.LateByMinutes,
		rec.IsEarlyDeparture,
		rec.EarlyByMinutes,
		rec.BreakTotalMinutes,
		rec.IsOnBreak,
		rec.CurrentBreakStart,
		rec.BreakPeriods,
		rec.TotalHours,
		rec.WorkingHours,
		rec.OvertimeHours,
		rec.Notes,
		rec.Location,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// Update implements attendance.AttendanceRepository. The full mutable column
// set is rewritten in one statement, so readers only ever see a record before
// or after a transition.
func (a *attendanceRepository) Update(ctx context.Context, rec attendance.AttendanceRecord) error {
	q := database.QuerierFrom(ctx, a.db)

	query := `
		UPDATE attendance_records SET
			check_in = $2,
			check_out = $3,
			status = $4,
			is_late = $5,
			late_by_minutes = $6,
			is_early_departure = $7,
			early_by_minutes = $8,
			break_total_minutes = $9,
			is_on_break = $10,
			current_break_start = $11,
			break_periods = $12,
			total_hours = $13,
			working_hours = $14,
			overtime_hours = $15,
			notes = $16,
			location = $17,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		rec.ID,
		rec.CheckIn,
		rec.CheckOut,
		rec.Status,
		rec.IsLate,
		rec.LateByMinutes,
		rec.IsEarlyDeparture,
		rec.EarlyByMinutes,
		rec.BreakTotalMinutes,
		rec.IsOnBreak,
		rec.CurrentBreakStart,
		rec.BreakPeriods,
		rec.TotalHours,
		rec.WorkingHours,
		rec.OvertimeHours,
		rec.Notes,
		rec.Location,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.AttendanceRecord, error) {
	q := database.QuerierFrom(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	rec, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.AttendanceRecord{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*attendance.AttendanceRecord, error) {
	q := database.QuerierFrom(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1
		  AND a.date = $2
	`

	rec, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no record for the date yet
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &rec, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]attendance.AttendanceRecord, error) {
	q := database.QuerierFrom(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1
		ORDER BY a.date DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	return collectAttendances(rows)
}

// ListByMonth implements attendance.AttendanceRepository. Dates are stored as
// "YYYY-MM-DD" text, so a month is a plain prefix match.
func (a *attendanceRepository) ListByMonth(ctx context.Context, employeeID string, month string) ([]attendance.AttendanceRecord, error) {
	q := database.QuerierFrom(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1
		  AND a.date LIKE $2 || '-%'
		ORDER BY a.date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for month: %w", err)
	}

	return collectAttendances(rows)
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AdminAttendanceFilter) ([]attendance.AttendanceRecord, error) {
	q := database.QuerierFrom(ctx, a.db)

	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.Date != nil && *filter.Date != "" {
		conditions = append(conditions, fmt.Sprintf("a.date = $%d", argPos))
		args = append(args, *filter.Date)
		argPos++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d", argPos)
	args = append(args, filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	return collectAttendances(rows)
}

// ListOpenBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenBefore(ctx context.Context, date string) ([]attendance.AttendanceRecord, error) {
	q := database.QuerierFrom(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.date < $1
		  AND a.check_in IS NOT NULL
		  AND a.check_out IS NULL
		ORDER BY a.date ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendance records: %w", err)
	}

	return collectAttendances(rows)
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
