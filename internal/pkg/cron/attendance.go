package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/policy"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
)

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	policyProvider policy.Provider
	clock          *clock.Clock
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	policyProvider policy.Provider,
	clk *clock.Clock,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		policyProvider: policyProvider,
		clock:          clk,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_open_sessions", 1*time.Hour, j.AutoCloseOpenSessions)
}

// AutoCloseOpenSessions closes records from past dates that have a check-in
// but no check-out, using the policy end time as the effective check-out.
func (j *AttendanceJobs) AutoCloseOpenSessions(ctx context.Context) error {
	// Only run at organization-local midnight (00:00-00:59)
	if j.clock.Now().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting auto-close open sessions job")

	open, err := j.attendanceRepo.ListOpenBefore(ctx, j.clock.Today())
	if err != nil {
		return fmt.Errorf("failed to list open sessions: %w", err)
	}

	if len(open) == 0 {
		slog.Info("Cron: No open sessions found")
		return nil
	}

	pol, err := j.policyProvider.ActivePolicy(ctx)
	if err != nil {
		return err
	}

	closedCount := 0
	for _, rec := range open {
		// A break left running is cut off at the policy end too.
		if rec.IsOnBreak {
			if err := attendance.CloseOpenBreak(&rec, pol.EndTime); err != nil {
				slog.Error("Cron: Failed to close open break",
					"attendance_id", rec.ID,
					"employee_id", rec.EmployeeID,
					"error", err)
				continue
			}
		}

		derived, err := attendance.DeriveCheckOut(pol, *rec.CheckIn, pol.EndTime, rec.BreakTotalMinutes, rec.Status)
		if err != nil {
			slog.Error("Cron: Failed to derive auto-close checkout",
				"attendance_id", rec.ID,
				"employee_id", rec.EmployeeID,
				"error", err)
			continue
		}

		endTime := pol.EndTime
		rec.CheckOut = &endTime
		rec.Status = derived.Status
		rec.TotalHours = &derived.TotalHours
		rec.WorkingHours = &derived.WorkingHours
		rec.OvertimeHours = &derived.OvertimeHours
		rec.IsEarlyDeparture = derived.IsEarlyDeparture
		rec.EarlyByMinutes = derived.EarlyByMinutes

		note := fmt.Sprintf("Auto-closed at shift end %s: no check-out recorded for %s", pol.EndTime, rec.Date)
		if rec.Notes != nil && *rec.Notes != "" {
			note = *rec.Notes + "; " + note
		}
		rec.Notes = &note

		if err := j.attendanceRepo.Update(ctx, rec); err != nil {
			slog.Error("Cron: Failed to auto-close attendance",
				"attendance_id", rec.ID,
				"employee_id", rec.EmployeeID,
				"error", err)
			continue
		}

		closedCount++
	}

	slog.Info("Cron: Auto-closed open sessions", "count", closedCount)
	return nil
}
