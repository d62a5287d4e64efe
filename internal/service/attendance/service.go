package attendance

import (
	"context"
	"fmt"
	"math"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/penalty"
	"github.com/attendly/attendance-backend-go/internal/domain/policy"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// TxRunner matches database.DB.WithinTx; tests substitute a pass-through.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type AttendanceServiceImpl struct {
	tx    TxRunner
	clock *clock.Clock
	attendance.AttendanceRepository
	penalty.PenaltyRepository
	policyProvider policy.Provider
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	today := a.clock.Today()
	now := a.clock.TimeOfDay()

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance for today: %w", err)
	}
	if existing != nil {
		// A closed record is only correctable through regularization.
		if existing.CheckOut != nil {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
		}
		if existing.CheckIn != nil {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
	}

	pol, err := a.policyProvider.ActivePolicy(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	derived, err := attendance.DeriveCheckIn(pol, now)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to classify check-in: %w", err)
	}

	var rec attendance.AttendanceRecord
	if existing != nil {
		// Reuse the placeholder created by regularization or mark-absent.
		rec = *existing
	} else {
		rec = attendance.AttendanceRecord{
			EmployeeID: req.EmployeeID,
			Date:       today,
		}
	}

	checkIn := now
	rec.CheckIn = &checkIn
	rec.Status = derived.Status
	rec.IsLate = derived.IsLate
	rec.LateByMinutes = derived.LateByMinutes
	rec.BreakTotalMinutes = 0
	rec.IsOnBreak = false
	rec.CurrentBreakStart = nil
	rec.BreakPeriods = nil
	rec.Location = req.Location
	if req.Notes != nil {
		rec.Notes = req.Notes
	}

	// The record write and the lateness penalty land atomically.
	err = a.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if existing != nil {
			if err := a.AttendanceRepository.Update(txCtx, rec); err != nil {
				return fmt.Errorf("failed to update attendance record: %w", err)
			}
		} else {
			created, err := a.AttendanceRepository.Create(txCtx, rec)
			if err != nil {
				return fmt.Errorf("failed to create attendance record: %w", err)
			}
			rec = created
		}

		if derived.IsLate {
			_, err := a.PenaltyRepository.Create(txCtx, penalty.PenaltyEntry{
				EmployeeID:   rec.EmployeeID,
				AttendanceID: rec.ID,
				Date:         rec.Date,
				Type:         penalty.TypeLateArrival,
				Points:       1,
				Description:  fmt.Sprintf("Checked in at %s, %d minutes after shift start", now, derived.LateByMinutes),
			})
			if err != nil {
				return fmt.Errorf("failed to create penalty entry: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapRecordToResponse(rec), nil
}

// StartBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) StartBreak(ctx context.Context, req attendance.StartBreakRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := a.openRecordForToday(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if rec.IsOnBreak {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyOnBreak
	}

	now := a.clock.TimeOfDay()
	rec.BreakPeriods = append(rec.BreakPeriods, attendance.BreakPeriod{
		StartTime: now,
		Reason:    req.Reason,
	})
	rec.IsOnBreak = true
	rec.CurrentBreakStart = &now

	if err := a.AttendanceRepository.Update(ctx, *rec); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return mapRecordToResponse(*rec), nil
}

// EndBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) EndBreak(ctx context.Context, req attendance.EndBreakRequest) (attendance.AttendanceResponse, error) {
	rec, err := a.openRecordForToday(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := attendance.CloseOpenBreak(rec, a.clock.TimeOfDay()); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := a.AttendanceRepository.Update(ctx, *rec); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return mapRecordToResponse(*rec), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := a.openRecordForToday(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if rec.IsOnBreak {
		return attendance.AttendanceResponse{}, attendance.ErrBreakStillOpen
	}

	pol, err := a.policyProvider.ActivePolicy(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	effectiveBreak := rec.BreakTotalMinutes
	if req.BreakTimeMinutes != nil {
		effectiveBreak = *req.BreakTimeMinutes
	}

	now := a.clock.TimeOfDay()
	derived, err := attendance.DeriveCheckOut(pol, *rec.CheckIn, now, effectiveBreak, rec.Status)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	checkOut := now
	rec.CheckOut = &checkOut
	rec.Status = derived.Status
	rec.TotalHours = &derived.TotalHours
	rec.WorkingHours = &derived.WorkingHours
	rec.OvertimeHours = &derived.OvertimeHours
	rec.IsEarlyDeparture = derived.IsEarlyDeparture
	rec.EarlyByMinutes = derived.EarlyByMinutes
	if req.Notes != nil {
		rec.Notes = req.Notes
	}

	if err := a.AttendanceRepository.Update(ctx, *rec); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return mapRecordToResponse(*rec), nil
}

// MarkAbsent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAbsent(ctx context.Context, req attendance.MarkAbsentRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, req.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	if existing == nil {
		created, err := a.AttendanceRepository.Create(ctx, attendance.AttendanceRecord{
			EmployeeID: req.EmployeeID,
			Date:       req.Date,
			Status:     attendance.StatusAbsent,
			Notes:      req.Notes,
		})
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
		}
		return mapRecordToResponse(created), nil
	}

	existing.Status = attendance.StatusAbsent
	if req.Notes != nil {
		existing.Notes = req.Notes
	}
	if err := a.AttendanceRepository.Update(ctx, *existing); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return mapRecordToResponse(*existing), nil
}

// TodayStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) TodayStatus(ctx context.Context, employeeID string) (attendance.TodayStatusResponse, error) {
	today := a.clock.Today()

	rec, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.TodayStatusResponse{}, fmt.Errorf("failed to get attendance for today: %w", err)
	}

	status := attendance.TodayStatusResponse{Date: today}
	if rec == nil {
		status.CanCheckIn = true
		return status, nil
	}

	resp := mapRecordToResponse(*rec)
	status.Record = &resp
	status.HasCheckedIn = rec.CheckIn != nil
	status.IsOnBreak = rec.IsOnBreak
	status.CanCheckIn = rec.CheckIn == nil && rec.CheckOut == nil
	status.CanCheckOut = rec.CheckIn != nil && rec.CheckOut == nil && !rec.IsOnBreak
	return status, nil
}

// History implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) History(ctx context.Context, employeeID string, limit int) ([]attendance.AttendanceResponse, error) {
	if limit <= 0 {
		limit = 30
	}

	records, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance history: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec))
	}
	return responses, nil
}

// MonthlyReport implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MonthlyReport(ctx context.Context, employeeID string, month string) (attendance.MonthlyReportResponse, error) {
	if !validator.IsValidMonth(month) {
		return attendance.MonthlyReportResponse{}, validator.ValidationErrors{{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		}}
	}

	records, err := a.AttendanceRepository.ListByMonth(ctx, employeeID, month)
	if err != nil {
		return attendance.MonthlyReportResponse{}, fmt.Errorf("failed to list attendance for month: %w", err)
	}

	report := attendance.MonthlyReportResponse{
		EmployeeID: employeeID,
		Month:      month,
		Records:    make([]attendance.AttendanceResponse, 0, len(records)),
	}

	workedDays := 0
	for _, rec := range records {
		switch rec.Status {
		case attendance.StatusPresent:
			report.PresentDays++
		case attendance.StatusLate:
			report.LateDays++
		case attendance.StatusHalfDay:
			report.HalfDays++
		case attendance.StatusAbsent:
			report.AbsentDays++
		}
		if rec.TotalHours != nil {
			report.TotalHours += *rec.TotalHours
			workedDays++
		}
		if rec.OvertimeHours != nil {
			report.TotalOvertimeHours += *rec.OvertimeHours
		}
		report.Records = append(report.Records, mapRecordToResponse(rec))
	}

	report.TotalHours = round2(report.TotalHours)
	report.TotalOvertimeHours = round2(report.TotalOvertimeHours)
	if workedDays > 0 {
		report.AvgHoursPerDay = round2(report.TotalHours / float64(workedDays))
	}

	return report, nil
}

// ListAll implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAll(ctx context.Context, filter attendance.AdminAttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec))
	}
	return responses, nil
}

// openRecordForToday fetches today's record and rejects every state in
// which a break/check-out action is invalid.
func (a *AttendanceServiceImpl) openRecordForToday(ctx context.Context, employeeID string) (*attendance.AttendanceRecord, error) {
	rec, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, a.clock.Today())
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance for today: %w", err)
	}
	if rec == nil || rec.CheckIn == nil {
		return nil, attendance.ErrNotCheckedIn
	}
	if rec.CheckOut != nil {
		return nil, attendance.ErrAlreadyCheckedOut
	}
	return rec, nil
}

// mapRecordToResponse converts an AttendanceRecord entity to AttendanceResponse
func mapRecordToResponse(rec attendance.AttendanceRecord) attendance.AttendanceResponse {
	breaks := make([]attendance.BreakPeriodResponse, 0, len(rec.BreakPeriods))
	for _, p := range rec.BreakPeriods {
		breaks = append(breaks, attendance.BreakPeriodResponse{
			StartTime:       p.StartTime,
			EndTime:         p.EndTime,
			DurationMinutes: p.DurationMinutes,
			Reason:          p.Reason,
		})
	}

	return attendance.AttendanceResponse{
		ID:                rec.ID,
		EmployeeID:        rec.EmployeeID,
		EmployeeName:      rec.EmployeeName,
		Date:              rec.Date,
		CheckIn:           rec.CheckIn,
		CheckOut:          rec.CheckOut,
		Status:            rec.Status,
		IsLate:            rec.IsLate,
		LateByMinutes:     rec.LateByMinutes,
		IsEarlyDeparture:  rec.IsEarlyDeparture,
		EarlyByMinutes:    rec.EarlyByMinutes,
		BreakTotalMinutes: rec.BreakTotalMinutes,
		IsOnBreak:         rec.IsOnBreak,
		CurrentBreakStart: rec.CurrentBreakStart,
		BreakPeriods:      breaks,
		TotalHours:        rec.TotalHours,
		WorkingHours:      rec.WorkingHours,
		OvertimeHours:     rec.OvertimeHours,
		Notes:             rec.Notes,
		Location:          rec.Location,
		CreatedAt:         rec.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:         rec.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func NewAttendanceService(
	tx TxRunner,
	clk *clock.Clock,
	attendanceRepo attendance.AttendanceRepository,
	penaltyRepo penalty.PenaltyRepository,
	policyProvider policy.Provider,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                   tx,
		clock:                clk,
		AttendanceRepository: attendanceRepo,
		PenaltyRepository:    penaltyRepo,
		policyProvider:       policyProvider,
	}
}
