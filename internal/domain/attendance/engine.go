package attendance

import (
	"math"

	"github.com/attendly/attendance-backend-go/internal/domain/policy"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
)

// Check-out earlier than this many minutes before the policy end time
// counts as an early departure.
const earlyDepartureWindowMinutes = 15

// CheckInDerivation is the result of classifying a check-in time against
// the active shift policy.
type CheckInDerivation struct {
	Status        string
	IsLate        bool
	LateByMinutes int
}

// DeriveCheckIn classifies checkIn ("HH:MM") against the policy start time
// plus grace period. Lateness is measured from the scheduled start, not
// from the end of the grace window.
func DeriveCheckIn(p policy.ShiftPolicy, checkIn string) (CheckInDerivation, error) {
	inMin, err := clock.ToMinutes(checkIn)
	if err != nil {
		return CheckInDerivation{}, err
	}
	startMin, err := clock.ToMinutes(p.StartTime)
	if err != nil {
		return CheckInDerivation{}, err
	}

	d := CheckInDerivation{Status: StatusPresent}
	if inMin > startMin+p.GracePeriodMinutes {
		d.Status = StatusLate
		d.IsLate = true
		d.LateByMinutes = inMin - startMin
	}
	return d, nil
}

// CheckOutDerivation holds every field recomputed at check-out.
type CheckOutDerivation struct {
	TotalHours       float64
	WorkingHours     float64
	OvertimeHours    float64
	Status           string
	IsEarlyDeparture bool
	EarlyByMinutes   int
}

// DeriveCheckOut computes the derived fields for a completed day.
// breakMinutes is the effective break total (an explicit override at
// check-out, otherwise the record's accumulated ledger total).
// currentStatus is the status set at check-in; it is kept for working
// hours between the half-day and full-day thresholds.
//
// Overnight shifts are not supported: a check-out whose minute-of-day
// precedes the check-in's fails with ErrCheckOutBeforeCheckIn.
func DeriveCheckOut(p policy.ShiftPolicy, checkIn, checkOut string, breakMinutes int, currentStatus string) (CheckOutDerivation, error) {
	totalMin, err := clock.MinutesBetween(checkIn, checkOut)
	if err != nil {
		return CheckOutDerivation{}, err
	}
	if totalMin < 0 {
		return CheckOutDerivation{}, ErrCheckOutBeforeCheckIn
	}

	workMin := totalMin - breakMinutes
	totalHours := float64(totalMin) / 60
	workingHours := float64(workMin) / 60

	d := CheckOutDerivation{
		TotalHours:   round2(totalHours),
		WorkingHours: round2(workingHours),
	}

	if overtime := workingHours - p.FullDayHours; overtime > 0 {
		d.OvertimeHours = round2(overtime)
	}

	switch {
	case workingHours < p.HalfDayHours:
		d.Status = StatusHalfDay
	case workingHours < p.FullDayHours:
		d.Status = currentStatus
	default:
		d.Status = StatusPresent
	}

	outMin, err := clock.ToMinutes(checkOut)
	if err != nil {
		return CheckOutDerivation{}, err
	}
	endMin, err := clock.ToMinutes(p.EndTime)
	if err != nil {
		return CheckOutDerivation{}, err
	}
	if outMin < endMin-earlyDepartureWindowMinutes {
		d.IsEarlyDeparture = true
		d.EarlyByMinutes = endMin - outMin
	}

	return d, nil
}

// DeriveHours recomputes total and working hours from a check-in/check-out
// pair and a break total. Regularization approval uses this after applying
// the requested time overrides, with the same minute-difference formula as
// check-out.
func DeriveHours(checkIn, checkOut string, breakMinutes int) (totalHours, workingHours float64, err error) {
	totalMin, err := clock.MinutesBetween(checkIn, checkOut)
	if err != nil {
		return 0, 0, err
	}
	if totalMin < 0 {
		return 0, 0, ErrCheckOutBeforeCheckIn
	}
	return round2(float64(totalMin) / 60), round2(float64(totalMin-breakMinutes) / 60), nil
}

// CloseOpenBreak closes the record's open break period at endTime ("HH:MM")
// and recomputes the break total as the sum of all closed period durations.
func CloseOpenBreak(rec *AttendanceRecord, endTime string) error {
	if !rec.IsOnBreak || rec.CurrentBreakStart == nil {
		return ErrNotOnBreak
	}

	var open *BreakPeriod
	for i := len(rec.BreakPeriods) - 1; i >= 0; i-- {
		if rec.BreakPeriods[i].EndTime == nil {
			open = &rec.BreakPeriods[i]
			break
		}
	}
	if open == nil {
		return ErrNotOnBreak
	}

	duration, err := clock.MinutesBetween(open.StartTime, endTime)
	if err != nil {
		return err
	}
	end := endTime
	open.EndTime = &end
	open.DurationMinutes = &duration

	total := 0
	for _, p := range rec.BreakPeriods {
		if p.DurationMinutes != nil {
			total += *p.DurationMinutes
		}
	}
	rec.BreakTotalMinutes = total
	rec.IsOnBreak = false
	rec.CurrentBreakStart = nil
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
