package penalty

import "time"

// Infraction types. The engine only ever emits late-arrival entries; the
// remaining types exist for ledger entries written by outside tooling and
// are carried through aggregation unchanged.
const (
	TypeLateArrival    = "late-arrival"
	TypeEarlyDeparture = "early-departure"
	TypeAbsent         = "absent"
	TypeHalfDay        = "half-day"
)

var ValidTypes = []string{TypeLateArrival, TypeEarlyDeparture, TypeAbsent, TypeHalfDay}

// PenaltyEntry is one immutable row in the append-only penalty ledger.
type PenaltyEntry struct {
	ID           string
	EmployeeID   string
	AttendanceID string
	Date         string // "YYYY-MM-DD"
	Type         string
	Points       int
	Description  string
	CreatedAt    time.Time
}
