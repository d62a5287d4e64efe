package policy

import "time"

// ShiftPolicy is the organization-wide shift configuration: expected start
// and end wall-clock times plus the thresholds that classify a day.
type ShiftPolicy struct {
	ID                 string
	Name               string
	StartTime          string // "HH:MM"
	EndTime            string // "HH:MM"
	GracePeriodMinutes int
	HalfDayHours       float64
	FullDayHours       float64
	IsDefault          bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Fallback returns the built-in policy used when no default policy row is
// configured: 09:00-18:00, 15 minute grace, 4h half day, 8h full day.
func Fallback() ShiftPolicy {
	return ShiftPolicy{
		Name:               "default",
		StartTime:          "09:00",
		EndTime:            "18:00",
		GracePeriodMinutes: 15,
		HalfDayHours:       4,
		FullDayHours:       8,
	}
}
