// Package clock resolves "today" and wall-clock times in the single
// organization timezone and converts "HH:MM" strings to minute-of-day
// integers. Every lateness/overtime comparison in the engine runs on
// minutes produced here.
package clock

import (
	"fmt"
	"time"
)

type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New builds a Clock for the given IANA timezone name.
func New(timezone string) (*Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// NewAt is New with an injected time source, used by tests and the cron
// jobs to pin "now".
func NewAt(timezone string, now func() time.Time) (*Clock, error) {
	c, err := New(timezone)
	if err != nil {
		return nil, err
	}
	c.now = now
	return c, nil
}

func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns the organization-local calendar date as "YYYY-MM-DD".
func (c *Clock) Today() string {
	return c.Now().Format("2006-01-02")
}

// TimeOfDay returns the organization-local wall clock as "HH:MM".
func (c *Clock) TimeOfDay() string {
	return c.Now().Format("15:04")
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

// ToMinutes converts an "HH:MM" string to minutes since midnight.
func ToMinutes(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", hhmm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesBetween returns to − from in minutes of the same civil day. The
// result is negative when to precedes from; callers decide whether that is
// an error.
func MinutesBetween(from, to string) (int, error) {
	fromMin, err := ToMinutes(from)
	if err != nil {
		return 0, err
	}
	toMin, err := ToMinutes(to)
	if err != nil {
		return 0, err
	}
	return toMin - fromMin, nil
}
