package attendance

import (
	"testing"

	"github.com/attendly/attendance-backend-go/internal/domain/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() policy.ShiftPolicy {
	return policy.ShiftPolicy{
		StartTime:          "09:00",
		EndTime:            "18:00",
		GracePeriodMinutes: 15,
		HalfDayHours:       4,
		FullDayHours:       8,
	}
}

func TestDeriveCheckIn_WithinGrace(t *testing.T) {
	cases := []string{"08:30", "09:00", "09:10", "09:15"}
	for _, in := range cases {
		d, err := DeriveCheckIn(testPolicy(), in)
		require.NoError(t, err, "check-in %s", in)
		assert.False(t, d.IsLate, "check-in %s", in)
		assert.Equal(t, 0, d.LateByMinutes, "check-in %s", in)
		assert.Equal(t, StatusPresent, d.Status, "check-in %s", in)
	}
}

func TestDeriveCheckIn_Late(t *testing.T) {
	cases := []struct {
		in     string
		lateBy int
	}{
		{"09:16", 16}, // first minute past the grace window
		{"09:20", 20},
		{"11:00", 120},
	}
	for _, c := range cases {
		d, err := DeriveCheckIn(testPolicy(), c.in)
		require.NoError(t, err, "check-in %s", c.in)
		assert.True(t, d.IsLate, "check-in %s", c.in)
		// measured from the scheduled start, not the grace boundary
		assert.Equal(t, c.lateBy, d.LateByMinutes, "check-in %s", c.in)
		assert.Equal(t, StatusLate, d.Status, "check-in %s", c.in)
	}
}

func TestDeriveCheckIn_InvalidTime(t *testing.T) {
	_, err := DeriveCheckIn(testPolicy(), "9am")
	assert.Error(t, err)
}

func TestDeriveCheckOut_HalfDay(t *testing.T) {
	// Late check-in 09:20, checkout 13:00 with an explicit zero break:
	// 220 worked minutes is under the 4h half-day threshold.
	d, err := DeriveCheckOut(testPolicy(), "09:20", "13:00", 0, StatusLate)
	require.NoError(t, err)

	assert.Equal(t, 3.67, d.TotalHours)
	assert.Equal(t, 3.67, d.WorkingHours)
	assert.Equal(t, float64(0), d.OvertimeHours)
	assert.Equal(t, StatusHalfDay, d.Status)
	assert.True(t, d.IsEarlyDeparture)
	assert.Equal(t, 300, d.EarlyByMinutes)
}

func TestDeriveCheckOut_FullDayWithOvertime(t *testing.T) {
	d, err := DeriveCheckOut(testPolicy(), "08:55", "18:30", 60, StatusPresent)
	require.NoError(t, err)

	assert.Equal(t, 9.58, d.TotalHours)
	assert.Equal(t, 8.58, d.WorkingHours)
	assert.Equal(t, 0.58, d.OvertimeHours)
	assert.Equal(t, StatusPresent, d.Status)
	assert.False(t, d.IsEarlyDeparture)
}

func TestDeriveCheckOut_KeepsLateStatusBetweenThresholds(t *testing.T) {
	// 6 worked hours: above half-day, below full-day, so the check-in
	// classification survives.
	d, err := DeriveCheckOut(testPolicy(), "09:30", "15:30", 0, StatusLate)
	require.NoError(t, err)
	assert.Equal(t, StatusLate, d.Status)

	d, err = DeriveCheckOut(testPolicy(), "09:00", "15:00", 0, StatusPresent)
	require.NoError(t, err)
	assert.Equal(t, StatusPresent, d.Status)
}

func TestDeriveCheckOut_EarlyDepartureBoundary(t *testing.T) {
	// The early-departure window is 15 minutes before the policy end.
	d, err := DeriveCheckOut(testPolicy(), "09:00", "17:45", 0, StatusPresent)
	require.NoError(t, err)
	assert.False(t, d.IsEarlyDeparture)

	d, err = DeriveCheckOut(testPolicy(), "09:00", "17:44", 0, StatusPresent)
	require.NoError(t, err)
	assert.True(t, d.IsEarlyDeparture)
	assert.Equal(t, 16, d.EarlyByMinutes)
}

func TestDeriveCheckOut_BeforeCheckInRejected(t *testing.T) {
	_, err := DeriveCheckOut(testPolicy(), "18:00", "09:00", 0, StatusPresent)
	assert.ErrorIs(t, err, ErrCheckOutBeforeCheckIn)
}

func TestDeriveCheckOut_WorkingEqualsTotalMinusBreak(t *testing.T) {
	cases := []struct {
		in, out string
		brk     int
	}{
		{"09:00", "18:00", 0},
		{"09:00", "18:00", 45},
		{"08:30", "17:15", 90},
		{"10:00", "14:00", 30},
	}
	for _, c := range cases {
		d, err := DeriveCheckOut(testPolicy(), c.in, c.out, c.brk, StatusPresent)
		require.NoError(t, err)
		assert.InDelta(t, d.TotalHours-float64(c.brk)/60, d.WorkingHours, 0.01,
			"%s-%s break %d", c.in, c.out, c.brk)
	}
}

func TestDeriveHours(t *testing.T) {
	total, working, err := DeriveHours("09:00", "17:30", 30)
	require.NoError(t, err)
	assert.Equal(t, 8.5, total)
	assert.Equal(t, 8.0, working)

	_, _, err = DeriveHours("17:00", "09:00", 0)
	assert.ErrorIs(t, err, ErrCheckOutBeforeCheckIn)
}

func TestCloseOpenBreak(t *testing.T) {
	start := "12:00"
	rec := &AttendanceRecord{
		IsOnBreak:         true,
		CurrentBreakStart: &start,
		BreakPeriods:      []BreakPeriod{{StartTime: start}},
	}

	require.NoError(t, CloseOpenBreak(rec, "12:45"))

	assert.False(t, rec.IsOnBreak)
	assert.Nil(t, rec.CurrentBreakStart)
	require.Len(t, rec.BreakPeriods, 1)
	require.NotNil(t, rec.BreakPeriods[0].DurationMinutes)
	assert.Equal(t, 45, *rec.BreakPeriods[0].DurationMinutes)
	assert.Equal(t, "12:45", *rec.BreakPeriods[0].EndTime)
	assert.Equal(t, 45, rec.BreakTotalMinutes)
}

func TestCloseOpenBreak_SumsSequentialCycles(t *testing.T) {
	rec := &AttendanceRecord{}

	cycles := []struct {
		start, end string
		duration   int
	}{
		{"10:00", "10:10", 10},
		{"12:00", "12:30", 30},
		{"15:00", "15:05", 5},
	}

	total := 0
	for _, c := range cycles {
		start := c.start
		rec.BreakPeriods = append(rec.BreakPeriods, BreakPeriod{StartTime: start})
		rec.IsOnBreak = true
		rec.CurrentBreakStart = &start

		require.NoError(t, CloseOpenBreak(rec, c.end))
		total += c.duration
		assert.Equal(t, total, rec.BreakTotalMinutes)
	}
}

func TestCloseOpenBreak_NotOnBreak(t *testing.T) {
	rec := &AttendanceRecord{}
	assert.ErrorIs(t, CloseOpenBreak(rec, "12:00"), ErrNotOnBreak)
}
