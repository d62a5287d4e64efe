package attendance

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/penalty"
	"github.com/attendly/attendance-backend-go/internal/domain/policy"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAttendanceRepo struct {
	byKey map[string]*attendance.AttendanceRecord // employeeID|date
	byID  map[string]*attendance.AttendanceRecord
	seq   int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		byKey: make(map[string]*attendance.AttendanceRecord),
		byID:  make(map[string]*attendance.AttendanceRecord),
	}
}

func key(employeeID, date string) string { return employeeID + "|" + date }

func (f *fakeAttendanceRepo) Create(_ context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	f.seq++
	rec.ID = fmt.Sprintf("att-%d", f.seq)
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	stored := rec
	f.byKey[key(rec.EmployeeID, rec.Date)] = &stored
	f.byID[rec.ID] = &stored
	return rec, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, rec attendance.AttendanceRecord) error {
	if _, ok := f.byID[rec.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	rec.UpdatedAt = time.Now()
	stored := rec
	f.byKey[key(rec.EmployeeID, rec.Date)] = &stored
	f.byID[rec.ID] = &stored
	return nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.AttendanceRecord, error) {
	rec, ok := f.byID[id]
	if !ok {
		return attendance.AttendanceRecord{}, attendance.ErrAttendanceNotFound
	}
	return *rec, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID, date string) (*attendance.AttendanceRecord, error) {
	rec, ok := f.byKey[key(employeeID, date)]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeAttendanceRepo) ListByEmployee(_ context.Context, employeeID string, limit int) ([]attendance.AttendanceRecord, error) {
	var out []attendance.AttendanceRecord
	for _, rec := range f.byID {
		if rec.EmployeeID == employeeID {
			out = append(out, *rec)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByMonth(_ context.Context, employeeID, month string) ([]attendance.AttendanceRecord, error) {
	var out []attendance.AttendanceRecord
	for _, rec := range f.byID {
		if rec.EmployeeID == employeeID && strings.HasPrefix(rec.Date, month+"-") {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, filter attendance.AdminAttendanceFilter) ([]attendance.AttendanceRecord, error) {
	var out []attendance.AttendanceRecord
	for _, rec := range f.byID {
		if filter.Date != nil && *filter.Date != "" && rec.Date != *filter.Date {
			continue
		}
		if filter.Status != nil && *filter.Status != "" && rec.Status != *filter.Status {
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListOpenBefore(_ context.Context, date string) ([]attendance.AttendanceRecord, error) {
	var out []attendance.AttendanceRecord
	for _, rec := range f.byID {
		if rec.Date < date && rec.CheckIn != nil && rec.CheckOut == nil {
			out = append(out, *rec)
		}
	}
	return out, nil
}

type fakePenaltyRepo struct {
	entries []penalty.PenaltyEntry
}

func (f *fakePenaltyRepo) Create(_ context.Context, entry penalty.PenaltyEntry) (penalty.PenaltyEntry, error) {
	entry.ID = fmt.Sprintf("pen-%d", len(f.entries)+1)
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakePenaltyRepo) ListByEmployee(_ context.Context, employeeID string, limit int) ([]penalty.PenaltyEntry, error) {
	var out []penalty.PenaltyEntry
	for _, e := range f.entries {
		if e.EmployeeID == employeeID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakePenaltyRepo) PointsByType(_ context.Context, employeeID string, month *string) (map[string]int, error) {
	points := make(map[string]int)
	for _, e := range f.entries {
		if e.EmployeeID != employeeID {
			continue
		}
		if month != nil && !strings.HasPrefix(e.Date, *month+"-") {
			continue
		}
		points[e.Type] += e.Points
	}
	return points, nil
}

type staticPolicyProvider struct {
	policy policy.ShiftPolicy
}

func (p *staticPolicyProvider) ActivePolicy(context.Context) (policy.ShiftPolicy, error) {
	return p.policy, nil
}

// testEnv wires the service against fakes with a movable wall clock.
type testEnv struct {
	svc       attendance.AttendanceService
	repo      *fakeAttendanceRepo
	penalties *fakePenaltyRepo
	now       *time.Time
}

func (e *testEnv) setTime(hhmm string) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(err)
	}
	*e.now = time.Date(2024, 6, 10, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	clk, err := clock.NewAt("UTC", func() time.Time { return now })
	require.NoError(t, err)

	repo := newFakeAttendanceRepo()
	penalties := &fakePenaltyRepo{}
	provider := &staticPolicyProvider{policy: policy.ShiftPolicy{
		StartTime:          "09:00",
		EndTime:            "18:00",
		GracePeriodMinutes: 15,
		HalfDayHours:       4,
		FullDayHours:       8,
	}}

	return &testEnv{
		svc:       NewAttendanceService(passthroughTx{}, clk, repo, penalties, provider),
		repo:      repo,
		penalties: penalties,
		now:       &now,
	}
}

func TestCheckIn_OnTime(t *testing.T) {
	env := newTestEnv(t)
	env.setTime("09:10")

	resp, err := env.svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	assert.Equal(t, "2024-06-10", resp.Date)
	require.NotNil(t, resp.CheckIn)
	assert.Equal(t, "09:10", *resp.CheckIn)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.False(t, resp.IsLate)
	assert.Empty(t, env.penalties.entries)
}

func TestCheckIn_LateAppendsPenalty(t *testing.T) {
	env := newTestEnv(t)
	env.setTime("09:30")

	resp, err := env.svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusLate, resp.Status)
	assert.True(t, resp.IsLate)
	assert.Equal(t, 30, resp.LateByMinutes)

	require.Len(t, env.penalties.entries, 1)
	entry := env.penalties.entries[0]
	assert.Equal(t, penalty.TypeLateArrival, entry.Type)
	assert.Equal(t, 1, entry.Points)
	assert.Equal(t, resp.ID, entry.AttendanceID)
	assert.Equal(t, "2024-06-10", entry.Date)
}

func TestCheckIn_Twice(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	_, err = env.svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckIn_AfterCheckOut(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	env.setTime("18:00")
	_, err = env.svc.CheckOut(context.Background(), attendance.CheckOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	_, err = env.svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckIn_ReusesPlaceholderRecord(t *testing.T) {
	env := newTestEnv(t)

	// A regularization placeholder for today: absent, no check-in yet.
	placeholder, err := env.repo.Create(context.Background(), attendance.AttendanceRecord{
		EmployeeID: "emp-1",
		Date:       "2024-06-10",
		Status:     attendance.StatusAbsent,
	})
	require.NoError(t, err)

	resp, err := env.svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	assert.Equal(t, placeholder.ID, resp.ID)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Len(t, env.repo.byID, 1)
}

func TestBreakLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	env.setTime("12:00")
	resp, err := env.svc.StartBreak(ctx, attendance.StartBreakRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.True(t, resp.IsOnBreak)
	require.NotNil(t, resp.CurrentBreakStart)
	assert.Equal(t, "12:00", *resp.CurrentBreakStart)

	_, err = env.svc.StartBreak(ctx, attendance.StartBreakRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyOnBreak)

	env.setTime("12:45")
	resp, err = env.svc.EndBreak(ctx, attendance.EndBreakRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.False(t, resp.IsOnBreak)
	assert.Nil(t, resp.CurrentBreakStart)
	assert.Equal(t, 45, resp.BreakTotalMinutes)
	require.Len(t, resp.BreakPeriods, 1)
	assert.Equal(t, 45, *resp.BreakPeriods[0].DurationMinutes)

	_, err = env.svc.EndBreak(ctx, attendance.EndBreakRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrNotOnBreak)
}

func TestStartBreak_NotCheckedIn(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.StartBreak(context.Background(), attendance.StartBreakRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_UsesBreakLedger(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	env.setTime("12:00")
	_, err = env.svc.StartBreak(ctx, attendance.StartBreakRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	env.setTime("13:00")
	_, err = env.svc.EndBreak(ctx, attendance.EndBreakRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	env.setTime("18:00")
	resp, err := env.svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	require.NotNil(t, resp.TotalHours)
	assert.Equal(t, 9.0, *resp.TotalHours)
	assert.Equal(t, 8.0, *resp.WorkingHours)
	assert.Equal(t, 0.0, *resp.OvertimeHours)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.False(t, resp.IsEarlyDeparture)
}

func TestCheckOut_BreakOverride(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	env.setTime("18:00")
	override := 30
	resp, err := env.svc.CheckOut(ctx, attendance.CheckOutRequest{
		EmployeeID:       "emp-1",
		BreakTimeMinutes: &override,
	})
	require.NoError(t, err)

	assert.Equal(t, 9.0, *resp.TotalHours)
	assert.Equal(t, 8.5, *resp.WorkingHours)
	assert.Equal(t, 0.5, *resp.OvertimeHours)
}

func TestCheckOut_WhileOnBreak(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	env.setTime("12:00")
	_, err = env.svc.StartBreak(ctx, attendance.StartBreakRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	_, err = env.svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrBreakStillOpen)
}

func TestCheckOut_Twice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	env.setTime("18:00")
	_, err = env.svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	_, err = env.svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckOut_NotCheckedIn(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CheckOut(context.Background(), attendance.CheckOutRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestMarkAbsent_CreatesAndPatches(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	notes := "no show"
	resp, err := env.svc.MarkAbsent(ctx, attendance.MarkAbsentRequest{
		EmployeeID: "emp-1",
		Date:       "2024-06-03",
		Notes:      &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, resp.Status)
	assert.Equal(t, "no show", *resp.Notes)

	// Second call patches the same record instead of creating another.
	resp, err = env.svc.MarkAbsent(ctx, attendance.MarkAbsentRequest{
		EmployeeID: "emp-1",
		Date:       "2024-06-03",
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, resp.Status)
	assert.Len(t, env.repo.byID, 1)
}

func TestTodayStatus_Transitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	status, err := env.svc.TodayStatus(ctx, "emp-1")
	require.NoError(t, err)
	assert.True(t, status.CanCheckIn)
	assert.False(t, status.HasCheckedIn)
	assert.Nil(t, status.Record)

	_, err = env.svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	status, err = env.svc.TodayStatus(ctx, "emp-1")
	require.NoError(t, err)
	assert.True(t, status.HasCheckedIn)
	assert.False(t, status.CanCheckIn)
	assert.True(t, status.CanCheckOut)
	require.NotNil(t, status.Record)

	env.setTime("12:00")
	_, err = env.svc.StartBreak(ctx, attendance.StartBreakRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	status, err = env.svc.TodayStatus(ctx, "emp-1")
	require.NoError(t, err)
	assert.True(t, status.IsOnBreak)
	assert.False(t, status.CanCheckOut)

	env.setTime("12:30")
	_, err = env.svc.EndBreak(ctx, attendance.EndBreakRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	env.setTime("18:00")
	_, err = env.svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	status, err = env.svc.TodayStatus(ctx, "emp-1")
	require.NoError(t, err)
	assert.False(t, status.CanCheckIn)
	assert.False(t, status.CanCheckOut)
}

func TestMonthlyReport_Aggregates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	hours := func(v float64) *float64 { return &v }
	seed := []attendance.AttendanceRecord{
		{EmployeeID: "emp-1", Date: "2024-06-03", Status: attendance.StatusPresent, TotalHours: hours(9), OvertimeHours: hours(1)},
		{EmployeeID: "emp-1", Date: "2024-06-04", Status: attendance.StatusLate, TotalHours: hours(8), OvertimeHours: hours(0)},
		{EmployeeID: "emp-1", Date: "2024-06-05", Status: attendance.StatusHalfDay, TotalHours: hours(3.5), OvertimeHours: hours(0)},
		{EmployeeID: "emp-1", Date: "2024-06-06", Status: attendance.StatusAbsent},
		{EmployeeID: "emp-2", Date: "2024-06-03", Status: attendance.StatusPresent, TotalHours: hours(8)},
		{EmployeeID: "emp-1", Date: "2024-05-31", Status: attendance.StatusPresent, TotalHours: hours(8)},
	}
	for _, rec := range seed {
		_, err := env.repo.Create(ctx, rec)
		require.NoError(t, err)
	}

	report, err := env.svc.MonthlyReport(ctx, "emp-1", "2024-06")
	require.NoError(t, err)

	assert.Equal(t, 1, report.PresentDays)
	assert.Equal(t, 1, report.LateDays)
	assert.Equal(t, 1, report.HalfDays)
	assert.Equal(t, 1, report.AbsentDays)
	assert.Equal(t, 20.5, report.TotalHours)
	assert.Equal(t, 1.0, report.TotalOvertimeHours)
	// Averaged over the three days that actually have hours.
	assert.Equal(t, 6.83, report.AvgHoursPerDay)
	assert.Len(t, report.Records, 4)
}

func TestMonthlyReport_InvalidMonth(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.MonthlyReport(context.Background(), "emp-1", "June 2024")
	assert.Error(t, err)
}
