package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hris-suite/internal/model"
	"go-hris-suite/internal/ws"
)

var testPolicy = WorkdayPolicy{Start: "08:00", Grace: 15 * time.Minute}

func newAttendanceFixture(t *testing.T) (*attendanceService, *mockAttendanceRepo, *model.User) {
	t.Helper()

	userRepo := newMockUserRepo()
	user := userRepo.add(&model.User{Email: "staff@campus.test", FullName: "Staff Member", IsActive: true})

	attendanceRepo := newMockAttendanceRepo()
	hub := ws.NewHub()
	go hub.Run()

	svc := NewAttendanceService(attendanceRepo, userRepo, hub, testPolicy).(*attendanceService)
	return svc, attendanceRepo, user
}

func TestClassifyCheckIn(t *testing.T) {
	day := func(hour, minute int) time.Time {
		return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
	}

	tests := []struct {
		name    string
		checkIn time.Time
		want    model.AttendanceStatus
	}{
		{"before start", day(7, 45), model.AttendancePresent},
		{"exactly at start", day(8, 0), model.AttendancePresent},
		{"within grace", day(8, 10), model.AttendancePresent},
		{"at grace boundary", day(8, 15), model.AttendancePresent},
		{"past grace", day(8, 16), model.AttendanceLate},
		{"mid morning", day(10, 30), model.AttendanceLate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyCheckIn(tt.checkIn, testPolicy))
		})
	}
}

func TestCheckIn(t *testing.T) {
	svc, _, user := newAttendanceFixture(t)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 8, 5, 0, 0, time.UTC) }

	record, err := svc.CheckIn(user.ID, "on site")
	require.NoError(t, err)
	assert.Equal(t, model.AttendancePresent, record.Status)
	assert.NotNil(t, record.CheckInAt)
	assert.Nil(t, record.CheckOutAt)

	_, err = svc.CheckIn(user.ID, "")
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestCheckOut(t *testing.T) {
	svc, _, user := newAttendanceFixture(t)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC) }

	_, err := svc.CheckOut(user.ID)
	assert.ErrorIs(t, err, ErrNotCheckedIn)

	_, err = svc.CheckIn(user.ID, "")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC) }
	record, err := svc.CheckOut(user.ID)
	require.NoError(t, err)
	require.NotNil(t, record.CheckOutAt)
	assert.Equal(t, 17, record.CheckOutAt.Hour())

	_, err = svc.CheckOut(user.ID)
	assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
}

func TestCountWorkdays(t *testing.T) {
	// March 2026: 31 days, starts on a Sunday, 22 weekdays.
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 22, countWorkdays(start, end))

	// A single Saturday counts zero.
	sat := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, countWorkdays(sat, sat))
}

func TestGetSummary(t *testing.T) {
	svc, repo, user := newAttendanceFixture(t)
	// Fix "today" past the period so the whole month counts.
	svc.now = func() time.Time { return time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC) }

	addRecord := func(day int, status model.AttendanceStatus) {
		require.NoError(t, repo.Create(&model.Attendance{
			UserID:   user.ID,
			WorkDate: time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
			Status:   status,
		}))
	}
	for day := 2; day <= 6; day++ { // Mon-Fri week
		addRecord(day, model.AttendancePresent)
	}
	addRecord(9, model.AttendanceLate)
	addRecord(10, model.AttendanceAbsent)

	summary, err := svc.GetSummary(user.ID, "2026-03")
	require.NoError(t, err)
	assert.Equal(t, 22, summary.WorkDays)
	assert.Equal(t, 5, summary.PresentDays)
	assert.Equal(t, 1, summary.LateDays)
	assert.Equal(t, 1, summary.AbsentDays)
	// Present and late both count as attended.
	assert.InDelta(t, float64(6)/22*100, summary.AttendanceRate, 0.01)
}

func TestMarkAbsentees(t *testing.T) {
	svc, repo, user := newAttendanceFixture(t)
	monday := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return monday }

	other := &model.User{Email: "other@campus.test", IsActive: true}
	_, err := svc.userRepo.FindByID(user.ID)
	require.NoError(t, err)
	svc.userRepo.(*mockUserRepo).add(other)

	// One user checked in, the other did not.
	_, err = svc.CheckIn(user.ID, "")
	require.NoError(t, err)

	marked, err := svc.MarkAbsentees(monday)
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	record, err := repo.FindByUserAndDate(other.ID, monday)
	require.NoError(t, err)
	assert.Equal(t, model.AttendanceAbsent, record.Status)

	// Idempotent on re-run.
	marked, err = svc.MarkAbsentees(monday)
	require.NoError(t, err)
	assert.Zero(t, marked)

	// Weekends are never marked.
	saturday := time.Date(2026, 3, 7, 18, 0, 0, 0, time.UTC)
	marked, err = svc.MarkAbsentees(saturday)
	require.NoError(t, err)
	assert.Zero(t, marked)
}

func TestGetSummaryInvalidPeriod(t *testing.T) {
	svc, _, user := newAttendanceFixture(t)

	_, err := svc.GetSummary(user.ID, "March 2026")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
