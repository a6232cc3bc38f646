package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-hris-suite/internal/model"
	"go-hris-suite/internal/ws"
)

type mockScheduleRepo struct {
	schedules map[uuid.UUID]*model.Schedule
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[uuid.UUID]*model.Schedule)}
}

func (m *mockScheduleRepo) Create(schedule *model.Schedule) error {
	if schedule.ID == uuid.Nil {
		schedule.ID = uuid.New()
	}
	m.schedules[schedule.ID] = schedule
	return nil
}

func (m *mockScheduleRepo) Update(schedule *model.Schedule) error {
	m.schedules[schedule.ID] = schedule
	return nil
}

func (m *mockScheduleRepo) Delete(id uuid.UUID, deletedBy string) error {
	delete(m.schedules, id)
	return nil
}

func (m *mockScheduleRepo) FindByID(id uuid.UUID) (*model.Schedule, error) {
	if schedule, ok := m.schedules[id]; ok {
		return schedule, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) FindByUserID(userID uuid.UUID) ([]model.Schedule, error) {
	var schedules []model.Schedule
	for _, schedule := range m.schedules {
		if schedule.UserID == userID {
			schedules = append(schedules, *schedule)
		}
	}
	return schedules, nil
}

func (m *mockScheduleRepo) FindAll() ([]model.Schedule, error) {
	var schedules []model.Schedule
	for _, schedule := range m.schedules {
		schedules = append(schedules, *schedule)
	}
	return schedules, nil
}

// minutesOverlap mirrors the repository's time comparison, normalizing
// overnight spans past midnight.
func minutesOverlap(aStart, aEnd string, aOvernight bool, bStart, bEnd string, bOvernight bool) bool {
	as, ae := timeStringToMinutes(aStart), timeStringToMinutes(aEnd)
	bs, be := timeStringToMinutes(bStart), timeStringToMinutes(bEnd)
	if aOvernight {
		ae += 24 * 60
	}
	if bOvernight {
		be += 24 * 60
	}
	if aOvernight || bOvernight {
		if as < be && bs < ae {
			return true
		}
		// Mirror repository.timeRangesOverlap: an overnight span also
		// occupies the early morning of the next day.
		if aOvernight && !bOvernight && bs < ae-24*60 {
			return true
		}
		if bOvernight && !aOvernight && as < be-24*60 {
			return true
		}
		return false
	}
	return as < be && bs < ae
}

func (m *mockScheduleRepo) FindOverlapping(userID uuid.UUID, startDate, endDate time.Time,
	startTime, endTime string, overnight bool, excludeID *uuid.UUID) ([]model.Schedule, error) {
	var conflicts []model.Schedule
	for _, schedule := range m.schedules {
		if schedule.UserID != userID {
			continue
		}
		if excludeID != nil && schedule.ID == *excludeID {
			continue
		}
		if schedule.StartDate.After(endDate) || schedule.EndDate.Before(startDate) {
			continue
		}
		if minutesOverlap(startTime, endTime, overnight, schedule.StartTime, schedule.EndTime, schedule.IsOvernight) {
			conflicts = append(conflicts, *schedule)
		}
	}
	return conflicts, nil
}

func (m *mockScheduleRepo) FindByDateRange(startDate, endDate time.Time) ([]model.Schedule, error) {
	var schedules []model.Schedule
	for _, schedule := range m.schedules {
		if !schedule.StartDate.After(endDate) && !schedule.EndDate.Before(startDate) {
			schedules = append(schedules, *schedule)
		}
	}
	return schedules, nil
}

func (m *mockScheduleRepo) FindByUserIDAndDateRange(userID uuid.UUID, startDate, endDate time.Time) ([]model.Schedule, error) {
	var schedules []model.Schedule
	for _, schedule := range m.schedules {
		if schedule.UserID == userID &&
			!schedule.StartDate.After(endDate) && !schedule.EndDate.Before(startDate) {
			schedules = append(schedules, *schedule)
		}
	}
	return schedules, nil
}

func newScheduleFixture(t *testing.T) (ScheduleService, *mockScheduleRepo, *model.User) {
	t.Helper()

	userRepo := newMockUserRepo()
	user := userRepo.add(&model.User{Email: "staff@campus.test", FullName: "Staff Member", IsActive: true})

	scheduleRepo := newMockScheduleRepo()
	hub := ws.NewHub()
	go hub.Run()

	return NewScheduleService(scheduleRepo, userRepo, hub), scheduleRepo, user
}

func TestIsOvernight(t *testing.T) {
	assert.False(t, isOvernight("08:00", "17:00"))
	assert.True(t, isOvernight("22:00", "06:00"))
	// Equal times are treated as overnight by the span math; the
	// services reject them before this point.
	assert.True(t, isOvernight("08:00", "08:00"))
}

func TestCreateSchedule(t *testing.T) {
	svc, _, user := newScheduleFixture(t)

	schedule, err := svc.CreateSchedule(&CreateScheduleRequest{
		UserID:    user.ID.String(),
		Title:     "Morning lectures",
		StartTime: "08:00",
		EndTime:   "12:00",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-05",
	}, "hr")
	require.NoError(t, err)
	assert.False(t, schedule.IsOvernight)
	assert.Equal(t, 5, schedule.TotalDays)

	t.Run("overlapping assignment rejected", func(t *testing.T) {
		_, err := svc.CreateSchedule(&CreateScheduleRequest{
			UserID:    user.ID.String(),
			StartTime: "11:00",
			EndTime:   "15:00",
			StartDate: "2026-09-03",
			EndDate:   "2026-09-03",
		}, "hr")
		assert.ErrorIs(t, err, ErrScheduleConflict)
	})

	t.Run("non-overlapping same day allowed", func(t *testing.T) {
		_, err := svc.CreateSchedule(&CreateScheduleRequest{
			UserID:    user.ID.String(),
			StartTime: "13:00",
			EndTime:   "17:00",
			StartDate: "2026-09-03",
			EndDate:   "2026-09-03",
		}, "hr")
		assert.NoError(t, err)
	})
}

func TestCreateScheduleValidation(t *testing.T) {
	svc, _, user := newScheduleFixture(t)

	base := func() *CreateScheduleRequest {
		return &CreateScheduleRequest{
			UserID:    user.ID.String(),
			StartTime: "08:00",
			EndTime:   "17:00",
			StartDate: "2026-09-01",
			EndDate:   "2026-09-01",
		}
	}

	t.Run("bad time format", func(t *testing.T) {
		req := base()
		req.StartTime = "8am"
		_, err := svc.CreateSchedule(req, "hr")
		assert.ErrorIs(t, err, ErrInvalidTimeFormat)
	})

	t.Run("bad date format", func(t *testing.T) {
		req := base()
		req.StartDate = "01/09/2026"
		_, err := svc.CreateSchedule(req, "hr")
		assert.ErrorIs(t, err, ErrInvalidDateFormat)
	})

	t.Run("end date before start", func(t *testing.T) {
		req := base()
		req.StartDate = "2026-09-10"
		req.EndDate = "2026-09-01"
		_, err := svc.CreateSchedule(req, "hr")
		assert.ErrorIs(t, err, ErrEndDateBeforeStart)
	})

	t.Run("equal start and end time", func(t *testing.T) {
		req := base()
		req.EndTime = req.StartTime
		_, err := svc.CreateSchedule(req, "hr")
		assert.ErrorIs(t, err, ErrSameTimeStartEnd)
	})

	t.Run("inactive assignee", func(t *testing.T) {
		inactiveRepo := newMockUserRepo()
		inactive := inactiveRepo.add(&model.User{Email: "gone@campus.test", IsActive: false})
		inactiveSvc := NewScheduleService(newMockScheduleRepo(), inactiveRepo, ws.NewHub())

		req := base()
		req.UserID = inactive.ID.String()
		_, err := inactiveSvc.CreateSchedule(req, "hr")
		assert.ErrorIs(t, err, ErrUserNotActive)
	})
}

func TestCreateOvernightSchedule(t *testing.T) {
	svc, _, user := newScheduleFixture(t)

	schedule, err := svc.CreateSchedule(&CreateScheduleRequest{
		UserID:    user.ID.String(),
		Title:     "Night duty",
		StartTime: "22:00",
		EndTime:   "06:00",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-01",
	}, "hr")
	require.NoError(t, err)
	assert.True(t, schedule.IsOvernight)

	// The early-morning tail still conflicts with a day shift.
	_, err = svc.CreateSchedule(&CreateScheduleRequest{
		UserID:    user.ID.String(),
		StartTime: "05:00",
		EndTime:   "09:00",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-01",
	}, "hr")
	assert.ErrorIs(t, err, ErrScheduleConflict)
}

func TestUpdateSchedule(t *testing.T) {
	svc, _, user := newScheduleFixture(t)

	schedule, err := svc.CreateSchedule(&CreateScheduleRequest{
		UserID:    user.ID.String(),
		StartTime: "08:00",
		EndTime:   "12:00",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-05",
	}, "hr")
	require.NoError(t, err)

	newEnd := "17:00"
	updated, err := svc.UpdateSchedule(schedule.ID, &UpdateScheduleRequest{EndTime: &newEnd}, "hr")
	require.NoError(t, err)
	assert.Equal(t, "17:00", updated.EndTime)

	_, err = svc.UpdateSchedule(uuid.New(), &UpdateScheduleRequest{EndTime: &newEnd}, "hr")
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestScheduleViewAuthorization(t *testing.T) {
	svc, _, user := newScheduleFixture(t)

	schedule, err := svc.CreateSchedule(&CreateScheduleRequest{
		UserID:    user.ID.String(),
		StartTime: "08:00",
		EndTime:   "12:00",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-01",
	}, "hr")
	require.NoError(t, err)

	// Owner sees it, a stranger without view-all does not.
	_, err = svc.GetScheduleByID(schedule.ID, user.ID.String(), false)
	assert.NoError(t, err)

	_, err = svc.GetScheduleByID(schedule.ID, uuid.New().String(), false)
	assert.ErrorIs(t, err, ErrUnauthorizedScheduleView)

	_, err = svc.GetScheduleByID(schedule.ID, uuid.New().String(), true)
	assert.NoError(t, err)

	_, err = svc.GetSchedulesByUser(user.ID, uuid.New().String(), false)
	assert.ErrorIs(t, err, ErrUnauthorizedScheduleView)
}

func TestCalculateDateRange(t *testing.T) {
	// Wednesday.
	ref := time.Date(2026, 9, 2, 15, 30, 0, 0, time.UTC)

	t.Run("daily", func(t *testing.T) {
		start, end := calculateDateRange(string(model.ViewTypeDaily), ref)
		assert.Equal(t, 2, start.Day())
		assert.Equal(t, 2, end.Day())
	})

	t.Run("weekly starts monday", func(t *testing.T) {
		start, end := calculateDateRange(string(model.ViewTypeWeekly), ref)
		assert.Equal(t, time.Monday, start.Weekday())
		assert.Equal(t, 31, start.Day()) // Aug 31
		assert.Equal(t, time.Sunday, end.Weekday())
	})

	t.Run("monthly covers the month", func(t *testing.T) {
		start, end := calculateDateRange(string(model.ViewTypeMonthly), ref)
		assert.Equal(t, 1, start.Day())
		assert.Equal(t, time.September, start.Month())
		assert.Equal(t, 30, end.Day())
	})
}
