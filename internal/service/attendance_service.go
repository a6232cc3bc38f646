package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"go-hris-suite/internal/model"
	"go-hris-suite/internal/repository"
	"go-hris-suite/internal/ws"
)

var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNotCheckedIn      = errors.New("no check-in found for today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrInvalidPeriod     = errors.New("invalid period format, use YYYY-MM")
)

type AttendanceService interface {
	CheckIn(userID uuid.UUID, note string) (*model.Attendance, error)
	CheckOut(userID uuid.UUID) (*model.Attendance, error)
	GetUserAttendance(userID uuid.UUID, period string) ([]model.Attendance, error)
	GetSummary(userID uuid.UUID, period string) (*model.AttendanceSummary, error)
	GetDailyOverview(date time.Time) ([]model.Attendance, error)
	MarkAbsentees(date time.Time) (int, error)
}

// WorkdayPolicy drives late/absent classification.
type WorkdayPolicy struct {
	// Start is the workday start in HH:MM.
	Start string
	// Grace is how far past Start a check-in still counts as present.
	Grace time.Duration
}

type attendanceService struct {
	attendanceRepo repository.AttendanceRepository
	userRepo       repository.UserRepository
	wsHub          *ws.Hub
	policy         WorkdayPolicy
	now            func() time.Time
}

func NewAttendanceService(attendanceRepo repository.AttendanceRepository, userRepo repository.UserRepository,
	hub *ws.Hub, policy WorkdayPolicy) AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		wsHub:          hub,
		policy:         policy,
		now:            time.Now,
	}
}

// classifyCheckIn decides present vs late for a check-in time.
func classifyCheckIn(checkIn time.Time, policy WorkdayPolicy) model.AttendanceStatus {
	startMinutes := timeStringToMinutes(policy.Start)
	deadline := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(),
		startMinutes/60, startMinutes%60, 0, 0, checkIn.Location()).
		Add(policy.Grace)

	if checkIn.After(deadline) {
		return model.AttendanceLate
	}
	return model.AttendancePresent
}

func timeStringToMinutes(timeStr string) int {
	var hours, minutes int
	if len(timeStr) >= 5 {
		hours = int(timeStr[0]-'0')*10 + int(timeStr[1]-'0')
		minutes = int(timeStr[3]-'0')*10 + int(timeStr[4]-'0')
	}
	return hours*60 + minutes
}

func (s *attendanceService) CheckIn(userID uuid.UUID, note string) (*model.Attendance, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if existing, _ := s.attendanceRepo.FindByUserAndDate(userID, today); existing != nil && existing.CheckInAt != nil {
		return nil, ErrAlreadyCheckedIn
	}

	record := &model.Attendance{
		UserID:    userID,
		WorkDate:  today,
		CheckInAt: &now,
		Status:    classifyCheckIn(now, s.policy),
		Note:      note,
	}
	record.CreatedBy = userID.String()
	record.UpdatedBy = userID.String()

	if err := s.attendanceRepo.Create(record); err != nil {
		return nil, err
	}

	// Live dashboards get every check-in as it happens.
	go s.broadcastCheckIn(record, user)

	return record, nil
}

func (s *attendanceService) CheckOut(userID uuid.UUID) (*model.Attendance, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	record, err := s.attendanceRepo.FindByUserAndDate(userID, today)
	if err != nil || record.CheckInAt == nil {
		return nil, ErrNotCheckedIn
	}
	if record.CheckOutAt != nil {
		return nil, ErrAlreadyCheckedOut
	}

	record.CheckOutAt = &now
	record.UpdatedBy = userID.String()
	if err := s.attendanceRepo.Update(record); err != nil {
		return nil, err
	}

	return record, nil
}

// periodBounds parses YYYY-MM into the first and last day of the month.
func periodBounds(period string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	end := start.AddDate(0, 1, -1)
	return start, end, nil
}

// countWorkdays counts weekdays (Mon-Fri) in [start, end].
func countWorkdays(start, end time.Time) int {
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

func (s *attendanceService) GetUserAttendance(userID uuid.UUID, period string) ([]model.Attendance, error) {
	start, end, err := periodBounds(period)
	if err != nil {
		return nil, err
	}
	return s.attendanceRepo.FindByUserAndRange(userID, start, end)
}

func (s *attendanceService) GetSummary(userID uuid.UUID, period string) (*model.AttendanceSummary, error) {
	start, end, err := periodBounds(period)
	if err != nil {
		return nil, err
	}

	// Open periods only count workdays that have already passed.
	if now := s.now(); end.After(now) {
		end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	records, err := s.attendanceRepo.FindByUserAndRange(userID, start, end)
	if err != nil {
		return nil, err
	}

	summary := &model.AttendanceSummary{
		UserID:   userID,
		Period:   period,
		WorkDays: countWorkdays(start, end),
	}
	for _, record := range records {
		switch record.Status {
		case model.AttendancePresent:
			summary.PresentDays++
		case model.AttendanceLate:
			summary.LateDays++
		case model.AttendanceAbsent:
			summary.AbsentDays++
		}
	}

	if summary.WorkDays > 0 {
		summary.AttendanceRate = float64(summary.PresentDays+summary.LateDays) / float64(summary.WorkDays) * 100
	}

	return summary, nil
}

func (s *attendanceService) GetDailyOverview(date time.Time) ([]model.Attendance, error) {
	return s.attendanceRepo.FindByDate(date)
}

// MarkAbsentees writes an absent record for every active user without
// one on the given day. Weekends are skipped. Returns how many records
// were written; run after close of business by the worker.
func (s *attendanceService) MarkAbsentees(date time.Time) (int, error) {
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return 0, nil
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	users, err := s.userRepo.FindActive()
	if err != nil {
		return 0, err
	}

	marked := 0
	for _, user := range users {
		if existing, _ := s.attendanceRepo.FindByUserAndDate(user.ID, day); existing != nil {
			continue
		}
		record := &model.Attendance{
			UserID:   user.ID,
			WorkDate: day,
			Status:   model.AttendanceAbsent,
		}
		record.CreatedBy = "system"
		record.UpdatedBy = "system"
		if err := s.attendanceRepo.Create(record); err != nil {
			return marked, err
		}
		marked++
	}
	return marked, nil
}

func (s *attendanceService) broadcastCheckIn(record *model.Attendance, user *model.User) {
	payload := map[string]interface{}{
		"type":    "attendance_update",
		"action":  "check_in",
		"user_id": record.UserID.String(),
		"status":  record.Status,
		"message": fmt.Sprintf("%s checked in (%s)", user.FullName, record.Status),
	}
	msg, _ := json.Marshal(payload)
	s.wsHub.Broadcast <- msg
}
