package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go-hris-suite/internal/model"
	"go-hris-suite/internal/repository"
	"go-hris-suite/internal/ws"

	"github.com/google/uuid"
)

// Error definitions
var (
	ErrScheduleNotFound         = errors.New("schedule not found")
	ErrInvalidTimeFormat        = errors.New("invalid time format, use HH:MM (e.g., 08:30, 17:59)")
	ErrInvalidDateFormat        = errors.New("invalid date format, use YYYY-MM-DD")
	ErrEndDateBeforeStart       = errors.New("end date cannot be before start date")
	ErrUserNotActive            = errors.New("cannot assign schedule to inactive user")
	ErrScheduleConflict         = errors.New("schedule conflicts with existing assignments")
	ErrSameTimeStartEnd         = errors.New("start time and end time cannot be the same")
	ErrUnauthorizedScheduleView = errors.New("you can only view your own schedule")
)

type ScheduleService interface {
	CreateSchedule(req *CreateScheduleRequest, creatorID string) (*model.Schedule, error)
	UpdateSchedule(scheduleID uuid.UUID, req *UpdateScheduleRequest, updaterID string) (*model.Schedule, error)
	DeleteSchedule(scheduleID uuid.UUID, deleterID string) error
	GetScheduleByID(id uuid.UUID, requesterID string, canViewAll bool) (*model.ScheduleResponse, error)
	GetSchedules(requesterID string, canViewAll bool, viewType string, referenceDate time.Time) ([]model.ScheduleResponse, error)
	GetSchedulesByUser(userID uuid.UUID, requesterID string, canViewAll bool) ([]model.ScheduleResponse, error)
}

type CreateScheduleRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	Title     string `json:"title"`
	StartTime string `json:"start_time" validate:"required"` // HH:MM
	EndTime   string `json:"end_time" validate:"required"`   // HH:MM
	StartDate string `json:"start_date" validate:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" validate:"required"`   // YYYY-MM-DD
	Note      string `json:"note"`
}

type UpdateScheduleRequest struct {
	UserID    *string `json:"user_id"` // Optional: reassign to different user
	Title     *string `json:"title"`
	StartTime *string `json:"start_time"` // HH:MM
	EndTime   *string `json:"end_time"`   // HH:MM
	StartDate *string `json:"start_date"` // YYYY-MM-DD
	EndDate   *string `json:"end_date"`   // YYYY-MM-DD
	Note      *string `json:"note"`
}

type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	userRepo     repository.UserRepository
	wsHub        *ws.Hub
}

func NewScheduleService(scheduleRepo repository.ScheduleRepository, userRepo repository.UserRepository, hub *ws.Hub) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		userRepo:     userRepo,
		wsHub:        hub,
	}
}

var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// validateTimeFormat validates HH:MM format (00:00 - 23:59)
func validateTimeFormat(timeStr string) error {
	if !timePattern.MatchString(timeStr) {
		return ErrInvalidTimeFormat
	}
	return nil
}

// validateDateFormat validates YYYY-MM-DD format and returns parsed date
func validateDateFormat(dateStr string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return parsed, nil
}

// isOvernight determines if the span crosses midnight
func isOvernight(startTime, endTime string) bool {
	return timeStringToMinutes(endTime) <= timeStringToMinutes(startTime)
}

func (s *scheduleService) CreateSchedule(req *CreateScheduleRequest, creatorID string) (*model.Schedule, error) {
	// 1. Validate times and dates
	if err := validateTimeFormat(req.StartTime); err != nil {
		return nil, err
	}
	if err := validateTimeFormat(req.EndTime); err != nil {
		return nil, err
	}
	startDate, err := validateDateFormat(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := validateDateFormat(req.EndDate)
	if err != nil {
		return nil, err
	}
	if endDate.Before(startDate) {
		return nil, ErrEndDateBeforeStart
	}
	if req.StartTime == req.EndTime {
		return nil, ErrSameTimeStartEnd
	}

	// 2. Validate assignee
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, errors.New("invalid user_id")
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserNotActive
	}

	overnight := isOvernight(req.StartTime, req.EndTime)

	// 3. Conflict check against the user's existing assignments
	conflicts, err := s.scheduleRepo.FindOverlapping(userID, startDate, endDate,
		req.StartTime, req.EndTime, overnight, nil)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrScheduleConflict, formatConflictDetails(conflicts))
	}

	schedule := &model.Schedule{
		UserID:      userID,
		Title:       req.Title,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		StartDate:   startDate,
		EndDate:     endDate,
		IsOvernight: overnight,
		Note:        req.Note,
		TotalDays:   inclusiveDays(startDate, endDate),
	}
	schedule.CreatedBy = creatorID
	schedule.UpdatedBy = creatorID

	if err := s.scheduleRepo.Create(schedule); err != nil {
		return nil, err
	}
	schedule.User = user

	go s.notifyScheduleCreated(schedule, user)

	return schedule, nil
}

func (s *scheduleService) UpdateSchedule(scheduleID uuid.UUID, req *UpdateScheduleRequest, updaterID string) (*model.Schedule, error) {
	// 1. Find existing assignment
	schedule, err := s.scheduleRepo.FindByID(scheduleID)
	if err != nil {
		return nil, ErrScheduleNotFound
	}

	originalUserID := schedule.UserID
	originalUser := schedule.User

	// 2. Apply optional fields
	if req.UserID != nil {
		newUserID, err := uuid.Parse(*req.UserID)
		if err != nil {
			return nil, errors.New("invalid user_id")
		}
		newUser, err := s.userRepo.FindByID(newUserID)
		if err != nil {
			return nil, ErrUserNotFound
		}
		if !newUser.IsActive {
			return nil, ErrUserNotActive
		}
		schedule.UserID = newUserID
		schedule.User = newUser
	}
	if req.Title != nil {
		schedule.Title = *req.Title
	}
	if req.StartTime != nil {
		if err := validateTimeFormat(*req.StartTime); err != nil {
			return nil, err
		}
		schedule.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		if err := validateTimeFormat(*req.EndTime); err != nil {
			return nil, err
		}
		schedule.EndTime = *req.EndTime
	}
	if req.StartDate != nil {
		parsed, err := validateDateFormat(*req.StartDate)
		if err != nil {
			return nil, err
		}
		schedule.StartDate = parsed
	}
	if req.EndDate != nil {
		parsed, err := validateDateFormat(*req.EndDate)
		if err != nil {
			return nil, err
		}
		schedule.EndDate = parsed
	}
	if req.Note != nil {
		schedule.Note = *req.Note
	}

	// 3. Re-validate the combined result
	if schedule.EndDate.Before(schedule.StartDate) {
		return nil, ErrEndDateBeforeStart
	}
	if schedule.StartTime == schedule.EndTime {
		return nil, ErrSameTimeStartEnd
	}
	schedule.IsOvernight = isOvernight(schedule.StartTime, schedule.EndTime)
	schedule.TotalDays = inclusiveDays(schedule.StartDate, schedule.EndDate)

	// 4. Conflict check, excluding this assignment itself
	conflicts, err := s.scheduleRepo.FindOverlapping(schedule.UserID, schedule.StartDate, schedule.EndDate,
		schedule.StartTime, schedule.EndTime, schedule.IsOvernight, &schedule.ID)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrScheduleConflict, formatConflictDetails(conflicts))
	}

	schedule.UpdatedBy = updaterID
	if err := s.scheduleRepo.Update(schedule); err != nil {
		return nil, err
	}

	go s.notifyScheduleUpdated(schedule, originalUserID, originalUser)

	return schedule, nil
}

func (s *scheduleService) DeleteSchedule(scheduleID uuid.UUID, deleterID string) error {
	// 1. Find existing assignment
	schedule, err := s.scheduleRepo.FindByID(scheduleID)
	if err != nil {
		return ErrScheduleNotFound
	}

	// 2. Delete (soft delete)
	if err := s.scheduleRepo.Delete(scheduleID, deleterID); err != nil {
		return err
	}

	// 3. Notify affected user
	go s.notifyScheduleDeleted(schedule)

	return nil
}

func (s *scheduleService) GetScheduleByID(id uuid.UUID, requesterID string, canViewAll bool) (*model.ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.FindByID(id)
	if err != nil {
		return nil, ErrScheduleNotFound
	}

	// Without the view-all privilege a user only sees their own schedule
	if !canViewAll && schedule.UserID.String() != requesterID {
		return nil, ErrUnauthorizedScheduleView
	}

	response := schedule.ToResponse()
	return &response, nil
}

func (s *scheduleService) GetSchedules(requesterID string, canViewAll bool, viewType string, referenceDate time.Time) ([]model.ScheduleResponse, error) {
	var schedules []model.Schedule
	var err error

	// Calculate date range based on view type
	startDate, endDate := calculateDateRange(viewType, referenceDate)

	if canViewAll {
		if viewType == string(model.ViewTypeAll) {
			schedules, err = s.scheduleRepo.FindAll()
		} else {
			schedules, err = s.scheduleRepo.FindByDateRange(startDate, endDate)
		}
	} else {
		userID, parseErr := uuid.Parse(requesterID)
		if parseErr != nil {
			return nil, errors.New("invalid requester ID")
		}
		if viewType == string(model.ViewTypeAll) {
			schedules, err = s.scheduleRepo.FindByUserID(userID)
		} else {
			schedules, err = s.scheduleRepo.FindByUserIDAndDateRange(userID, startDate, endDate)
		}
	}

	if err != nil {
		return nil, err
	}

	responses := make([]model.ScheduleResponse, len(schedules))
	for i, schedule := range schedules {
		responses[i] = schedule.ToResponse()
	}

	return responses, nil
}

func (s *scheduleService) GetSchedulesByUser(userID uuid.UUID, requesterID string, canViewAll bool) ([]model.ScheduleResponse, error) {
	// Check authorization
	if !canViewAll && userID.String() != requesterID {
		return nil, ErrUnauthorizedScheduleView
	}

	schedules, err := s.scheduleRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	responses := make([]model.ScheduleResponse, len(schedules))
	for i, schedule := range schedules {
		responses[i] = schedule.ToResponse()
	}

	return responses, nil
}

// calculateDateRange calculates start and end dates based on view type
func calculateDateRange(viewType string, referenceDate time.Time) (time.Time, time.Time) {
	ref := referenceDate

	switch model.ViewType(viewType) {
	case model.ViewTypeDaily:
		start := ref.Truncate(24 * time.Hour)
		end := start.Add(24*time.Hour - time.Second)
		return start, end

	case model.ViewTypeWeekly:
		// Get start of week (Monday)
		weekday := int(ref.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday = 7
		}
		start := ref.Truncate(24*time.Hour).AddDate(0, 0, -(weekday - 1))
		end := start.AddDate(0, 0, 7).Add(-time.Second)
		return start, end

	case model.ViewTypeMonthly:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		end := start.AddDate(0, 1, 0).Add(-time.Second)
		return start, end

	default:
		// All time: very wide range
		start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2100, 12, 31, 23, 59, 59, 0, time.UTC)
		return start, end
	}
}

// formatConflictDetails creates a detailed message about conflicting assignments
func formatConflictDetails(schedules []model.Schedule) string {
	if len(schedules) == 0 {
		return ""
	}

	details := make([]string, len(schedules))
	for i, schedule := range schedules {
		details[i] = fmt.Sprintf("[%s - %s, %s to %s]",
			schedule.StartTime, schedule.EndTime,
			schedule.StartDate.Format("2006-01-02"),
			schedule.EndDate.Format("2006-01-02"))
	}

	return strings.Join(details, ", ")
}

// WebSocket notification methods

func (s *scheduleService) notifyScheduleCreated(schedule *model.Schedule, user *model.User) {
	payload := map[string]interface{}{
		"type":   "schedule_notification",
		"action": "schedule_created",
		"message": fmt.Sprintf("You have been assigned a new schedule: %s - %s, from %s to %s",
			schedule.StartTime, schedule.EndTime,
			schedule.StartDate.Format("2006-01-02"),
			schedule.EndDate.Format("2006-01-02")),
		"schedule": schedule.ToResponse(),
	}
	msg, _ := json.Marshal(payload)

	// Send only to the assigned user
	s.wsHub.SendToUsers([]string{user.ID.String()}, msg)
}

func (s *scheduleService) notifyScheduleUpdated(schedule *model.Schedule, originalUserID uuid.UUID, originalUser *model.User) {
	if schedule.UserID != originalUserID && originalUser != nil && schedule.User != nil {
		// Reassigned: tell the old user it moved away and the new user
		// who they are replacing.
		oldPayload := map[string]interface{}{
			"type":   "schedule_notification",
			"action": "schedule_reassigned_from",
			"message": fmt.Sprintf("Your schedule (%s - %s, %s to %s) has been reassigned to %s",
				schedule.StartTime, schedule.EndTime,
				schedule.StartDate.Format("2006-01-02"),
				schedule.EndDate.Format("2006-01-02"),
				schedule.User.FullName),
			"new_assignee": schedule.User.ToResponse(),
		}
		oldMsg, _ := json.Marshal(oldPayload)
		s.wsHub.SendToUsers([]string{originalUserID.String()}, oldMsg)

		newPayload := map[string]interface{}{
			"type":   "schedule_notification",
			"action": "schedule_reassigned_to",
			"message": fmt.Sprintf("You are replacing %s's schedule: %s - %s, from %s to %s",
				originalUser.FullName,
				schedule.StartTime, schedule.EndTime,
				schedule.StartDate.Format("2006-01-02"),
				schedule.EndDate.Format("2006-01-02")),
			"previous_assignee": originalUser.ToResponse(),
			"schedule":          schedule.ToResponse(),
		}
		newMsg, _ := json.Marshal(newPayload)
		s.wsHub.SendToUsers([]string{schedule.UserID.String()}, newMsg)
		return
	}

	payload := map[string]interface{}{
		"type":   "schedule_notification",
		"action": "schedule_updated",
		"message": fmt.Sprintf("Your schedule has been updated: %s - %s, from %s to %s",
			schedule.StartTime, schedule.EndTime,
			schedule.StartDate.Format("2006-01-02"),
			schedule.EndDate.Format("2006-01-02")),
		"schedule": schedule.ToResponse(),
	}
	msg, _ := json.Marshal(payload)
	s.wsHub.SendToUsers([]string{schedule.UserID.String()}, msg)
}

func (s *scheduleService) notifyScheduleDeleted(schedule *model.Schedule) {
	payload := map[string]interface{}{
		"type":   "schedule_notification",
		"action": "schedule_cancelled",
		"message": fmt.Sprintf("Your schedule has been cancelled: %s - %s, from %s to %s",
			schedule.StartTime, schedule.EndTime,
			schedule.StartDate.Format("2006-01-02"),
			schedule.EndDate.Format("2006-01-02")),
		"schedule": schedule.ToResponse(),
	}
	msg, _ := json.Marshal(payload)

	s.wsHub.SendToUsers([]string{schedule.UserID.String()}, msg)
}
