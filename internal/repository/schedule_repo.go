package repository

import (
	"time"

	"go-hris-suite/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleRepository interface {
	Create(schedule *model.Schedule) error
	Update(schedule *model.Schedule) error
	Delete(id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.Schedule, error)
	FindByUserID(userID uuid.UUID) ([]model.Schedule, error)
	FindAll() ([]model.Schedule, error)

	// Overlap detection - returns assignments that would conflict with
	// the given time/date range for a user
	FindOverlapping(userID uuid.UUID, startDate, endDate time.Time,
		startTime, endTime string, isOvernight bool, excludeID *uuid.UUID) ([]model.Schedule, error)

	// Calendar views
	FindByDateRange(startDate, endDate time.Time) ([]model.Schedule, error)
	FindByUserIDAndDateRange(userID uuid.UUID, startDate, endDate time.Time) ([]model.Schedule, error)
}

type scheduleRepo struct {
	db *gorm.DB
}

func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db}
}

func (r *scheduleRepo) Create(schedule *model.Schedule) error {
	return r.db.Create(schedule).Error
}

func (r *scheduleRepo) Update(schedule *model.Schedule) error {
	return r.db.Save(schedule).Error
}

func (r *scheduleRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Model(&model.Schedule{}).Where("id = ?", id).Updates(map[string]interface{}{
		"deleted_at": gorm.Expr("NOW()"),
		"deleted_by": deletedBy,
	}).Error
}

func (r *scheduleRepo) FindByID(id uuid.UUID) (*model.Schedule, error) {
	var schedule model.Schedule
	if err := r.db.Preload("User").Preload("User.Role").First(&schedule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) FindByUserID(userID uuid.UUID) ([]model.Schedule, error) {
	var schedules []model.Schedule
	if err := r.db.Preload("User").Preload("User.Role").
		Where("user_id = ?", userID).
		Order("start_date ASC, start_time ASC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepo) FindAll() ([]model.Schedule, error) {
	var schedules []model.Schedule
	if err := r.db.Preload("User").Preload("User.Role").
		Order("start_date ASC, start_time ASC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// FindOverlapping narrows by date range in SQL, then filters time
// overlap in Go where overnight spans need precise handling.
func (r *scheduleRepo) FindOverlapping(userID uuid.UUID, startDate, endDate time.Time,
	startTime, endTime string, isOvernight bool, excludeID *uuid.UUID) ([]model.Schedule, error) {

	var schedules []model.Schedule

	query := r.db.Where("user_id = ?", userID).
		Where("start_date <= ? AND end_date >= ?", endDate, startDate) // Date ranges overlap

	// Exclude current assignment when updating
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	if err := query.Preload("User").Find(&schedules).Error; err != nil {
		return nil, err
	}

	var overlapping []model.Schedule
	for _, existing := range schedules {
		if timeRangesOverlap(startTime, endTime, isOvernight,
			existing.StartTime, existing.EndTime, existing.IsOvernight) {
			overlapping = append(overlapping, existing)
		}
	}

	return overlapping, nil
}

// timeRangesOverlap checks if two time ranges overlap.
// Handles both same-day and overnight spans.
func timeRangesOverlap(start1, end1 string, overnight1 bool, start2, end2 string, overnight2 bool) bool {
	// Convert times to minutes since midnight for easier comparison
	s1 := timeToMinutes(start1)
	e1 := timeToMinutes(end1)
	s2 := timeToMinutes(start2)
	e2 := timeToMinutes(end2)

	// For overnight spans, the end lands on the following day
	if overnight1 {
		e1 += 1440
	}
	if overnight2 {
		e2 += 1440
	}

	if overnight1 || overnight2 {
		// Direct overlap on the shared day
		if !(e1 <= s2 || e2 <= s1) {
			return true
		}

		// An overnight span (22:00-06:00) also occupies 00:00-06:00 of
		// the next day; check the other range against that morning part.
		if overnight1 && !overnight2 {
			nextDayEnd1 := e1 - 1440
			if s2 < nextDayEnd1 {
				return true
			}
		}

		if overnight2 && !overnight1 {
			nextDayEnd2 := e2 - 1440
			if s1 < nextDayEnd2 {
				return true
			}
		}

		return false
	}

	// Simple case: neither is overnight
	return !(e1 <= s2 || e2 <= s1)
}

// timeToMinutes converts HH:MM string to minutes since midnight
func timeToMinutes(timeStr string) int {
	var hours, minutes int
	if len(timeStr) >= 5 {
		hours = int(timeStr[0]-'0')*10 + int(timeStr[1]-'0')
		minutes = int(timeStr[3]-'0')*10 + int(timeStr[4]-'0')
	}
	return hours*60 + minutes
}

func (r *scheduleRepo) FindByDateRange(startDate, endDate time.Time) ([]model.Schedule, error) {
	var schedules []model.Schedule
	if err := r.db.Preload("User").Preload("User.Role").
		Where("start_date <= ? AND end_date >= ?", endDate, startDate).
		Order("start_date ASC, start_time ASC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepo) FindByUserIDAndDateRange(userID uuid.UUID, startDate, endDate time.Time) ([]model.Schedule, error) {
	var schedules []model.Schedule
	if err := r.db.Preload("User").Preload("User.Role").
		Where("user_id = ?", userID).
		Where("start_date <= ? AND end_date >= ?", endDate, startDate).
		Order("start_date ASC, start_time ASC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}
