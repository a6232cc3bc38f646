package repository

import (
	"time"

	"go-hris-suite/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Create(record *model.Attendance) error
	Update(record *model.Attendance) error
	FindByUserAndDate(userID uuid.UUID, date time.Time) (*model.Attendance, error)
	FindByUserAndRange(userID uuid.UUID, start, end time.Time) ([]model.Attendance, error)
	FindByDate(date time.Time) ([]model.Attendance, error)
	FindByRange(start, end time.Time) ([]model.Attendance, error)
	CountByStatus(userID uuid.UUID, start, end time.Time, status model.AttendanceStatus) (int64, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db}
}

func (r *attendanceRepo) Create(record *model.Attendance) error {
	return r.db.Create(record).Error
}

func (r *attendanceRepo) Update(record *model.Attendance) error {
	return r.db.Save(record).Error
}

func (r *attendanceRepo) FindByUserAndDate(userID uuid.UUID, date time.Time) (*model.Attendance, error) {
	var record model.Attendance
	err := r.db.Where("user_id = ? AND work_date = ?", userID, date.Format("2006-01-02")).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepo) FindByUserAndRange(userID uuid.UUID, start, end time.Time) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.Where("user_id = ? AND work_date BETWEEN ? AND ?",
		userID, start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("work_date").Find(&records).Error
	return records, err
}

func (r *attendanceRepo) FindByDate(date time.Time) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.Preload("User").Where("work_date = ?", date.Format("2006-01-02")).Find(&records).Error
	return records, err
}

func (r *attendanceRepo) FindByRange(start, end time.Time) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.Preload("User").Where("work_date BETWEEN ? AND ?",
		start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("work_date").Find(&records).Error
	return records, err
}

func (r *attendanceRepo) CountByStatus(userID uuid.UUID, start, end time.Time, status model.AttendanceStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.Attendance{}).
		Where("user_id = ? AND work_date BETWEEN ? AND ? AND status = ?",
			userID, start.Format("2006-01-02"), end.Format("2006-01-02"), status).
		Count(&count).Error
	return count, err
}
