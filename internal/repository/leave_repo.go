package repository

import (
	"time"

	"go-hris-suite/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveRepository interface {
	Create(request *model.LeaveRequest) error
	Update(request *model.LeaveRequest) error
	FindByID(id uuid.UUID) (*model.LeaveRequest, error)
	FindByUser(userID uuid.UUID) ([]model.LeaveRequest, error)
	FindByStatus(status model.LeaveStatus) ([]model.LeaveRequest, error)
	FindOverlapping(userID uuid.UUID, start, end time.Time) ([]model.LeaveRequest, error)
	SumApprovedDays(userID uuid.UUID, leaveType model.LeaveType, year int) (int, error)
}

type leaveRepo struct {
	db *gorm.DB
}

func NewLeaveRepo(db *gorm.DB) LeaveRepository {
	return &leaveRepo{db}
}

func (r *leaveRepo) Create(request *model.LeaveRequest) error {
	return r.db.Create(request).Error
}

func (r *leaveRepo) Update(request *model.LeaveRequest) error {
	return r.db.Save(request).Error
}

func (r *leaveRepo) FindByID(id uuid.UUID) (*model.LeaveRequest, error) {
	var request model.LeaveRequest
	if err := r.db.Preload("User").First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *leaveRepo) FindByUser(userID uuid.UUID) ([]model.LeaveRequest, error) {
	var requests []model.LeaveRequest
	err := r.db.Where("user_id = ?", userID).Order("start_date DESC").Find(&requests).Error
	return requests, err
}

func (r *leaveRepo) FindByStatus(status model.LeaveStatus) ([]model.LeaveRequest, error) {
	var requests []model.LeaveRequest
	err := r.db.Preload("User").Where("status = ?", status).Order("start_date").Find(&requests).Error
	return requests, err
}

// FindOverlapping returns pending or approved requests for the user
// whose date range intersects [start, end].
func (r *leaveRepo) FindOverlapping(userID uuid.UUID, start, end time.Time) ([]model.LeaveRequest, error) {
	var requests []model.LeaveRequest
	err := r.db.Where("user_id = ? AND status IN ? AND start_date <= ? AND end_date >= ?",
		userID,
		[]model.LeaveStatus{model.LeavePending, model.LeaveApproved},
		end.Format("2006-01-02"), start.Format("2006-01-02")).
		Find(&requests).Error
	return requests, err
}

func (r *leaveRepo) SumApprovedDays(userID uuid.UUID, leaveType model.LeaveType, year int) (int, error) {
	var total int64
	err := r.db.Model(&model.LeaveRequest{}).
		Select("COALESCE(SUM(days), 0)").
		Where("user_id = ? AND type = ? AND status = ? AND EXTRACT(YEAR FROM start_date) = ?",
			userID, leaveType, model.LeaveApproved, year).
		Scan(&total).Error
	return int(total), err
}
