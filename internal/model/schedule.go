package model

import (
	"time"

	"github.com/google/uuid"
)

// Schedule represents a recurring work or teaching assignment for a user
// Supports overnight spans (e.g., 22:00 - 06:00 next day)
type Schedule struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id" validate:"uuid_required"`
	User   *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Title string `gorm:"type:varchar(150)" json:"title"`

	// Time specification (HH:MM format, stored as string for minute precision)
	// For overnight spans: StartTime > EndTime (e.g., 22:00 - 06:00)
	StartTime string `gorm:"type:varchar(5);not null" json:"start_time" validate:"required,hhmm"`
	EndTime   string `gorm:"type:varchar(5);not null" json:"end_time" validate:"required,hhmm"`

	// Date range (inclusive)
	StartDate time.Time `gorm:"type:date;not null;index" json:"start_date" validate:"required"`
	EndDate   time.Time `gorm:"type:date;not null;index" json:"end_date" validate:"required"`

	// Flag to indicate if this span crosses midnight (calculated on save)
	IsOvernight bool `gorm:"default:false" json:"is_overnight"`

	Note string `gorm:"type:text" json:"note,omitempty"`

	// Denormalized for quick lookup (calculated on save)
	TotalDays int `gorm:"not null" json:"total_days"`
}

// TableName specifies the table name for GORM
func (Schedule) TableName() string {
	return "schedules"
}

// ScheduleResponse for API responses
type ScheduleResponse struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"user_id"`
	User        *UserResponse `json:"user,omitempty"`
	Title       string        `json:"title"`
	StartTime   string        `json:"start_time"`
	EndTime     string        `json:"end_time"`
	StartDate   string        `json:"start_date"`
	EndDate     string        `json:"end_date"`
	IsOvernight bool          `json:"is_overnight"`
	Note        string        `json:"note,omitempty"`
	TotalDays   int           `json:"total_days"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	CreatedBy   string        `json:"created_by"`
	UpdatedBy   string        `json:"updated_by"`
}

// ToResponse converts Schedule to ScheduleResponse
func (s *Schedule) ToResponse() ScheduleResponse {
	response := ScheduleResponse{
		ID:          s.ID,
		UserID:      s.UserID,
		Title:       s.Title,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		StartDate:   s.StartDate.Format("2006-01-02"),
		EndDate:     s.EndDate.Format("2006-01-02"),
		IsOvernight: s.IsOvernight,
		Note:        s.Note,
		TotalDays:   s.TotalDays,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		CreatedBy:   s.CreatedBy,
		UpdatedBy:   s.UpdatedBy,
	}

	if s.User != nil {
		userResp := s.User.ToResponse()
		response.User = &userResp
	}

	return response
}

// ViewType for filtering schedules
type ViewType string

const (
	ViewTypeDaily   ViewType = "daily"
	ViewTypeWeekly  ViewType = "weekly"
	ViewTypeMonthly ViewType = "monthly"
	ViewTypeAll     ViewType = "all"
)
