package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceStatus classifies a day's attendance record
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// Attendance is one user's record for one work day.
// CheckOutAt stays nil until the user checks out.
type Attendance struct {
	BaseModel
	UserID     uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_user_date" json:"user_id"`
	User       *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	WorkDate   time.Time        `gorm:"type:date;not null;uniqueIndex:idx_attendance_user_date;index" json:"work_date"`
	CheckInAt  *time.Time       `json:"check_in_at,omitempty"`
	CheckOutAt *time.Time       `json:"check_out_at,omitempty"`
	Status     AttendanceStatus `gorm:"type:varchar(10);not null" json:"status"`
	Note       string           `gorm:"type:text" json:"note,omitempty"`
}

// TableName specifies the table name for GORM
func (Attendance) TableName() string {
	return "attendances"
}

// AttendanceSummary aggregates one user's records over a period.
type AttendanceSummary struct {
	UserID      uuid.UUID `json:"user_id"`
	Period      string    `json:"period"` // YYYY-MM
	WorkDays    int       `json:"work_days"`
	PresentDays int       `json:"present_days"`
	LateDays    int       `json:"late_days"`
	AbsentDays  int       `json:"absent_days"`
	// Rate counts present and late days against work days, 0..100.
	AttendanceRate float64 `json:"attendance_rate"`
}
