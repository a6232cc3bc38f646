package model

import (
	"time"

	"github.com/google/uuid"
)

// LeaveType classifies a leave request
type LeaveType string

const (
	LeaveAnnual LeaveType = "annual"
	LeaveSick   LeaveType = "sick"
	LeaveUnpaid LeaveType = "unpaid"
)

// LeaveStatus tracks the approval state of a request
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// AnnualLeaveEntitlement is the yearly allowance of annual leave days.
const AnnualLeaveEntitlement = 12

// LeaveRequest is a dated leave application with an approval trail
type LeaveRequest struct {
	BaseModel
	UserID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Type       LeaveType   `gorm:"type:varchar(10);not null" json:"type"`
	StartDate  time.Time   `gorm:"type:date;not null;index" json:"start_date"`
	EndDate    time.Time   `gorm:"type:date;not null" json:"end_date"`
	Days       int         `gorm:"not null" json:"days"` // Inclusive day count, denormalized on save
	Reason     string      `gorm:"type:text" json:"reason"`
	Status     LeaveStatus `gorm:"type:varchar(10);not null;default:'pending';index" json:"status"`
	DecidedBy  *uuid.UUID  `gorm:"type:uuid" json:"decided_by,omitempty"`
	DecidedAt  *time.Time  `json:"decided_at,omitempty"`
	DecisionNote string    `gorm:"type:text" json:"decision_note,omitempty"`
}

// TableName specifies the table name for GORM
func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// LeaveBalance reports the remaining annual leave for a user in a year.
type LeaveBalance struct {
	UserID      uuid.UUID `json:"user_id"`
	Year        int       `json:"year"`
	Entitlement int       `json:"entitlement"`
	UsedDays    int       `json:"used_days"`
	Remaining   int       `json:"remaining"`
}
