package model

import (
	"time"

	"github.com/google/uuid"
)

// PayslipStatus tracks whether a payslip can still be regenerated
type PayslipStatus string

const (
	PayslipDraft PayslipStatus = "draft"
	PayslipPaid  PayslipStatus = "paid"
)

// Payslip is one user's pay computation for one period (YYYY-MM).
// Paid payslips are immutable.
type Payslip struct {
	BaseModel
	UserID           uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_payslip_user_period" json:"user_id"`
	User             *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Period           string        `gorm:"type:varchar(7);not null;uniqueIndex:idx_payslip_user_period;index" json:"period"`
	BaseSalary       float64       `gorm:"type:numeric(14,2);not null" json:"base_salary"`
	Allowance        float64       `gorm:"type:numeric(14,2);not null" json:"allowance"`
	AbsentDays       int           `gorm:"not null" json:"absent_days"`
	LateDays         int           `gorm:"not null" json:"late_days"`
	AbsenceDeduction float64       `gorm:"type:numeric(14,2);not null" json:"absence_deduction"`
	LateDeduction    float64       `gorm:"type:numeric(14,2);not null" json:"late_deduction"`
	GrossPay         float64       `gorm:"type:numeric(14,2);not null" json:"gross_pay"`
	NetPay           float64       `gorm:"type:numeric(14,2);not null" json:"net_pay"`
	Status           PayslipStatus `gorm:"type:varchar(10);not null;default:'draft'" json:"status"`
	PaidAt           *time.Time    `json:"paid_at,omitempty"`
}

// TableName specifies the table name for GORM
func (Payslip) TableName() string {
	return "payslips"
}
