// Package jobs defines the background tasks processed by the worker
// binary: scheduled payroll runs and end-of-day absence marking.
package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypePayrollGenerate      = "payroll:generate"
	TypeAttendanceMarkAbsent = "attendance:mark-absent"
)

// PayrollGeneratePayload drives a full payroll run for one period.
type PayrollGeneratePayload struct {
	Period      string `json:"period"` // YYYY-MM
	GeneratedBy string `json:"generated_by"`
}

// AttendanceMarkAbsentPayload marks missing check-ins for one day.
type AttendanceMarkAbsentPayload struct {
	Date string `json:"date"` // YYYY-MM-DD
}

func NewPayrollGenerateTask(period, generatedBy string) (*asynq.Task, error) {
	payload, err := json.Marshal(PayrollGeneratePayload{Period: period, GeneratedBy: generatedBy})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePayrollGenerate, payload,
		asynq.MaxRetry(3), asynq.Timeout(5*time.Minute)), nil
}

func NewAttendanceMarkAbsentTask(date time.Time) (*asynq.Task, error) {
	payload, err := json.Marshal(AttendanceMarkAbsentPayload{Date: date.Format("2006-01-02")})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAttendanceMarkAbsent, payload,
		asynq.MaxRetry(3), asynq.Timeout(time.Minute)), nil
}
