package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"go-hris-suite/internal/service"
)

// Handler wires task types to the services that execute them.
type Handler struct {
	payrollSvc    service.PayrollService
	attendanceSvc service.AttendanceService
}

func NewHandler(payrollSvc service.PayrollService, attendanceSvc service.AttendanceService) *Handler {
	return &Handler{
		payrollSvc:    payrollSvc,
		attendanceSvc: attendanceSvc,
	}
}

// Register attaches all handlers to the mux.
func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypePayrollGenerate, h.HandlePayrollGenerate)
	mux.HandleFunc(TypeAttendanceMarkAbsent, h.HandleAttendanceMarkAbsent)
}

func (h *Handler) HandlePayrollGenerate(ctx context.Context, t *asynq.Task) error {
	var payload PayrollGeneratePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal %s payload: %w: %w", TypePayrollGenerate, err, asynq.SkipRetry)
	}

	generated, err := h.payrollSvc.GeneratePeriod(payload.Period, payload.GeneratedBy)
	if err != nil {
		return fmt.Errorf("generate payroll for %s: %w", payload.Period, err)
	}
	log.Printf("payroll run %s: %d payslips generated", payload.Period, generated)
	return nil
}

func (h *Handler) HandleAttendanceMarkAbsent(ctx context.Context, t *asynq.Task) error {
	var payload AttendanceMarkAbsentPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal %s payload: %w: %w", TypeAttendanceMarkAbsent, err, asynq.SkipRetry)
	}

	date, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		return fmt.Errorf("bad date %q: %w: %w", payload.Date, err, asynq.SkipRetry)
	}

	marked, err := h.attendanceSvc.MarkAbsentees(date)
	if err != nil {
		return fmt.Errorf("mark absentees for %s: %w", payload.Date, err)
	}
	log.Printf("absence sweep %s: %d users marked absent", payload.Date, marked)
	return nil
}
