package handler

import (
	"errors"
	"log"

	"go-hris-suite/internal/jobs"
	"go-hris-suite/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type PayrollHandler struct {
	payrollService service.PayrollService
	asynqClient    *asynq.Client
}

// NewPayrollHandler constructs the handler. asynqClient may be nil, in
// which case period runs execute synchronously.
func NewPayrollHandler(payrollService service.PayrollService, asynqClient *asynq.Client) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService, asynqClient: asynqClient}
}

// GeneratePayslip generates or refreshes one user's payslip
// POST /api/v1/payroll/payslips/:user_id?period=YYYY-MM
func (h *PayrollHandler) GeneratePayslip(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	period := c.Query("period", "")
	if period == "" {
		return c.Status(400).JSON(fiber.Map{"error": "period query parameter is required"})
	}

	generatorID := c.Locals("user_id")
	if generatorID == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	payslip, err := h.payrollService.GeneratePayslip(userID, period, generatorID.(string))
	if err != nil {
		if errors.Is(err, service.ErrPayslipImmutable) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Payslip generated",
		"data":    payslip,
	})
}

// GeneratePeriod starts a payroll run for every active user. With a
// queue configured the run happens in the background worker.
// POST /api/v1/payroll/runs?period=YYYY-MM
func (h *PayrollHandler) GeneratePeriod(c *fiber.Ctx) error {
	period := c.Query("period", "")
	if period == "" {
		return c.Status(400).JSON(fiber.Map{"error": "period query parameter is required"})
	}

	generatorID := c.Locals("user_id")
	if generatorID == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if h.asynqClient != nil {
		task, err := jobs.NewPayrollGenerateTask(period, generatorID.(string))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to build payroll task"})
		}
		info, err := h.asynqClient.Enqueue(task)
		if err != nil {
			log.Printf("Failed to enqueue payroll run, falling back to inline: %v", err)
		} else {
			return c.Status(202).JSON(fiber.Map{
				"message": "Payroll run queued",
				"task_id": info.ID,
				"period":  period,
			})
		}
	}

	generated, err := h.payrollService.GeneratePeriod(period, generatorID.(string))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error(), "generated": generated})
	}

	return c.JSON(fiber.Map{
		"message":   "Payroll run completed",
		"generated": generated,
		"period":    period,
	})
}

// MarkPaid finalizes a payslip
// PUT /api/v1/payroll/payslips/:id/paid
func (h *PayrollHandler) MarkPaid(c *fiber.Ctx) error {
	payslipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid payslip ID"})
	}

	updaterID := c.Locals("user_id")
	if updaterID == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	payslip, err := h.payrollService.MarkPaid(payslipID, updaterID.(string))
	if err != nil {
		if errors.Is(err, service.ErrPayslipNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, service.ErrPayslipAlreadyPaid) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Payslip marked paid",
		"data":    payslip,
	})
}

// GetMyPayslips lists the caller's payslips
// GET /api/v1/payroll/payslips/me
func (h *PayrollHandler) GetMyPayslips(c *fiber.Ctx) error {
	userID, err := requesterID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	payslips, err := h.payrollService.GetUserPayslips(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":  payslips,
		"total": len(payslips),
	})
}

// GetPeriodPayslips lists every payslip in a period
// GET /api/v1/payroll/payslips?period=YYYY-MM
func (h *PayrollHandler) GetPeriodPayslips(c *fiber.Ctx) error {
	period := c.Query("period", "")
	if period == "" {
		return c.Status(400).JSON(fiber.Map{"error": "period query parameter is required"})
	}

	payslips, err := h.payrollService.GetPeriodPayslips(period)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":   payslips,
		"period": period,
		"total":  len(payslips),
	})
}
