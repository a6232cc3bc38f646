package handler

import (
	"errors"
	"time"

	"go-hris-suite/internal/model"
	"go-hris-suite/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// CreateSchedule handles schedule creation
// POST /api/v1/schedules
func (h *ScheduleHandler) CreateSchedule(c *fiber.Ctx) error {
	var req service.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	creatorID := c.Locals("user_id")
	if creatorID == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	schedule, err := h.scheduleService.CreateSchedule(&req, creatorID.(string))
	if err != nil {
		if errors.Is(err, service.ErrScheduleConflict) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Schedule created successfully",
		"data":    schedule.ToResponse(),
	})
}

// UpdateSchedule handles schedule update
// PUT /api/v1/schedules/:id
func (h *ScheduleHandler) UpdateSchedule(c *fiber.Ctx) error {
	scheduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid schedule ID"})
	}

	var req service.UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updaterID := c.Locals("user_id")
	if updaterID == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	schedule, err := h.scheduleService.UpdateSchedule(scheduleID, &req, updaterID.(string))
	if err != nil {
		if errors.Is(err, service.ErrScheduleNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, service.ErrScheduleConflict) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Schedule updated successfully",
		"data":    schedule.ToResponse(),
	})
}

// DeleteSchedule handles schedule deletion
// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) DeleteSchedule(c *fiber.Ctx) error {
	scheduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid schedule ID"})
	}

	deleterID := c.Locals("user_id")
	if deleterID == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := h.scheduleService.DeleteSchedule(scheduleID, deleterID.(string)); err != nil {
		if errors.Is(err, service.ErrScheduleNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Schedule deleted successfully"})
}

// canViewAllSchedules reports whether the caller may see schedules
// other than their own. Schedule managers and attendance overseers
// both qualify.
func canViewAllSchedules(c *fiber.Ctx) bool {
	privileges, ok := c.Locals("user_privileges").([]string)
	if !ok {
		return false
	}
	for _, p := range privileges {
		if p == "schedule:create" || p == "attendance:view_all" {
			return true
		}
	}
	return false
}

// GetSchedule handles getting a single schedule by ID
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) GetSchedule(c *fiber.Ctx) error {
	scheduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid schedule ID"})
	}

	rID := c.Locals("user_id")
	if rID == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	schedule, err := h.scheduleService.GetScheduleByID(scheduleID, rID.(string), canViewAllSchedules(c))
	if err != nil {
		if errors.Is(err, service.ErrUnauthorizedScheduleView) {
			return c.Status(403).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"data": schedule})
}

// GetSchedules handles getting schedules with view type filter
// GET /api/v1/schedules?view_type=daily|weekly|monthly|all&reference_date=YYYY-MM-DD
func (h *ScheduleHandler) GetSchedules(c *fiber.Ctx) error {
	rID := c.Locals("user_id")
	if rID == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	viewType := c.Query("view_type", string(model.ViewTypeAll))

	referenceDate := time.Now()
	if raw := c.Query("reference_date", ""); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid reference_date format, use YYYY-MM-DD"})
		}
		referenceDate = parsed
	}

	schedules, err := h.scheduleService.GetSchedules(rID.(string), canViewAllSchedules(c), viewType, referenceDate)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":           schedules,
		"view_type":      viewType,
		"reference_date": referenceDate.Format("2006-01-02"),
		"total":          len(schedules),
	})
}

// GetSchedulesByUser handles getting schedules for a specific user
// GET /api/v1/schedules/user/:user_id
func (h *ScheduleHandler) GetSchedulesByUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	rID := c.Locals("user_id")
	if rID == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	schedules, err := h.scheduleService.GetSchedulesByUser(userID, rID.(string), canViewAllSchedules(c))
	if err != nil {
		if errors.Is(err, service.ErrUnauthorizedScheduleView) {
			return c.Status(403).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":    schedules,
		"user_id": userID.String(),
		"total":   len(schedules),
	})
}
