package handler

import (
	"errors"
	"time"

	"go-hris-suite/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

func requesterID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Locals("user_id")
	if raw == nil {
		return uuid.Nil, errors.New("unauthorized")
	}
	return uuid.Parse(raw.(string))
}

// CheckIn records the caller's check-in for today
// POST /api/v1/attendance/check-in
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	userID, err := requesterID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req struct {
		Note string `json:"note"`
	}
	// Body is optional for check-in.
	_ = c.BodyParser(&req)

	record, err := h.attendanceService.CheckIn(userID, req.Note)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyCheckedIn) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Checked in",
		"data":    record,
	})
}

// CheckOut records the caller's check-out for today
// POST /api/v1/attendance/check-out
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	userID, err := requesterID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	record, err := h.attendanceService.CheckOut(userID)
	if err != nil {
		if errors.Is(err, service.ErrNotCheckedIn) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, service.ErrAlreadyCheckedOut) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Checked out",
		"data":    record,
	})
}

// GetMyAttendance lists the caller's records for a period
// GET /api/v1/attendance/me?period=YYYY-MM
func (h *AttendanceHandler) GetMyAttendance(c *fiber.Ctx) error {
	userID, err := requesterID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	period := c.Query("period", time.Now().Format("2006-01"))
	records, err := h.attendanceService.GetUserAttendance(userID, period)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":   records,
		"period": period,
		"total":  len(records),
	})
}

// GetSummary returns a user's attendance summary for a period
// GET /api/v1/attendance/summary/:user_id?period=YYYY-MM
func (h *AttendanceHandler) GetSummary(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	period := c.Query("period", time.Now().Format("2006-01"))
	summary, err := h.attendanceService.GetSummary(userID, period)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"data": summary})
}

// GetDailyOverview lists everyone's record for a day
// GET /api/v1/attendance/daily?date=YYYY-MM-DD
func (h *AttendanceHandler) GetDailyOverview(c *fiber.Ctx) error {
	date := time.Now()
	if raw := c.Query("date", ""); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date format, use YYYY-MM-DD"})
		}
		date = parsed
	}

	records, err := h.attendanceService.GetDailyOverview(date)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":  records,
		"date":  date.Format("2006-01-02"),
		"total": len(records),
	})
}
