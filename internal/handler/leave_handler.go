package handler

import (
	"errors"
	"time"

	"go-hris-suite/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LeaveHandler struct {
	leaveService service.LeaveService
}

func NewLeaveHandler(leaveService service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

// RequestLeave submits a leave request for the caller
// POST /api/v1/leaves
func (h *LeaveHandler) RequestLeave(c *fiber.Ctx) error {
	userID, err := requesterID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req service.LeaveRequestInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	request, err := h.leaveService.RequestLeave(&req, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLeaveOverlap):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrInsufficientBalance):
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Leave request submitted",
		"data":    request,
	})
}

// DecideRequest represents the approval decision body
type DecideRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// Decide approves or rejects a pending leave request
// PUT /api/v1/leaves/:id/decision
func (h *LeaveHandler) Decide(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid leave request ID"})
	}

	deciderID, err := requesterID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req DecideRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	request, err := h.leaveService.Decide(requestID, req.Approve, req.Note, deciderID)
	if err != nil {
		if errors.Is(err, service.ErrLeaveNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, service.ErrLeaveAlreadyDecided) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Leave request decided",
		"data":    request,
	})
}

// GetMyLeaves lists the caller's leave requests
// GET /api/v1/leaves/me
func (h *LeaveHandler) GetMyLeaves(c *fiber.Ctx) error {
	userID, err := requesterID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	requests, err := h.leaveService.GetUserRequests(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":  requests,
		"total": len(requests),
	})
}

// GetPending lists all pending leave requests for approvers
// GET /api/v1/leaves/pending
func (h *LeaveHandler) GetPending(c *fiber.Ctx) error {
	requests, err := h.leaveService.GetPending()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":  requests,
		"total": len(requests),
	})
}

// GetBalance reports the caller's annual leave balance
// GET /api/v1/leaves/balance?year=YYYY
func (h *LeaveHandler) GetBalance(c *fiber.Ctx) error {
	userID, err := requesterID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	year := c.QueryInt("year", time.Now().Year())
	balance, err := h.leaveService.GetBalance(userID, year)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"data": balance})
}
