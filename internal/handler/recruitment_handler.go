package handler

import (
	"errors"

	"go-hris-suite/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RecruitmentHandler struct {
	recruitmentService service.RecruitmentService
}

func NewRecruitmentHandler(recruitmentService service.RecruitmentService) *RecruitmentHandler {
	return &RecruitmentHandler{recruitmentService: recruitmentService}
}

// CreatePosting opens a new job posting
// POST /api/v1/hiring/postings
func (h *RecruitmentHandler) CreatePosting(c *fiber.Ctx) error {
	var req service.CreatePostingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	creatorID := c.Locals("user_id")
	if creatorID == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	posting, err := h.recruitmentService.CreatePosting(&req, creatorID.(string))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Posting created successfully",
		"data":    posting,
	})
}

// ClosePosting stops a posting from accepting applications
// PUT /api/v1/hiring/postings/:id/close
func (h *RecruitmentHandler) ClosePosting(c *fiber.Ctx) error {
	postingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid posting ID"})
	}

	updaterID := c.Locals("user_id")
	if updaterID == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	posting, err := h.recruitmentService.ClosePosting(postingID, updaterID.(string))
	if err != nil {
		if errors.Is(err, service.ErrPostingNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Posting closed",
		"data":    posting,
	})
}

// GetPostings lists postings, optionally filtered by status
// GET /api/v1/hiring/postings?status=open|closed
func (h *RecruitmentHandler) GetPostings(c *fiber.Ctx) error {
	postings, err := h.recruitmentService.GetPostings(c.Query("status", ""))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":  postings,
		"total": len(postings),
	})
}

// SubmitApplication records a candidate application. This endpoint is
// public; applicants have no account.
// POST /api/v1/hiring/applications
func (h *RecruitmentHandler) SubmitApplication(c *fiber.Ctx) error {
	var req service.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	application, err := h.recruitmentService.SubmitApplication(&req)
	if err != nil {
		if errors.Is(err, service.ErrPostingNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, service.ErrPostingClosed) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Application submitted",
		"data":    application,
	})
}

// AdvanceRequest represents the stage transition body
type AdvanceRequest struct {
	Stage string `json:"stage"`
}

// AdvanceApplication moves an application along the pipeline
// PUT /api/v1/hiring/applications/:id/stage
func (h *RecruitmentHandler) AdvanceApplication(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid application ID"})
	}

	var req AdvanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updaterID := c.Locals("user_id")
	if updaterID == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	application, err := h.recruitmentService.AdvanceApplication(applicationID, req.Stage, updaterID.(string))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrApplicationNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrBackwardStageMove),
			errors.Is(err, service.ErrApplicationTerminal):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Application advanced",
		"data":    application,
	})
}

// GetApplications lists applications for a posting
// GET /api/v1/hiring/postings/:id/applications
func (h *RecruitmentHandler) GetApplications(c *fiber.Ctx) error {
	postingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid posting ID"})
	}

	applications, err := h.recruitmentService.GetApplications(postingID)
	if err != nil {
		if errors.Is(err, service.ErrPostingNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":  applications,
		"total": len(applications),
	})
}

// EvaluationRequest represents the interview evaluation body
type EvaluationRequest struct {
	Score int    `json:"score"`
	Notes string `json:"notes"`
}

// AddEvaluation records an interview evaluation by the caller
// POST /api/v1/hiring/applications/:id/evaluations
func (h *RecruitmentHandler) AddEvaluation(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid application ID"})
	}

	evaluatorID, err := requesterID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req EvaluationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	evaluation, err := h.recruitmentService.AddEvaluation(applicationID, evaluatorID, req.Score, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrApplicationNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, service.ErrEvaluationStageClosed) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Evaluation recorded",
		"data":    evaluation,
	})
}

// GetAverageScore reports the mean interview score for an application
// GET /api/v1/hiring/applications/:id/score
func (h *RecruitmentHandler) GetAverageScore(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid application ID"})
	}

	average, err := h.recruitmentService.AverageScore(applicationID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"application_id": applicationID.String(),
		"average_score":  average,
	})
}
