package handler

import (
	"errors"

	"go-hris-suite/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LearningHandler struct {
	learningService service.LearningService
}

func NewLearningHandler(learningService service.LearningService) *LearningHandler {
	return &LearningHandler{learningService: learningService}
}

// CreateCourse handles course creation
// POST /api/v1/learning/courses
func (h *LearningHandler) CreateCourse(c *fiber.Ctx) error {
	var req service.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	creatorID := c.Locals("user_id")
	if creatorID == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	course, err := h.learningService.CreateCourse(&req, creatorID.(string))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Course created successfully",
		"data":    course,
	})
}

// GetCourses lists all courses
// GET /api/v1/learning/courses
func (h *LearningHandler) GetCourses(c *fiber.Ctx) error {
	courses, err := h.learningService.GetCourses()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":  courses,
		"total": len(courses),
	})
}

// CreateQuiz attaches a quiz to a course
// POST /api/v1/learning/quizzes
func (h *LearningHandler) CreateQuiz(c *fiber.Ctx) error {
	var req service.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	creatorID := c.Locals("user_id")
	if creatorID == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	quiz, err := h.learningService.CreateQuiz(&req, creatorID.(string))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Quiz created successfully",
		"data":    quiz,
	})
}

// Enroll signs the caller up for a course
// POST /api/v1/learning/courses/:id/enroll
func (h *LearningHandler) Enroll(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid course ID"})
	}

	userID, err := requesterID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	enrollment, err := h.learningService.Enroll(courseID, userID)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, service.ErrAlreadyEnrolled) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Enrolled successfully",
		"data":    enrollment,
	})
}

// GetMyEnrollments lists the caller's enrollments
// GET /api/v1/learning/enrollments/me
func (h *LearningHandler) GetMyEnrollments(c *fiber.Ctx) error {
	userID, err := requesterID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	enrollments, err := h.learningService.GetUserEnrollments(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":  enrollments,
		"total": len(enrollments),
	})
}

// SubmitQuizRequest represents the quiz submission body
type SubmitQuizRequest struct {
	Answers []int `json:"answers"`
}

// SubmitQuiz scores a quiz attempt for the caller
// POST /api/v1/learning/quizzes/:id/submit
func (h *LearningHandler) SubmitQuiz(c *fiber.Ctx) error {
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid quiz ID"})
	}

	userID, err := requesterID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	submission, err := h.learningService.SubmitQuiz(quizID, userID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuizNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrNotEnrolled):
			return c.Status(403).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Quiz submitted",
		"data":    submission,
	})
}

// SetCompetencyRequest represents the competency upsert body
type SetCompetencyRequest struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// SetCompetency records or updates a user's competency level
// PUT /api/v1/learning/competencies/:user_id
func (h *LearningHandler) SetCompetency(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	updaterID := c.Locals("user_id")
	if updaterID == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req SetCompetencyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	competency, err := h.learningService.SetCompetency(userID, req.Name, req.Level, updaterID.(string))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Competency recorded",
		"data":    competency,
	})
}

// GetCompetencies lists a user's competencies
// GET /api/v1/learning/competencies/:user_id
func (h *LearningHandler) GetCompetencies(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	competencies, err := h.learningService.GetUserCompetencies(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":  competencies,
		"total": len(competencies),
	})
}

// CompetencyGapsRequest represents a requirement map to compare against
type CompetencyGapsRequest struct {
	Required map[string]int `json:"required"`
}

// GetCompetencyGaps reports where a user falls short of a requirement
// POST /api/v1/learning/competencies/:user_id/gaps
func (h *LearningHandler) GetCompetencyGaps(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req CompetencyGapsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	gaps, err := h.learningService.CompetencyGaps(userID, req.Required)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":  gaps,
		"total": len(gaps),
	})
}
