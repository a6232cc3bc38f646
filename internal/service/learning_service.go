package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"go-hris-suite/internal/model"
	"go-hris-suite/internal/repository"
	"go-hris-suite/pkg/validator"
)

var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrNotEnrolled         = errors.New("user is not enrolled in this course")
	ErrAlreadyEnrolled     = errors.New("user is already enrolled in this course")
	ErrAnswerCountMismatch = errors.New("answer count does not match question count")
	ErrEmptyQuiz           = errors.New("quiz has no questions")
)

type LearningService interface {
	CreateCourse(req *CreateCourseRequest, creatorID string) (*model.Course, error)
	GetCourses() ([]model.Course, error)
	CreateQuiz(req *CreateQuizRequest, creatorID string) (*model.Quiz, error)

	Enroll(courseID, userID uuid.UUID) (*model.Enrollment, error)
	GetUserEnrollments(userID uuid.UUID) ([]model.Enrollment, error)

	SubmitQuiz(quizID, userID uuid.UUID, answers []int) (*model.QuizSubmission, error)

	SetCompetency(userID uuid.UUID, name string, level int, updaterID string) (*model.Competency, error)
	GetUserCompetencies(userID uuid.UUID) ([]model.Competency, error)
	CompetencyGaps(userID uuid.UUID, required map[string]int) ([]CompetencyGap, error)
}

type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type CreateQuizRequest struct {
	CourseID  string              `json:"course_id" validate:"required"`
	Title     string              `json:"title" validate:"required"`
	Questions []QuizQuestionInput `json:"questions" validate:"required,min=1,dive"`
}

type QuizQuestionInput struct {
	Prompt       string   `json:"prompt" validate:"required"`
	Options      []string `json:"options" validate:"required,min=2"`
	CorrectIndex int      `json:"correct_index" validate:"min=0"`
}

// CompetencyGap reports how far a user's level is below a requirement.
type CompetencyGap struct {
	Name     string `json:"name"`
	Required int    `json:"required"`
	Current  int    `json:"current"`
	Gap      int    `json:"gap"`
}

type learningService struct {
	learningRepo repository.LearningRepository
	userRepo     repository.UserRepository
	now          func() time.Time
}

func NewLearningService(learningRepo repository.LearningRepository, userRepo repository.UserRepository) LearningService {
	return &learningService{
		learningRepo: learningRepo,
		userRepo:     userRepo,
		now:          time.Now,
	}
}

func (s *learningService) CreateCourse(req *CreateCourseRequest, creatorID string) (*model.Course, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
	}
	course.CreatedBy = creatorID
	course.UpdatedBy = creatorID

	if err := s.learningRepo.CreateCourse(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *learningService) GetCourses() ([]model.Course, error) {
	return s.learningRepo.FindCourses()
}

func (s *learningService) CreateQuiz(req *CreateQuizRequest, creatorID string) (*model.Quiz, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return nil, errors.New("invalid course_id")
	}
	if _, err := s.learningRepo.FindCourseByID(courseID); err != nil {
		return nil, ErrCourseNotFound
	}

	quiz := &model.Quiz{
		CourseID: courseID,
		Title:    req.Title,
	}
	quiz.CreatedBy = creatorID
	quiz.UpdatedBy = creatorID

	for _, q := range req.Questions {
		if q.CorrectIndex >= len(q.Options) {
			return nil, errors.New("correct_index out of range")
		}
		options, err := json.Marshal(q.Options)
		if err != nil {
			return nil, err
		}
		question := model.QuizQuestion{
			Prompt:       q.Prompt,
			Options:      string(options),
			CorrectIndex: q.CorrectIndex,
		}
		question.CreatedBy = creatorID
		question.UpdatedBy = creatorID
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := s.learningRepo.CreateQuiz(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *learningService) Enroll(courseID, userID uuid.UUID) (*model.Enrollment, error) {
	if _, err := s.learningRepo.FindCourseByID(courseID); err != nil {
		return nil, ErrCourseNotFound
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, ErrUserNotFound
	}
	if existing, _ := s.learningRepo.FindEnrollment(courseID, userID); existing != nil {
		return nil, ErrAlreadyEnrolled
	}

	enrollment := &model.Enrollment{
		CourseID: courseID,
		UserID:   userID,
	}
	enrollment.CreatedBy = userID.String()
	enrollment.UpdatedBy = userID.String()

	if err := s.learningRepo.CreateEnrollment(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *learningService) GetUserEnrollments(userID uuid.UUID) ([]model.Enrollment, error) {
	return s.learningRepo.FindEnrollmentsByUser(userID)
}

// scoreQuiz computes percent correct, rounded down.
func scoreQuiz(questions []model.QuizQuestion, answers []int) (int, error) {
	if len(questions) == 0 {
		return 0, ErrEmptyQuiz
	}
	if len(answers) != len(questions) {
		return 0, ErrAnswerCountMismatch
	}

	correct := 0
	for i, question := range questions {
		if answers[i] == question.CorrectIndex {
			correct++
		}
	}
	return correct * 100 / len(questions), nil
}

func (s *learningService) SubmitQuiz(quizID, userID uuid.UUID, answers []int) (*model.QuizSubmission, error) {
	quiz, err := s.learningRepo.FindQuizByID(quizID)
	if err != nil {
		return nil, ErrQuizNotFound
	}

	enrollment, err := s.learningRepo.FindEnrollment(quiz.CourseID, userID)
	if err != nil {
		return nil, ErrNotEnrolled
	}

	score, err := scoreQuiz(quiz.Questions, answers)
	if err != nil {
		return nil, err
	}

	answersJSON, _ := json.Marshal(answers)
	submission := &model.QuizSubmission{
		QuizID:  quizID,
		UserID:  userID,
		Score:   score,
		Answers: string(answersJSON),
	}
	submission.CreatedBy = userID.String()
	submission.UpdatedBy = userID.String()

	if err := s.learningRepo.CreateSubmission(submission); err != nil {
		return nil, err
	}

	// Track best score; a passing attempt completes the enrollment.
	if score > enrollment.BestScore {
		enrollment.BestScore = score
	}
	if score >= model.PassingScore && enrollment.CompletedAt == nil {
		now := s.now()
		enrollment.CompletedAt = &now
	}
	enrollment.UpdatedBy = userID.String()
	if err := s.learningRepo.UpdateEnrollment(enrollment); err != nil {
		return nil, err
	}

	return submission, nil
}

func (s *learningService) SetCompetency(userID uuid.UUID, name string, level int, updaterID string) (*model.Competency, error) {
	if name == "" {
		return nil, errors.New("competency name is required")
	}
	if level < 1 || level > 5 {
		return nil, errors.New("level must be between 1 and 5")
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, ErrUserNotFound
	}

	competency := &model.Competency{
		UserID: userID,
		Name:   name,
		Level:  level,
	}
	competency.CreatedBy = updaterID
	competency.UpdatedBy = updaterID

	if err := s.learningRepo.UpsertCompetency(competency); err != nil {
		return nil, err
	}
	return competency, nil
}

func (s *learningService) GetUserCompetencies(userID uuid.UUID) ([]model.Competency, error) {
	return s.learningRepo.FindCompetenciesByUser(userID)
}

// CompetencyGaps compares the user's levels against a requirement map
// and reports only the shortfalls.
func (s *learningService) CompetencyGaps(userID uuid.UUID, required map[string]int) ([]CompetencyGap, error) {
	competencies, err := s.learningRepo.FindCompetenciesByUser(userID)
	if err != nil {
		return nil, err
	}

	levels := make(map[string]int, len(competencies))
	for _, competency := range competencies {
		levels[competency.Name] = competency.Level
	}

	var gaps []CompetencyGap
	for name, want := range required {
		have := levels[name]
		if have < want {
			gaps = append(gaps, CompetencyGap{
				Name:     name,
				Required: want,
				Current:  have,
				Gap:      want - have,
			})
		}
	}
	return gaps, nil
}
