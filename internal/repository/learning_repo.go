package repository

import (
	"go-hris-suite/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LearningRepository interface {
	// Courses
	CreateCourse(course *model.Course) error
	UpdateCourse(course *model.Course) error
	FindCourseByID(id uuid.UUID) (*model.Course, error)
	FindCourses() ([]model.Course, error)

	// Quizzes
	CreateQuiz(quiz *model.Quiz) error
	FindQuizByID(id uuid.UUID) (*model.Quiz, error)
	CreateSubmission(submission *model.QuizSubmission) error
	FindSubmissionsByUser(userID uuid.UUID) ([]model.QuizSubmission, error)

	// Enrollments
	CreateEnrollment(enrollment *model.Enrollment) error
	UpdateEnrollment(enrollment *model.Enrollment) error
	FindEnrollment(courseID, userID uuid.UUID) (*model.Enrollment, error)
	FindEnrollmentsByUser(userID uuid.UUID) ([]model.Enrollment, error)

	// Competencies
	UpsertCompetency(competency *model.Competency) error
	FindCompetenciesByUser(userID uuid.UUID) ([]model.Competency, error)
	DeleteCompetency(id uuid.UUID) error
}

type learningRepo struct {
	db *gorm.DB
}

func NewLearningRepo(db *gorm.DB) LearningRepository {
	return &learningRepo{db}
}

func (r *learningRepo) CreateCourse(course *model.Course) error {
	return r.db.Create(course).Error
}

func (r *learningRepo) UpdateCourse(course *model.Course) error {
	return r.db.Save(course).Error
}

func (r *learningRepo) FindCourseByID(id uuid.UUID) (*model.Course, error) {
	var course model.Course
	if err := r.db.Preload("Quizzes").First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *learningRepo) FindCourses() ([]model.Course, error) {
	var courses []model.Course
	err := r.db.Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *learningRepo) CreateQuiz(quiz *model.Quiz) error {
	return r.db.Create(quiz).Error
}

func (r *learningRepo) FindQuizByID(id uuid.UUID) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.Preload("Questions").First(&quiz, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *learningRepo) CreateSubmission(submission *model.QuizSubmission) error {
	return r.db.Create(submission).Error
}

func (r *learningRepo) FindSubmissionsByUser(userID uuid.UUID) ([]model.QuizSubmission, error) {
	var submissions []model.QuizSubmission
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&submissions).Error
	return submissions, err
}

func (r *learningRepo) CreateEnrollment(enrollment *model.Enrollment) error {
	return r.db.Create(enrollment).Error
}

func (r *learningRepo) UpdateEnrollment(enrollment *model.Enrollment) error {
	return r.db.Save(enrollment).Error
}

func (r *learningRepo) FindEnrollment(courseID, userID uuid.UUID) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.Where("course_id = ? AND user_id = ?", courseID, userID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *learningRepo) FindEnrollmentsByUser(userID uuid.UUID) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.db.Preload("Course").Where("user_id = ?", userID).Find(&enrollments).Error
	return enrollments, err
}

func (r *learningRepo) UpsertCompetency(competency *model.Competency) error {
	var existing model.Competency
	err := r.db.Where("user_id = ? AND name = ?", competency.UserID, competency.Name).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(competency).Error
	}
	if err != nil {
		return err
	}
	existing.Level = competency.Level
	existing.UpdatedBy = competency.UpdatedBy
	return r.db.Save(&existing).Error
}

func (r *learningRepo) FindCompetenciesByUser(userID uuid.UUID) ([]model.Competency, error) {
	var competencies []model.Competency
	err := r.db.Where("user_id = ?", userID).Order("name").Find(&competencies).Error
	return competencies, err
}

func (r *learningRepo) DeleteCompetency(id uuid.UUID) error {
	return r.db.Delete(&model.Competency{}, "id = ?", id).Error
}
