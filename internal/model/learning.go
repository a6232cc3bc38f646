package model

import (
	"time"

	"github.com/google/uuid"
)

// PassingScore is the minimum quiz score (percent) that completes an
// enrollment.
const PassingScore = 70

// Course is a training course in the learning module
type Course struct {
	BaseModel
	Title       string `gorm:"type:varchar(150);not null" json:"title" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
	Quizzes     []Quiz `gorm:"foreignKey:CourseID" json:"quizzes,omitempty"`
}

// TableName specifies the table name for GORM
func (Course) TableName() string {
	return "courses"
}

// Quiz belongs to a course and holds single-choice questions
type Quiz struct {
	BaseModel
	CourseID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"course_id"`
	Title     string         `gorm:"type:varchar(150);not null" json:"title" validate:"required"`
	Questions []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

// TableName specifies the table name for GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion is a single-choice question. Options are stored as
// JSON; CorrectIndex points into that array and is never serialized to
// quiz takers.
type QuizQuestion struct {
	BaseModel
	QuizID       uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Prompt       string    `gorm:"type:text;not null" json:"prompt" validate:"required"`
	Options      string    `gorm:"type:jsonb;not null" json:"options"` // JSON array of strings
	CorrectIndex int       `gorm:"not null" json:"-"`
}

// TableName specifies the table name for GORM
func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizSubmission records a scored attempt
type QuizSubmission struct {
	BaseModel
	QuizID  uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Score   int       `gorm:"not null" json:"score"` // Percent correct, 0..100
	Answers string    `gorm:"type:jsonb" json:"answers"`
}

// TableName specifies the table name for GORM
func (QuizSubmission) TableName() string {
	return "quiz_submissions"
}

// Enrollment links a user to a course and tracks completion
type Enrollment struct {
	BaseModel
	CourseID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_course_user" json:"course_id"`
	Course      *Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_course_user" json:"user_id"`
	BestScore   int        `gorm:"default:0" json:"best_score"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TableName specifies the table name for GORM
func (Enrollment) TableName() string {
	return "enrollments"
}

// Competency is a named skill level held by a user, maintained by HR
type Competency struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_competency_user_name" json:"user_id"`
	Name   string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_competency_user_name" json:"name" validate:"required"`
	Level  int       `gorm:"not null" json:"level" validate:"required,min=1,max=5"`
}

// TableName specifies the table name for GORM
func (Competency) TableName() string {
	return "competencies"
}
