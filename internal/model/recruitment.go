package model

import (
	"github.com/google/uuid"
)

// PostingStatus tracks whether a job posting accepts applications
type PostingStatus string

const (
	PostingOpen   PostingStatus = "open"
	PostingClosed PostingStatus = "closed"
)

// JobPosting is an open position in the hiring pipeline
type JobPosting struct {
	BaseModel
	Title        string        `gorm:"type:varchar(150);not null" json:"title" validate:"required"`
	DepartmentID *uuid.UUID    `gorm:"type:uuid;index" json:"department_id,omitempty"`
	Department   *Department   `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Description  string        `gorm:"type:text" json:"description"`
	Status       PostingStatus `gorm:"type:varchar(10);not null;default:'open';index" json:"status"`
}

// TableName specifies the table name for GORM
func (JobPosting) TableName() string {
	return "job_postings"
}

// ApplicationStage is the closed ladder an application moves through.
// Transitions only go forward, or to rejected from any stage.
type ApplicationStage string

const (
	StageApplied   ApplicationStage = "applied"
	StageScreening ApplicationStage = "screening"
	StageInterview ApplicationStage = "interview"
	StageOffer     ApplicationStage = "offer"
	StageHired     ApplicationStage = "hired"
	StageRejected  ApplicationStage = "rejected"
)

// StageOrder gives each forward stage its position in the ladder.
// Rejected is terminal and deliberately absent.
var StageOrder = map[ApplicationStage]int{
	StageApplied:   0,
	StageScreening: 1,
	StageInterview: 2,
	StageOffer:     3,
	StageHired:     4,
}

// Application is one candidate's progress against a posting
type Application struct {
	BaseModel
	PostingID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"posting_id"`
	Posting        *JobPosting      `gorm:"foreignKey:PostingID" json:"posting,omitempty"`
	ApplicantName  string           `gorm:"type:varchar(255);not null" json:"applicant_name" validate:"required"`
	ApplicantEmail string           `gorm:"type:varchar(255);not null;index" json:"applicant_email" validate:"required,email"`
	ResumeURL      string           `gorm:"type:text" json:"resume_url,omitempty"`
	Stage          ApplicationStage `gorm:"type:varchar(10);not null;default:'applied';index" json:"stage"`
	Evaluations    []Evaluation     `gorm:"foreignKey:ApplicationID" json:"evaluations,omitempty"`
}

// TableName specifies the table name for GORM
func (Application) TableName() string {
	return "applications"
}

// Evaluation is one evaluator's interview assessment of an application
type Evaluation struct {
	BaseModel
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;index" json:"application_id"`
	EvaluatorID   uuid.UUID `gorm:"type:uuid;not null" json:"evaluator_id"`
	Evaluator     *User     `gorm:"foreignKey:EvaluatorID" json:"evaluator,omitempty"`
	Score         int       `gorm:"not null" json:"score" validate:"required,min=1,max=5"`
	Notes         string    `gorm:"type:text" json:"notes"`
}

// TableName specifies the table name for GORM
func (Evaluation) TableName() string {
	return "evaluations"
}
