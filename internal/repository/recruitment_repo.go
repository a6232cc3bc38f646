package repository

import (
	"go-hris-suite/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecruitmentRepository interface {
	// Postings
	CreatePosting(posting *model.JobPosting) error
	UpdatePosting(posting *model.JobPosting) error
	FindPostingByID(id uuid.UUID) (*model.JobPosting, error)
	FindPostings(status *model.PostingStatus) ([]model.JobPosting, error)

	// Applications
	CreateApplication(application *model.Application) error
	UpdateApplication(application *model.Application) error
	FindApplicationByID(id uuid.UUID) (*model.Application, error)
	FindApplicationsByPosting(postingID uuid.UUID) ([]model.Application, error)
	FindApplicationsByStage(stage model.ApplicationStage) ([]model.Application, error)

	// Evaluations
	CreateEvaluation(evaluation *model.Evaluation) error
	FindEvaluationsByApplication(applicationID uuid.UUID) ([]model.Evaluation, error)
}

type recruitmentRepo struct {
	db *gorm.DB
}

func NewRecruitmentRepo(db *gorm.DB) RecruitmentRepository {
	return &recruitmentRepo{db}
}

func (r *recruitmentRepo) CreatePosting(posting *model.JobPosting) error {
	return r.db.Create(posting).Error
}

func (r *recruitmentRepo) UpdatePosting(posting *model.JobPosting) error {
	return r.db.Save(posting).Error
}

func (r *recruitmentRepo) FindPostingByID(id uuid.UUID) (*model.JobPosting, error) {
	var posting model.JobPosting
	if err := r.db.Preload("Department").First(&posting, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &posting, nil
}

func (r *recruitmentRepo) FindPostings(status *model.PostingStatus) ([]model.JobPosting, error) {
	var postings []model.JobPosting
	query := r.db.Preload("Department").Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Find(&postings).Error
	return postings, err
}

func (r *recruitmentRepo) CreateApplication(application *model.Application) error {
	return r.db.Create(application).Error
}

func (r *recruitmentRepo) UpdateApplication(application *model.Application) error {
	return r.db.Save(application).Error
}

func (r *recruitmentRepo) FindApplicationByID(id uuid.UUID) (*model.Application, error) {
	var application model.Application
	if err := r.db.Preload("Posting").Preload("Evaluations").Preload("Evaluations.Evaluator").
		First(&application, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *recruitmentRepo) FindApplicationsByPosting(postingID uuid.UUID) ([]model.Application, error) {
	var applications []model.Application
	err := r.db.Preload("Evaluations").Where("posting_id = ?", postingID).
		Order("created_at").Find(&applications).Error
	return applications, err
}

func (r *recruitmentRepo) FindApplicationsByStage(stage model.ApplicationStage) ([]model.Application, error) {
	var applications []model.Application
	err := r.db.Preload("Posting").Where("stage = ?", stage).Find(&applications).Error
	return applications, err
}

func (r *recruitmentRepo) CreateEvaluation(evaluation *model.Evaluation) error {
	return r.db.Create(evaluation).Error
}

func (r *recruitmentRepo) FindEvaluationsByApplication(applicationID uuid.UUID) ([]model.Evaluation, error) {
	var evaluations []model.Evaluation
	err := r.db.Preload("Evaluator").Where("application_id = ?", applicationID).Find(&evaluations).Error
	return evaluations, err
}
