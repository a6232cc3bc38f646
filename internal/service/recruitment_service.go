package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"go-hris-suite/internal/model"
	"go-hris-suite/internal/repository"
	"go-hris-suite/pkg/validator"
)

var (
	ErrPostingNotFound       = errors.New("job posting not found")
	ErrPostingClosed         = errors.New("job posting is closed")
	ErrApplicationNotFound   = errors.New("application not found")
	ErrInvalidStage          = errors.New("invalid application stage")
	ErrBackwardStageMove     = errors.New("applications cannot move backward in the pipeline")
	ErrApplicationTerminal   = errors.New("application is already in a terminal stage")
	ErrEvaluationStageClosed = errors.New("evaluations are only accepted at the interview stage")
)

type RecruitmentService interface {
	CreatePosting(req *CreatePostingRequest, creatorID string) (*model.JobPosting, error)
	ClosePosting(postingID uuid.UUID, updaterID string) (*model.JobPosting, error)
	GetPostings(status string) ([]model.JobPosting, error)

	SubmitApplication(req *SubmitApplicationRequest) (*model.Application, error)
	AdvanceApplication(applicationID uuid.UUID, targetStage string, updaterID string) (*model.Application, error)
	GetApplications(postingID uuid.UUID) ([]model.Application, error)

	AddEvaluation(applicationID uuid.UUID, evaluatorID uuid.UUID, score int, notes string) (*model.Evaluation, error)
	AverageScore(applicationID uuid.UUID) (float64, error)
}

type CreatePostingRequest struct {
	Title        string  `json:"title" validate:"required"`
	DepartmentID *string `json:"department_id"`
	Description  string  `json:"description"`
}

type SubmitApplicationRequest struct {
	PostingID      string `json:"posting_id" validate:"required"`
	ApplicantName  string `json:"applicant_name" validate:"required"`
	ApplicantEmail string `json:"applicant_email" validate:"required,email"`
	ResumeURL      string `json:"resume_url"`
}

type recruitmentService struct {
	recruitmentRepo repository.RecruitmentRepository
	departmentRepo  repository.DepartmentRepository
}

func NewRecruitmentService(recruitmentRepo repository.RecruitmentRepository,
	departmentRepo repository.DepartmentRepository) RecruitmentService {
	return &recruitmentService{
		recruitmentRepo: recruitmentRepo,
		departmentRepo:  departmentRepo,
	}
}

func (s *recruitmentService) CreatePosting(req *CreatePostingRequest, creatorID string) (*model.JobPosting, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	posting := &model.JobPosting{
		Title:       req.Title,
		Description: req.Description,
		Status:      model.PostingOpen,
	}
	if req.DepartmentID != nil && *req.DepartmentID != "" {
		id, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return nil, errors.New("invalid department_id")
		}
		if _, err := s.departmentRepo.FindByID(id); err != nil {
			return nil, ErrDepartmentNotFound
		}
		posting.DepartmentID = &id
	}
	posting.CreatedBy = creatorID
	posting.UpdatedBy = creatorID

	if err := s.recruitmentRepo.CreatePosting(posting); err != nil {
		return nil, err
	}
	return posting, nil
}

func (s *recruitmentService) ClosePosting(postingID uuid.UUID, updaterID string) (*model.JobPosting, error) {
	posting, err := s.recruitmentRepo.FindPostingByID(postingID)
	if err != nil {
		return nil, ErrPostingNotFound
	}

	posting.Status = model.PostingClosed
	posting.UpdatedBy = updaterID
	if err := s.recruitmentRepo.UpdatePosting(posting); err != nil {
		return nil, err
	}
	return posting, nil
}

func (s *recruitmentService) GetPostings(status string) ([]model.JobPosting, error) {
	if status == "" {
		return s.recruitmentRepo.FindPostings(nil)
	}
	ps := model.PostingStatus(status)
	if ps != model.PostingOpen && ps != model.PostingClosed {
		return nil, errors.New("invalid posting status filter")
	}
	return s.recruitmentRepo.FindPostings(&ps)
}

func (s *recruitmentService) SubmitApplication(req *SubmitApplicationRequest) (*model.Application, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	postingID, err := uuid.Parse(req.PostingID)
	if err != nil {
		return nil, errors.New("invalid posting_id")
	}
	posting, err := s.recruitmentRepo.FindPostingByID(postingID)
	if err != nil {
		return nil, ErrPostingNotFound
	}
	if posting.Status != model.PostingOpen {
		return nil, ErrPostingClosed
	}

	application := &model.Application{
		PostingID:      postingID,
		ApplicantName:  req.ApplicantName,
		ApplicantEmail: req.ApplicantEmail,
		ResumeURL:      req.ResumeURL,
		Stage:          model.StageApplied,
	}
	application.CreatedBy = "applicant"
	application.UpdatedBy = "applicant"

	if err := s.recruitmentRepo.CreateApplication(application); err != nil {
		return nil, err
	}
	return application, nil
}

// AdvanceApplication moves an application along the stage ladder. Only
// forward moves are allowed; rejected is reachable from any non-terminal
// stage.
func (s *recruitmentService) AdvanceApplication(applicationID uuid.UUID, targetStage string, updaterID string) (*model.Application, error) {
	application, err := s.recruitmentRepo.FindApplicationByID(applicationID)
	if err != nil {
		return nil, ErrApplicationNotFound
	}

	target := model.ApplicationStage(targetStage)
	if application.Stage == model.StageHired || application.Stage == model.StageRejected {
		return nil, ErrApplicationTerminal
	}

	if target == model.StageRejected {
		application.Stage = model.StageRejected
	} else {
		targetOrder, ok := model.StageOrder[target]
		if !ok {
			return nil, ErrInvalidStage
		}
		if targetOrder <= model.StageOrder[application.Stage] {
			return nil, ErrBackwardStageMove
		}
		application.Stage = target
	}

	application.UpdatedBy = updaterID
	if err := s.recruitmentRepo.UpdateApplication(application); err != nil {
		return nil, err
	}
	return application, nil
}

func (s *recruitmentService) GetApplications(postingID uuid.UUID) ([]model.Application, error) {
	if _, err := s.recruitmentRepo.FindPostingByID(postingID); err != nil {
		return nil, ErrPostingNotFound
	}
	return s.recruitmentRepo.FindApplicationsByPosting(postingID)
}

func (s *recruitmentService) AddEvaluation(applicationID uuid.UUID, evaluatorID uuid.UUID, score int, notes string) (*model.Evaluation, error) {
	if score < 1 || score > 5 {
		return nil, errors.New("score must be between 1 and 5")
	}

	application, err := s.recruitmentRepo.FindApplicationByID(applicationID)
	if err != nil {
		return nil, ErrApplicationNotFound
	}
	if application.Stage != model.StageInterview {
		return nil, ErrEvaluationStageClosed
	}

	evaluation := &model.Evaluation{
		ApplicationID: applicationID,
		EvaluatorID:   evaluatorID,
		Score:         score,
		Notes:         notes,
	}
	evaluation.CreatedBy = evaluatorID.String()
	evaluation.UpdatedBy = evaluatorID.String()

	if err := s.recruitmentRepo.CreateEvaluation(evaluation); err != nil {
		return nil, err
	}
	return evaluation, nil
}

func (s *recruitmentService) AverageScore(applicationID uuid.UUID) (float64, error) {
	evaluations, err := s.recruitmentRepo.FindEvaluationsByApplication(applicationID)
	if err != nil {
		return 0, err
	}
	if len(evaluations) == 0 {
		return 0, nil
	}

	total := 0
	for _, evaluation := range evaluations {
		total += evaluation.Score
	}
	return float64(total) / float64(len(evaluations)), nil
}
