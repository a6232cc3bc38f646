package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hris-suite/internal/model"
)

func newRecruitmentFixture(t *testing.T) (RecruitmentService, *mockRecruitmentRepo) {
	t.Helper()
	repo := newMockRecruitmentRepo()
	return NewRecruitmentService(repo, newMockDepartmentRepo()), repo
}

func openPosting(t *testing.T, svc RecruitmentService) *model.JobPosting {
	t.Helper()
	posting, err := svc.CreatePosting(&CreatePostingRequest{Title: "Lecturer, Computer Science"}, "hr")
	require.NoError(t, err)
	return posting
}

func applyTo(t *testing.T, svc RecruitmentService, posting *model.JobPosting) *model.Application {
	t.Helper()
	application, err := svc.SubmitApplication(&SubmitApplicationRequest{
		PostingID:      posting.ID.String(),
		ApplicantName:  "Ken Adams",
		ApplicantEmail: "ken.adams@mail.test",
	})
	require.NoError(t, err)
	return application
}

func TestSubmitApplication(t *testing.T) {
	svc, _ := newRecruitmentFixture(t)
	posting := openPosting(t, svc)

	application := applyTo(t, svc, posting)
	assert.Equal(t, model.StageApplied, application.Stage)

	t.Run("closed posting refuses applications", func(t *testing.T) {
		_, err := svc.ClosePosting(posting.ID, "hr")
		require.NoError(t, err)

		_, err = svc.SubmitApplication(&SubmitApplicationRequest{
			PostingID:      posting.ID.String(),
			ApplicantName:  "Late Comer",
			ApplicantEmail: "late@mail.test",
		})
		assert.ErrorIs(t, err, ErrPostingClosed)
	})

	t.Run("missing email rejected", func(t *testing.T) {
		_, err := svc.SubmitApplication(&SubmitApplicationRequest{
			PostingID:     posting.ID.String(),
			ApplicantName: "No Email",
		})
		assert.Error(t, err)
	})
}

func TestAdvanceApplication(t *testing.T) {
	svc, _ := newRecruitmentFixture(t)
	posting := openPosting(t, svc)
	application := applyTo(t, svc, posting)

	t.Run("forward moves allowed", func(t *testing.T) {
		for _, stage := range []model.ApplicationStage{
			model.StageScreening, model.StageInterview, model.StageOffer, model.StageHired,
		} {
			advanced, err := svc.AdvanceApplication(application.ID, string(stage), "hr")
			require.NoError(t, err)
			assert.Equal(t, stage, advanced.Stage)
		}
	})

	t.Run("hired is terminal", func(t *testing.T) {
		_, err := svc.AdvanceApplication(application.ID, string(model.StageRejected), "hr")
		assert.ErrorIs(t, err, ErrApplicationTerminal)
	})
}

func TestAdvanceApplicationBackwardMove(t *testing.T) {
	svc, _ := newRecruitmentFixture(t)
	posting := openPosting(t, svc)
	application := applyTo(t, svc, posting)

	_, err := svc.AdvanceApplication(application.ID, string(model.StageInterview), "hr")
	require.NoError(t, err)

	_, err = svc.AdvanceApplication(application.ID, string(model.StageScreening), "hr")
	assert.ErrorIs(t, err, ErrBackwardStageMove)

	_, err = svc.AdvanceApplication(application.ID, string(model.StageInterview), "hr")
	assert.ErrorIs(t, err, ErrBackwardStageMove)

	_, err = svc.AdvanceApplication(application.ID, "probation", "hr")
	assert.ErrorIs(t, err, ErrInvalidStage)
}

func TestRejectFromAnyStage(t *testing.T) {
	svc, _ := newRecruitmentFixture(t)
	posting := openPosting(t, svc)

	for _, from := range []model.ApplicationStage{
		model.StageApplied, model.StageScreening, model.StageInterview, model.StageOffer,
	} {
		application := applyTo(t, svc, posting)
		if from != model.StageApplied {
			_, err := svc.AdvanceApplication(application.ID, string(from), "hr")
			require.NoError(t, err)
		}

		rejected, err := svc.AdvanceApplication(application.ID, string(model.StageRejected), "hr")
		require.NoError(t, err)
		assert.Equal(t, model.StageRejected, rejected.Stage)

		// Rejected is terminal too.
		_, err = svc.AdvanceApplication(application.ID, string(model.StageScreening), "hr")
		assert.ErrorIs(t, err, ErrApplicationTerminal)
	}
}

func TestEvaluations(t *testing.T) {
	svc, _ := newRecruitmentFixture(t)
	posting := openPosting(t, svc)
	application := applyTo(t, svc, posting)
	evaluator := uuid.New()

	t.Run("only at interview stage", func(t *testing.T) {
		_, err := svc.AddEvaluation(application.ID, evaluator, 4, "solid")
		assert.ErrorIs(t, err, ErrEvaluationStageClosed)
	})

	_, err := svc.AdvanceApplication(application.ID, string(model.StageInterview), "hr")
	require.NoError(t, err)

	t.Run("score bounds enforced", func(t *testing.T) {
		_, err := svc.AddEvaluation(application.ID, evaluator, 0, "")
		assert.Error(t, err)
		_, err = svc.AddEvaluation(application.ID, evaluator, 6, "")
		assert.Error(t, err)
	})

	t.Run("average over evaluations", func(t *testing.T) {
		_, err := svc.AddEvaluation(application.ID, evaluator, 4, "solid")
		require.NoError(t, err)
		_, err = svc.AddEvaluation(application.ID, uuid.New(), 5, "excellent")
		require.NoError(t, err)

		average, err := svc.AverageScore(application.ID)
		require.NoError(t, err)
		assert.Equal(t, 4.5, average)
	})
}
