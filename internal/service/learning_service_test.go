package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hris-suite/internal/model"
)

func newLearningFixture(t *testing.T) (LearningService, *mockLearningRepo, *model.User) {
	t.Helper()

	userRepo := newMockUserRepo()
	user := userRepo.add(&model.User{Email: "staff@campus.test", FullName: "Staff Member", IsActive: true})

	learningRepo := newMockLearningRepo()
	return NewLearningService(learningRepo, userRepo), learningRepo, user
}

func seedCourseWithQuiz(t *testing.T, svc LearningService, questionCount int) (*model.Course, *model.Quiz) {
	t.Helper()

	course, err := svc.CreateCourse(&CreateCourseRequest{Title: "Data Privacy Basics"}, "hr")
	require.NoError(t, err)

	questions := make([]QuizQuestionInput, questionCount)
	for i := range questions {
		questions[i] = QuizQuestionInput{
			Prompt:       "Pick the first option",
			Options:      []string{"right", "wrong", "also wrong"},
			CorrectIndex: 0,
		}
	}
	quiz, err := svc.CreateQuiz(&CreateQuizRequest{
		CourseID:  course.ID.String(),
		Title:     "Final Check",
		Questions: questions,
	}, "hr")
	require.NoError(t, err)
	return course, quiz
}

func TestScoreQuiz(t *testing.T) {
	questions := []model.QuizQuestion{
		{CorrectIndex: 0},
		{CorrectIndex: 2},
		{CorrectIndex: 1},
	}

	tests := []struct {
		name    string
		answers []int
		want    int
	}{
		{"all correct", []int{0, 2, 1}, 100},
		{"two of three", []int{0, 2, 0}, 66},
		{"none correct", []int{1, 0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := scoreQuiz(questions, tt.answers)
			require.NoError(t, err)
			assert.Equal(t, tt.want, score)
		})
	}

	t.Run("answer count mismatch", func(t *testing.T) {
		_, err := scoreQuiz(questions, []int{0})
		assert.ErrorIs(t, err, ErrAnswerCountMismatch)
	})

	t.Run("empty quiz", func(t *testing.T) {
		_, err := scoreQuiz(nil, nil)
		assert.ErrorIs(t, err, ErrEmptyQuiz)
	})
}

func TestCreateQuizValidation(t *testing.T) {
	svc, _, _ := newLearningFixture(t)
	course, err := svc.CreateCourse(&CreateCourseRequest{Title: "Safety"}, "hr")
	require.NoError(t, err)

	_, err = svc.CreateQuiz(&CreateQuizRequest{
		CourseID: course.ID.String(),
		Title:    "Bad Quiz",
		Questions: []QuizQuestionInput{
			{Prompt: "?", Options: []string{"a", "b"}, CorrectIndex: 5},
		},
	}, "hr")
	assert.Error(t, err)

	_, err = svc.CreateQuiz(&CreateQuizRequest{
		CourseID: uuid.New().String(),
		Title:    "Orphan Quiz",
		Questions: []QuizQuestionInput{
			{Prompt: "?", Options: []string{"a", "b"}, CorrectIndex: 0},
		},
	}, "hr")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestEnroll(t *testing.T) {
	svc, _, user := newLearningFixture(t)
	course, _ := seedCourseWithQuiz(t, svc, 2)

	enrollment, err := svc.Enroll(course.ID, user.ID)
	require.NoError(t, err)
	assert.Nil(t, enrollment.CompletedAt)
	assert.Zero(t, enrollment.BestScore)

	_, err = svc.Enroll(course.ID, user.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	_, err = svc.Enroll(uuid.New(), user.ID)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestSubmitQuiz(t *testing.T) {
	svc, repo, user := newLearningFixture(t)
	course, quiz := seedCourseWithQuiz(t, svc, 4)

	t.Run("requires enrollment", func(t *testing.T) {
		_, err := svc.SubmitQuiz(quiz.ID, user.ID, []int{0, 0, 0, 0})
		assert.ErrorIs(t, err, ErrNotEnrolled)
	})

	_, err := svc.Enroll(course.ID, user.ID)
	require.NoError(t, err)

	t.Run("failing attempt records score but not completion", func(t *testing.T) {
		// 2 of 4 correct is 50, below the passing bar.
		submission, err := svc.SubmitQuiz(quiz.ID, user.ID, []int{0, 0, 1, 1})
		require.NoError(t, err)
		assert.Equal(t, 50, submission.Score)

		enrollment, err := repo.FindEnrollment(course.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 50, enrollment.BestScore)
		assert.Nil(t, enrollment.CompletedAt)
	})

	t.Run("passing attempt completes the enrollment", func(t *testing.T) {
		// 3 of 4 correct is 75, over the bar.
		submission, err := svc.SubmitQuiz(quiz.ID, user.ID, []int{0, 0, 0, 1})
		require.NoError(t, err)
		assert.Equal(t, 75, submission.Score)

		enrollment, err := repo.FindEnrollment(course.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 75, enrollment.BestScore)
		assert.NotNil(t, enrollment.CompletedAt)
	})

	t.Run("later lower score keeps best and completion", func(t *testing.T) {
		_, err := svc.SubmitQuiz(quiz.ID, user.ID, []int{1, 1, 1, 1})
		require.NoError(t, err)

		enrollment, err := repo.FindEnrollment(course.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 75, enrollment.BestScore)
		assert.NotNil(t, enrollment.CompletedAt)
	})
}

func TestCompetencies(t *testing.T) {
	svc, _, user := newLearningFixture(t)

	_, err := svc.SetCompetency(user.ID, "Go", 2, "hr")
	require.NoError(t, err)
	_, err = svc.SetCompetency(user.ID, "SQL", 4, "hr")
	require.NoError(t, err)

	t.Run("upsert replaces the level", func(t *testing.T) {
		updated, err := svc.SetCompetency(user.ID, "Go", 3, "hr")
		require.NoError(t, err)
		assert.Equal(t, 3, updated.Level)

		competencies, err := svc.GetUserCompetencies(user.ID)
		require.NoError(t, err)
		assert.Len(t, competencies, 2)
	})

	t.Run("level bounds", func(t *testing.T) {
		_, err := svc.SetCompetency(user.ID, "Go", 0, "hr")
		assert.Error(t, err)
		_, err = svc.SetCompetency(user.ID, "Go", 6, "hr")
		assert.Error(t, err)
	})

	t.Run("gap report lists only shortfalls", func(t *testing.T) {
		gaps, err := svc.CompetencyGaps(user.ID, map[string]int{
			"Go":      5, // has 3
			"SQL":     3, // has 4, no gap
			"Teaching": 2, // missing entirely
		})
		require.NoError(t, err)
		require.Len(t, gaps, 2)

		byName := make(map[string]CompetencyGap, len(gaps))
		for _, gap := range gaps {
			byName[gap.Name] = gap
		}
		assert.Equal(t, 2, byName["Go"].Gap)
		assert.Equal(t, 2, byName["Teaching"].Gap)
		assert.Zero(t, byName["Teaching"].Current)
	})
}
