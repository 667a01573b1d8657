package service

import (
	"context"
	"testing"

	"quizdeck/internal/domain"
	"quizdeck/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validQuestionRequest() *dto.QuestionRequest {
	return &dto.QuestionRequest{
		Text:         "Which SQL clause removes duplicate rows?",
		ChoiceA:      "DISTINCT",
		ChoiceB:      "UNIQUE",
		ChoiceC:      "GROUP",
		ChoiceD:      "FILTER",
		CorrectLabel: "A",
		Difficulty:   "EASY",
	}
}

func TestCreateQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a valid question", func(t *testing.T) {
		questionRepo := new(MockQuestionRepository)
		svc := NewAdminService(questionRepo)

		questionRepo.On("SaveQuestion", ctx, mock.AnythingOfType("*domain.Question")).Return(nil)

		resp, err := svc.CreateQuestion(ctx, validQuestionRequest())
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.True(t, resp.IsActive)
		assert.Equal(t, "A", resp.CorrectLabel)
		questionRepo.AssertExpectations(t)
	})

	t.Run("rejects an invalid question", func(t *testing.T) {
		questionRepo := new(MockQuestionRepository)
		svc := NewAdminService(questionRepo)

		req := validQuestionRequest()
		req.Text = "short"
		req.ChoiceB = ""

		_, err := svc.CreateQuestion(ctx, req)
		var validationErrs domain.ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
		assert.Len(t, validationErrs, 2)
		questionRepo.AssertNotCalled(t, "SaveQuestion", mock.Anything, mock.Anything)
	})

	t.Run("honors the inactive flag", func(t *testing.T) {
		questionRepo := new(MockQuestionRepository)
		svc := NewAdminService(questionRepo)

		inactive := false
		req := validQuestionRequest()
		req.IsActive = &inactive

		questionRepo.On("SaveQuestion", ctx, mock.AnythingOfType("*domain.Question")).Return(nil)

		resp, err := svc.CreateQuestion(ctx, req)
		require.NoError(t, err)
		assert.False(t, resp.IsActive)
	})
}

func TestUpdateQuestion(t *testing.T) {
	ctx := context.Background()
	questionRepo := new(MockQuestionRepository)
	svc := NewAdminService(questionRepo)

	existing := domain.NewQuestion(
		"Original question text here",
		"one", "two", "three", "four",
		domain.ChoiceA, domain.DifficultyEasy,
	)
	existing.ID = "01HQZX0000000000000000000A"

	t.Run("keeps identity and creation time", func(t *testing.T) {
		questionRepo.On("GetQuestionByID", ctx, existing.ID).Return(existing, nil).Once()
		questionRepo.On("UpdateQuestion", ctx, mock.MatchedBy(func(q *domain.Question) bool {
			return q.ID == existing.ID && q.CreatedAt.Equal(existing.CreatedAt)
		})).Return(nil).Once()

		resp, err := svc.UpdateQuestion(ctx, existing.ID, validQuestionRequest())
		require.NoError(t, err)
		assert.Equal(t, existing.ID, resp.ID)
		questionRepo.AssertExpectations(t)
	})

	t.Run("unknown question", func(t *testing.T) {
		questionRepo.On("GetQuestionByID", ctx, "missing").Return(nil, nil).Once()

		_, err := svc.UpdateQuestion(ctx, "missing", validQuestionRequest())
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeQuestionNotFound, domainErr.Code)
	})
}

func TestDeleteQuestion(t *testing.T) {
	ctx := context.Background()
	questionRepo := new(MockQuestionRepository)
	svc := NewAdminService(questionRepo)

	questionRepo.On("DeleteQuestions", ctx, []string{"q1"}).Return(1, nil).Once()
	require.NoError(t, svc.DeleteQuestion(ctx, "q1"))

	questionRepo.On("DeleteQuestions", ctx, []string{"missing"}).Return(0, nil).Once()
	err := svc.DeleteQuestion(ctx, "missing")
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeQuestionNotFound, domainErr.Code)
}

func TestBulkQuestionActions(t *testing.T) {
	ctx := context.Background()
	questionRepo := new(MockQuestionRepository)
	svc := NewAdminService(questionRepo)

	ids := []string{"q1", "q2", "q3"}

	questionRepo.On("DeleteQuestions", ctx, ids).Return(2, nil).Once()
	affected, err := svc.BulkDeleteQuestions(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, 2, affected)

	questionRepo.On("SetQuestionsActive", ctx, ids, false).Return(3, nil).Once()
	affected, err = svc.BulkSetQuestionsActive(ctx, ids, false)
	require.NoError(t, err)
	assert.Equal(t, 3, affected)

	_, err = svc.BulkDeleteQuestions(ctx, nil)
	assert.Error(t, err)
}
