package service

import (
	"context"
	"fmt"

	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/logger"
	"quizdeck/internal/util"

	"go.uber.org/zap"
)

// AdminService manages the question bank.
type AdminService interface {
	CreateQuestion(ctx context.Context, req *dto.QuestionRequest) (*dto.QuestionResponse, error)
	GetQuestion(ctx context.Context, id string) (*dto.QuestionResponse, error)
	ListQuestions(ctx context.Context, difficulty domain.Difficulty, activeOnly bool, pagination dto.Pagination) (*dto.QuestionListResponse, error)
	UpdateQuestion(ctx context.Context, id string, req *dto.QuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, id string) error
	BulkDeleteQuestions(ctx context.Context, ids []string) (int, error)
	BulkSetQuestionsActive(ctx context.Context, ids []string, active bool) (int, error)
}

type adminServiceImpl struct {
	questionRepo domain.QuestionRepository
}

// NewAdminService creates a new instance of AdminService.
func NewAdminService(questionRepo domain.QuestionRepository) AdminService {
	return &adminServiceImpl{questionRepo: questionRepo}
}

func questionFromRequest(req *dto.QuestionRequest) *domain.Question {
	label, _ := domain.ParseChoiceLabel(req.CorrectLabel)
	difficulty, _ := domain.ParseDifficulty(req.Difficulty)
	q := domain.NewQuestion(req.Text, req.ChoiceA, req.ChoiceB, req.ChoiceC, req.ChoiceD, label, difficulty)
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}
	return q
}

func toQuestionResponse(q *domain.Question) *dto.QuestionResponse {
	choices := make(map[string]string, 4)
	for label, text := range q.Choices() {
		choices[string(label)] = text
	}
	return &dto.QuestionResponse{
		ID:           q.ID,
		Text:         q.Text,
		Choices:      choices,
		CorrectLabel: string(q.CorrectLabel),
		Difficulty:   string(q.Difficulty),
		IsActive:     q.IsActive,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

// CreateQuestion validates and persists a new question.
func (s *adminServiceImpl) CreateQuestion(ctx context.Context, req *dto.QuestionRequest) (*dto.QuestionResponse, error) {
	question := questionFromRequest(req)
	if errs := question.Validate(); len(errs) > 0 {
		return nil, errs
	}
	question.ID = util.NewULID()

	if err := s.questionRepo.SaveQuestion(ctx, question); err != nil {
		return nil, domain.NewInternalError("failed to save question", err)
	}

	logger.Get().Info("Question created",
		zap.String("questionID", question.ID),
		zap.String("difficulty", string(question.Difficulty)),
	)
	return toQuestionResponse(question), nil
}

// GetQuestion retrieves a single question, correct label included.
func (s *adminServiceImpl) GetQuestion(ctx context.Context, id string) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to get question", err)
	}
	if question == nil {
		return nil, domain.NewQuestionNotFoundError(id)
	}
	return toQuestionResponse(question), nil
}

// ListQuestions returns a page of the bank, newest first.
func (s *adminServiceImpl) ListQuestions(ctx context.Context, difficulty domain.Difficulty, activeOnly bool, pagination dto.Pagination) (*dto.QuestionListResponse, error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 20
	}
	if pagination.Offset < 0 {
		pagination.Offset = 0
	}

	filter := domain.QuestionFilter{Difficulty: difficulty, ActiveOnly: activeOnly}
	questions, total, err := s.questionRepo.ListQuestions(ctx, filter, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, domain.NewInternalError("failed to list questions", err)
	}

	views := make([]dto.QuestionResponse, len(questions))
	for i, q := range questions {
		views[i] = *toQuestionResponse(q)
	}
	return &dto.QuestionListResponse{
		Questions:      views,
		PaginationInfo: dto.NewPaginationInfo(pagination, total),
	}, nil
}

// UpdateQuestion validates and applies an update to an existing question.
func (s *adminServiceImpl) UpdateQuestion(ctx context.Context, id string, req *dto.QuestionRequest) (*dto.QuestionResponse, error) {
	existing, err := s.questionRepo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to get question", err)
	}
	if existing == nil {
		return nil, domain.NewQuestionNotFoundError(id)
	}

	updated := questionFromRequest(req)
	if errs := updated.Validate(); len(errs) > 0 {
		return nil, errs
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.questionRepo.UpdateQuestion(ctx, updated); err != nil {
		return nil, err
	}

	logger.Get().Info("Question updated", zap.String("questionID", id))
	return toQuestionResponse(updated), nil
}

// DeleteQuestion soft-deletes a single question.
func (s *adminServiceImpl) DeleteQuestion(ctx context.Context, id string) error {
	affected, err := s.questionRepo.DeleteQuestions(ctx, []string{id})
	if err != nil {
		return domain.NewInternalError("failed to delete question", err)
	}
	if affected == 0 {
		return domain.NewQuestionNotFoundError(id)
	}
	logger.Get().Info("Question deleted", zap.String("questionID", id))
	return nil
}

// BulkDeleteQuestions soft-deletes a set of questions and reports how many
// rows were touched.
func (s *adminServiceImpl) BulkDeleteQuestions(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, domain.NewInvalidInputError("no question ids given")
	}
	affected, err := s.questionRepo.DeleteQuestions(ctx, ids)
	if err != nil {
		return 0, domain.NewInternalError("failed to bulk delete questions", err)
	}
	logger.Get().Info("Questions bulk deleted", zap.Int("requested", len(ids)), zap.Int("affected", affected))
	return affected, nil
}

// BulkSetQuestionsActive toggles the active flag on a set of questions.
func (s *adminServiceImpl) BulkSetQuestionsActive(ctx context.Context, ids []string, active bool) (int, error) {
	if len(ids) == 0 {
		return 0, domain.NewInvalidInputError("no question ids given")
	}
	affected, err := s.questionRepo.SetQuestionsActive(ctx, ids, active)
	if err != nil {
		return 0, domain.NewInternalError(fmt.Sprintf("failed to set questions active=%t", active), err)
	}
	logger.Get().Info("Questions bulk activation changed",
		zap.Bool("active", active), zap.Int("requested", len(ids)), zap.Int("affected", affected))
	return affected, nil
}
