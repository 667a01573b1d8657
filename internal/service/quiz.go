package service

import (
	"context"
	"fmt"

	"quizdeck/internal/config"
	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/logger"
	"quizdeck/internal/util"

	"go.uber.org/zap"
)

// QuizService manages the attempt lifecycle: start, answer, submit, and
// result retrieval.
type QuizService interface {
	// StartAttempt draws a randomized question set matching the difficulty
	// filter and opens a new session-scoped attempt for the user.
	StartAttempt(ctx context.Context, userID string, difficulty domain.Difficulty, count int) (*dto.AttemptResponse, error)

	// GetAttempt returns the current state of an in-progress attempt.
	GetAttempt(ctx context.Context, userID, attemptID string) (*dto.AttemptResponse, error)

	// RecordAnswer stores the user's choice for one question of the attempt,
	// overwriting any prior choice for the same question.
	RecordAnswer(ctx context.Context, userID, attemptID, questionID string, label domain.ChoiceLabel) (*dto.AttemptResponse, error)

	// SubmitAttempt scores the attempt, persists the result and marks the
	// session entry submitted. Re-submission fails with ALREADY_SUBMITTED.
	SubmitAttempt(ctx context.Context, userID, attemptID string) (*dto.ResultResponse, error)

	// AbandonAttempt discards an in-progress attempt without scoring it.
	// A submitted attempt cannot be abandoned.
	AbandonAttempt(ctx context.Context, userID, attemptID string) error

	// GetResult returns a persisted result with its breakdown. Only the
	// owning user may read it.
	GetResult(ctx context.Context, userID, resultID string) (*dto.ResultResponse, error)
}

type quizServiceImpl struct {
	questionRepo domain.QuestionRepository
	resultRepo   domain.ResultRepository
	sessions     AttemptSessionStore
	appConfig    *config.Config
}

// NewQuizService creates a new instance of QuizService.
func NewQuizService(
	questionRepo domain.QuestionRepository,
	resultRepo domain.ResultRepository,
	sessions AttemptSessionStore,
	appConfig *config.Config,
) QuizService {
	return &quizServiceImpl{
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		sessions:     sessions,
		appConfig:    appConfig,
	}
}

// StartAttempt selects up to count active questions matching the difficulty
// filter, order randomized, without repetition. It fails with
// INSUFFICIENT_QUESTIONS when the bank cannot satisfy the request.
func (s *quizServiceImpl) StartAttempt(ctx context.Context, userID string, difficulty domain.Difficulty, count int) (*dto.AttemptResponse, error) {
	if count <= 0 {
		count = s.appConfig.Quiz.DefaultQuestionCount
	}

	filter := domain.QuestionFilter{Difficulty: difficulty, ActiveOnly: true}

	available, err := s.questionRepo.CountQuestions(ctx, filter)
	if err != nil {
		return nil, domain.NewInternalError("failed to count available questions", err)
	}
	if available < count {
		return nil, domain.NewInsufficientQuestionsError(difficulty, count, available)
	}

	questions, err := s.questionRepo.SelectRandomQuestions(ctx, filter, count)
	if err != nil {
		return nil, domain.NewInternalError("failed to select questions", err)
	}
	if len(questions) < count {
		// The bank shrank between the count and the draw.
		return nil, domain.NewInsufficientQuestionsError(difficulty, count, len(questions))
	}

	snapshots := make([]domain.AttemptQuestion, len(questions))
	for i, q := range questions {
		snapshots[i] = domain.AttemptQuestion{
			QuestionID:   q.ID,
			Text:         q.Text,
			Choices:      q.Choices(),
			CorrectLabel: q.CorrectLabel,
		}
	}

	attempt := domain.NewQuizAttempt(util.NewULID(), userID, difficulty, snapshots)
	if err := s.sessions.Put(ctx, attempt); err != nil {
		return nil, err
	}

	logger.Get().Info("Quiz attempt started",
		zap.String("attemptID", attempt.ID),
		zap.String("userID", userID),
		zap.String("difficulty", string(difficulty)),
		zap.Int("count", count),
	)

	return toAttemptResponse(attempt), nil
}

// GetAttempt returns the current attempt state without correct labels.
func (s *quizServiceImpl) GetAttempt(ctx context.Context, userID, attemptID string) (*dto.AttemptResponse, error) {
	attempt, err := s.sessions.Get(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	return toAttemptResponse(attempt), nil
}

// RecordAnswer overwrites the stored choice for a question of the attempt.
func (s *quizServiceImpl) RecordAnswer(ctx context.Context, userID, attemptID, questionID string, label domain.ChoiceLabel) (*dto.AttemptResponse, error) {
	attempt, err := s.sessions.Get(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}

	if err := attempt.RecordAnswer(questionID, label); err != nil {
		return nil, err
	}

	if err := s.sessions.Put(ctx, attempt); err != nil {
		return nil, err
	}
	return toAttemptResponse(attempt), nil
}

// SubmitAttempt scores the attempt and persists the result. The session
// entry is marked submitted only after a successful insert, so a failed save
// leaves the attempt open for retry; the UNIQUE constraint on the attempt ID
// backstops any concurrent double submit. The marked entry stays in the
// session store until its TTL runs out, so a resubmission is answered with
// ALREADY_SUBMITTED and the ID of the existing result.
func (s *quizServiceImpl) SubmitAttempt(ctx context.Context, userID, attemptID string) (*dto.ResultResponse, error) {
	attempt, err := s.sessions.Get(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Submitted {
		return nil, domain.NewAlreadySubmittedError(attemptID).
			WithContext("result_id", attempt.ResultID)
	}

	correct, breakdown := attempt.Score()
	result := domain.NewResult(util.NewULID(), attempt, correct)
	if err := result.Validate(); err != nil {
		return nil, err
	}

	if err := s.resultRepo.SaveResult(ctx, result); err != nil {
		return nil, err
	}

	attempt.MarkSubmitted(result.ID)
	if err := s.sessions.Put(ctx, attempt); err != nil {
		// The result row exists; its UNIQUE attempt_id catches any resubmit
		// that slips past the stale session entry.
		logger.Get().Warn("Failed to mark submitted attempt in session store",
			zap.String("attemptID", attemptID), zap.Error(err))
	}

	logger.Get().Info("Quiz attempt submitted",
		zap.String("attemptID", attemptID),
		zap.String("resultID", result.ID),
		zap.String("userID", userID),
		zap.Int("correct", correct),
		zap.Int("total", result.Total),
	)

	return toResultResponse(result, breakdown), nil
}

// AbandonAttempt drops the session entry for an unscored attempt.
func (s *quizServiceImpl) AbandonAttempt(ctx context.Context, userID, attemptID string) error {
	attempt, err := s.sessions.Get(ctx, userID, attemptID)
	if err != nil {
		return err
	}
	if attempt.Submitted {
		return domain.NewAlreadySubmittedError(attemptID).
			WithContext("result_id", attempt.ResultID)
	}

	if err := s.sessions.Delete(ctx, userID, attemptID); err != nil {
		return err
	}

	logger.Get().Info("Quiz attempt abandoned",
		zap.String("attemptID", attemptID),
		zap.String("userID", userID),
	)
	return nil
}

// GetResult returns a persisted result with its per-question breakdown.
func (s *quizServiceImpl) GetResult(ctx context.Context, userID, resultID string) (*dto.ResultResponse, error) {
	result, err := s.resultRepo.GetResultByID(ctx, resultID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get result", err)
	}
	if result == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("result not found: %s", resultID))
	}
	if result.UserID != userID {
		return nil, domain.NewForbiddenError("result belongs to another user")
	}

	breakdown := make([]domain.AnswerDetail, len(result.Questions))
	for i, q := range result.Questions {
		chosen := result.Answers[q.QuestionID]
		breakdown[i] = domain.AnswerDetail{
			QuestionID:   q.QuestionID,
			Text:         q.Text,
			Choices:      q.Choices,
			ChosenLabel:  chosen,
			CorrectLabel: q.CorrectLabel,
			IsCorrect:    chosen == q.CorrectLabel,
		}
	}
	return toResultResponse(result, breakdown), nil
}

func toAttemptResponse(attempt *domain.QuizAttempt) *dto.AttemptResponse {
	questions := make([]dto.AttemptQuestionView, len(attempt.Questions))
	for i, q := range attempt.Questions {
		choices := make(map[string]string, len(q.Choices))
		for label, text := range q.Choices {
			choices[string(label)] = text
		}
		questions[i] = dto.AttemptQuestionView{
			QuestionID:  q.QuestionID,
			Text:        q.Text,
			Choices:     choices,
			ChosenLabel: string(attempt.Answers[q.QuestionID]),
		}
	}
	return &dto.AttemptResponse{
		AttemptID:  attempt.ID,
		Difficulty: string(attempt.Difficulty),
		Count:      attempt.Count,
		Questions:  questions,
		Answered:   len(attempt.Answers),
		StartedAt:  attempt.StartedAt,
	}
}

func toResultResponse(result *domain.Result, breakdown []domain.AnswerDetail) *dto.ResultResponse {
	details := make([]dto.AnswerDetailView, len(breakdown))
	for i, d := range breakdown {
		choices := make(map[string]string, len(d.Choices))
		for label, text := range d.Choices {
			choices[string(label)] = text
		}
		details[i] = dto.AnswerDetailView{
			QuestionID:   d.QuestionID,
			Text:         d.Text,
			Choices:      choices,
			ChosenLabel:  string(d.ChosenLabel),
			CorrectLabel: string(d.CorrectLabel),
			CorrectText:  d.Choices[d.CorrectLabel],
			IsCorrect:    d.IsCorrect,
		}
	}
	return &dto.ResultResponse{
		ResultID:      result.ID,
		AttemptID:     result.AttemptID,
		Correct:       result.Correct,
		Total:         result.Total,
		Percentage:    result.Percentage,
		Grade:         result.Grade(),
		Passed:        result.Passed(),
		Difficulty:    string(result.Difficulty),
		TimeTakenSecs: int64(result.TimeTaken.Seconds()),
		CompletedAt:   result.CompletedAt,
		Breakdown:     details,
	}
}
