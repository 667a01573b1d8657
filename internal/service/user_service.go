package service

import (
	"context"
	"fmt"
	"strings"

	"quizdeck/internal/domain"
	"quizdeck/internal/dto"

	"golang.org/x/sync/errgroup"
)

const maxDisplayNameLen = 50

// UserService defines the interface for user-facing reporting operations.
type UserService interface {
	GetUserProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	GetUserHistory(ctx context.Context, userID string, pagination dto.Pagination) (*dto.HistoryResponse, error)
	GetUserStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error)
	GetHomeStats(ctx context.Context) (*dto.HomeStatsResponse, error)
}

type userServiceImpl struct {
	userRepo     domain.UserRepository
	resultRepo   domain.ResultRepository
	questionRepo domain.QuestionRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	userRepo domain.UserRepository,
	resultRepo domain.ResultRepository,
	questionRepo domain.QuestionRepository,
) UserService {
	return &userServiceImpl{
		userRepo:     userRepo,
		resultRepo:   resultRepo,
		questionRepo: questionRepo,
	}
}

// GetUserProfile retrieves a user's profile information.
func (s *userServiceImpl) GetUserProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id from repository: %w", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("user profile not found: %s", userID))
	}

	return &dto.UserProfileResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		IsAdmin:     user.IsAdmin,
	}, nil
}

// UpdateProfile changes the fields a user may edit on their own account.
// An empty display name clears it.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	displayName := strings.TrimSpace(req.DisplayName)
	if len(displayName) > maxDisplayNameLen {
		return nil, domain.ValidationErrors{
			domain.NewOutOfRangeError("display_name", len(displayName), 0, maxDisplayNameLen),
		}
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id from repository: %w", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("user profile not found: %s", userID))
	}

	user.DisplayName = displayName
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return &dto.UserProfileResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		IsAdmin:     user.IsAdmin,
	}, nil
}

// GetUserHistory retrieves a page of the user's past results, newest first.
func (s *userServiceImpl) GetUserHistory(ctx context.Context, userID string, pagination dto.Pagination) (*dto.HistoryResponse, error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Offset < 0 {
		pagination.Offset = 0
	}

	results, total, err := s.resultRepo.GetResultsByUserID(ctx, userID, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get user results from repository: %w", err)
	}

	items := make([]dto.HistoryItem, len(results))
	for i, r := range results {
		items[i] = dto.HistoryItem{
			ResultID:    r.ID,
			Correct:     r.Correct,
			Total:       r.Total,
			Percentage:  r.Percentage,
			Grade:       r.Grade(),
			Passed:      r.Passed(),
			Difficulty:  string(r.Difficulty),
			CompletedAt: r.CompletedAt,
		}
	}

	return &dto.HistoryResponse{
		Results:        items,
		PaginationInfo: dto.NewPaginationInfo(pagination, total),
	}, nil
}

// GetUserStats aggregates the user's result history.
func (s *userServiceImpl) GetUserStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error) {
	stats, err := s.resultRepo.GetUserResultStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user result stats: %w", err)
	}

	resp := &dto.UserStatsResponse{
		TotalAttempts:     stats.TotalAttempts,
		BestPercentage:    stats.BestPercentage,
		AveragePercentage: stats.AveragePercentage,
		QuestionsAnswered: stats.QuestionsAnswered,
		CorrectAnswers:    stats.CorrectAnswers,
	}
	if stats.QuestionsAnswered > 0 {
		resp.OverallAccuracy = float64(stats.CorrectAnswers) / float64(stats.QuestionsAnswered) * 100
	}
	return resp, nil
}

// GetHomeStats collects the landing-page counters. The two counts are
// independent, so they run concurrently.
func (s *userServiceImpl) GetHomeStats(ctx context.Context) (*dto.HomeStatsResponse, error) {
	var activeQuestions, totalResults int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.questionRepo.CountQuestions(gctx, domain.QuestionFilter{ActiveOnly: true})
		if err != nil {
			return fmt.Errorf("failed to count active questions: %w", err)
		}
		activeQuestions = n
		return nil
	})
	g.Go(func() error {
		n, err := s.resultRepo.CountResults(gctx)
		if err != nil {
			return fmt.Errorf("failed to count results: %w", err)
		}
		totalResults = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.HomeStatsResponse{
		ActiveQuestions: activeQuestions,
		TotalResults:    totalResults,
	}, nil
}
