package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"quizdeck/internal/cache"
	"quizdeck/internal/config"
	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/logger"

	"go.uber.org/zap"
)

// LeaderboardService ranks users by their best score.
type LeaderboardService interface {
	// GetLeaderboard returns at most limit entries sorted by descending best
	// percentage, ties broken by ascending achievement time.
	GetLeaderboard(ctx context.Context, limit int) (*dto.LeaderboardResponse, error)
}

type leaderboardServiceImpl struct {
	resultRepo domain.ResultRepository
	cache      domain.Cache
	ttl        time.Duration
	maxLimit   int
}

// NewLeaderboardService creates a new instance of LeaderboardService.
// A nil cache disables caching.
func NewLeaderboardService(resultRepo domain.ResultRepository, c domain.Cache, cfg *config.Config) LeaderboardService {
	return &leaderboardServiceImpl{
		resultRepo: resultRepo,
		cache:      c,
		ttl:        cfg.Quiz.LeaderboardCacheTTL,
		maxLimit:   cfg.Quiz.LeaderboardLimit,
	}
}

func (s *leaderboardServiceImpl) cacheKey(limit int) string {
	return cache.GenerateCacheKey("leaderboard", "top", strconv.Itoa(limit))
}

// GetLeaderboard serves the ranking from the short-TTL cache when possible
// and falls back to the aggregate query.
func (s *leaderboardServiceImpl) GetLeaderboard(ctx context.Context, limit int) (*dto.LeaderboardResponse, error) {
	if limit <= 0 || limit > s.maxLimit {
		limit = s.maxLimit
	}

	key := s.cacheKey(limit)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			var resp dto.LeaderboardResponse
			if jsonErr := json.Unmarshal([]byte(cached), &resp); jsonErr == nil {
				return &resp, nil
			}
			// A corrupt entry is dropped and recomputed.
			_ = s.cache.Delete(ctx, key)
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Leaderboard cache read failed", zap.Error(err), zap.String("key", key))
		}
	}

	entries, err := s.resultRepo.GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard from repository: %w", err)
	}

	views := make([]dto.LeaderboardEntryView, len(entries))
	for i, e := range entries {
		views[i] = dto.LeaderboardEntryView{
			Rank:           e.Rank,
			Username:       e.Username,
			BestPercentage: e.BestPercentage,
			TotalAttempts:  e.TotalAttempts,
			AchievedAt:     e.AchievedAt,
		}
	}
	resp := &dto.LeaderboardResponse{
		Entries:     views,
		GeneratedAt: time.Now(),
	}

	if s.cache != nil {
		if data, jsonErr := json.Marshal(resp); jsonErr == nil {
			if cacheErr := s.cache.Set(ctx, key, string(data), s.ttl); cacheErr != nil {
				logger.Get().Warn("Leaderboard cache write failed", zap.Error(cacheErr), zap.String("key", key))
			}
		}
	}
	return resp, nil
}
