package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"quizdeck/internal/domain"
	"quizdeck/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func leaderboardEntries() []domain.LeaderboardEntry {
	return []domain.LeaderboardEntry{
		{Rank: 1, UserID: "user-1", Username: "alice", BestPercentage: 95, TotalAttempts: 7, AchievedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{Rank: 2, UserID: "user-2", Username: "bob", BestPercentage: 95, TotalAttempts: 3, AchievedAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)},
		{Rank: 3, UserID: "user-3", Username: "carol", BestPercentage: 80, TotalAttempts: 1, AchievedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)},
	}
}

func TestGetLeaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("falls back to the repository and caches", func(t *testing.T) {
		resultRepo := new(MockResultRepository)
		cacheMock := new(MockCache)
		svc := NewLeaderboardService(resultRepo, cacheMock, testConfig())

		cacheMock.On("Get", ctx, mock.AnythingOfType("string")).Return("", domain.ErrCacheMiss)
		resultRepo.On("GetLeaderboard", ctx, 10).Return(leaderboardEntries(), nil)
		cacheMock.On("Set", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), time.Minute).Return(nil)

		resp, err := svc.GetLeaderboard(ctx, 10)
		require.NoError(t, err)
		require.Len(t, resp.Entries, 3)
		assert.Equal(t, "alice", resp.Entries[0].Username)
		assert.Equal(t, 1, resp.Entries[0].Rank)
		assert.True(t, resp.Entries[0].AchievedAt.Before(resp.Entries[1].AchievedAt),
			"equal percentages rank by earliest achievement")
		cacheMock.AssertExpectations(t)
		resultRepo.AssertExpectations(t)
	})

	t.Run("serves from cache", func(t *testing.T) {
		resultRepo := new(MockResultRepository)
		cacheMock := new(MockCache)
		svc := NewLeaderboardService(resultRepo, cacheMock, testConfig())

		cached, err := json.Marshal(&dto.LeaderboardResponse{
			Entries: []dto.LeaderboardEntryView{{Rank: 1, Username: "alice", BestPercentage: 95}},
		})
		require.NoError(t, err)
		cacheMock.On("Get", ctx, mock.AnythingOfType("string")).Return(string(cached), nil)

		resp, err := svc.GetLeaderboard(ctx, 5)
		require.NoError(t, err)
		require.Len(t, resp.Entries, 1)
		assert.Equal(t, "alice", resp.Entries[0].Username)
		resultRepo.AssertNotCalled(t, "GetLeaderboard", mock.Anything, mock.Anything)
	})

	t.Run("drops a corrupt cache entry", func(t *testing.T) {
		resultRepo := new(MockResultRepository)
		cacheMock := new(MockCache)
		svc := NewLeaderboardService(resultRepo, cacheMock, testConfig())

		cacheMock.On("Get", ctx, mock.AnythingOfType("string")).Return("{not json", nil)
		cacheMock.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil)
		resultRepo.On("GetLeaderboard", ctx, 5).Return(leaderboardEntries(), nil)
		cacheMock.On("Set", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), time.Minute).Return(nil)

		resp, err := svc.GetLeaderboard(ctx, 5)
		require.NoError(t, err)
		assert.Len(t, resp.Entries, 3)
		cacheMock.AssertExpectations(t)
	})

	t.Run("clamps the limit", func(t *testing.T) {
		resultRepo := new(MockResultRepository)
		cacheMock := new(MockCache)
		svc := NewLeaderboardService(resultRepo, cacheMock, testConfig())

		cacheMock.On("Get", ctx, mock.AnythingOfType("string")).Return("", domain.ErrCacheMiss)
		resultRepo.On("GetLeaderboard", ctx, 20).Return([]domain.LeaderboardEntry{}, nil)
		cacheMock.On("Set", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), time.Minute).Return(nil)

		_, err := svc.GetLeaderboard(ctx, 500)
		require.NoError(t, err)
		resultRepo.AssertCalled(t, "GetLeaderboard", ctx, 20)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		resultRepo := new(MockResultRepository)
		cacheMock := new(MockCache)
		svc := NewLeaderboardService(resultRepo, cacheMock, testConfig())

		cacheMock.On("Get", ctx, mock.AnythingOfType("string")).Return("", domain.ErrCacheMiss)
		resultRepo.On("GetLeaderboard", ctx, 5).Return(nil, errors.New("db down"))

		_, err := svc.GetLeaderboard(ctx, 5)
		assert.Error(t, err)
	})
}
