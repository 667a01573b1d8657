package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quizdeck/internal/cache"
	"quizdeck/internal/domain"
	"quizdeck/internal/logger"

	"go.uber.org/zap"
)

// AttemptSessionStore holds in-progress quiz attempts, scoped to one user's
// session. Entries expire after the configured TTL, which is how abandoned
// attempts are discarded.
type AttemptSessionStore interface {
	Put(ctx context.Context, attempt *domain.QuizAttempt) error
	Get(ctx context.Context, userID, attemptID string) (*domain.QuizAttempt, error)
	Delete(ctx context.Context, userID, attemptID string) error
}

// attemptSessionStoreImpl implements AttemptSessionStore on the generic cache port.
type attemptSessionStoreImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewAttemptSessionStore creates a new instance of attemptSessionStoreImpl.
func NewAttemptSessionStore(c domain.Cache, ttl time.Duration) AttemptSessionStore {
	return &attemptSessionStoreImpl{cache: c, ttl: ttl}
}

// Keys include the user ID so one user can never address another's attempt.
func (s *attemptSessionStoreImpl) generateKey(userID, attemptID string) string {
	return cache.GenerateCacheKey("session", "attempt", userID, attemptID)
}

// Put stores the attempt, resetting its TTL.
func (s *attemptSessionStoreImpl) Put(ctx context.Context, attempt *domain.QuizAttempt) error {
	if attempt == nil {
		return domain.NewInvalidInputError("cannot store nil attempt")
	}

	key := s.generateKey(attempt.UserID, attempt.ID)
	dataBytes, err := json.Marshal(attempt)
	if err != nil {
		logger.Get().Error("Failed to marshal attempt for session store", zap.Error(err), zap.String("attemptID", attempt.ID))
		return domain.NewInternalError("failed to marshal attempt", err)
	}

	if err := s.cache.Set(ctx, key, string(dataBytes), s.ttl); err != nil {
		logger.Get().Error("Failed to store attempt", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to store attempt for key %s", key), err)
	}
	return nil
}

// Get retrieves the attempt. A missing or expired entry surfaces as an
// ATTEMPT_NOT_FOUND domain error.
func (s *attemptSessionStoreImpl) Get(ctx context.Context, userID, attemptID string) (*domain.QuizAttempt, error) {
	key := s.generateKey(userID, attemptID)
	dataString, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewAttemptNotFoundError(attemptID)
		}
		logger.Get().Error("Failed to read attempt from session store", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to read attempt for key %s", key), err)
	}

	var attempt domain.QuizAttempt
	if err := json.Unmarshal([]byte(dataString), &attempt); err != nil {
		logger.Get().Error("Failed to unmarshal stored attempt", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError("failed to unmarshal stored attempt", err)
	}
	return &attempt, nil
}

// Delete removes the attempt from the session store.
func (s *attemptSessionStoreImpl) Delete(ctx context.Context, userID, attemptID string) error {
	key := s.generateKey(userID, attemptID)
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Get().Error("Failed to delete attempt from session store", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to delete attempt for key %s", key), err)
	}
	return nil
}
