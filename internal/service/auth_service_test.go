package service

import (
	"context"
	"testing"
	"time"

	"quizdeck/internal/config"
	"quizdeck/internal/domain"
	"quizdeck/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:       "0123456789abcdef0123456789abcdef",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}
}

func TestNewAuthServiceRejectsShortSecret(t *testing.T) {
	cfg := authTestConfig()
	cfg.JWT.SecretKey = "short"

	_, err := NewAuthService(new(MockUserRepository), cfg)
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the user and issues tokens", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc, err := NewAuthService(userRepo, authTestConfig())
		require.NoError(t, err)

		userRepo.On("GetUserByUsername", ctx, "alice").Return(nil, nil)
		userRepo.On("GetUserByEmail", ctx, "alice@example.com").Return(nil, nil)
		userRepo.On("CreateUser", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "alice" && u.PasswordHash != "" && u.PasswordHash != "secret-password"
		})).Return(nil)

		tokens, err := svc.Register(ctx, &dto.RegisterRequest{
			Username: "alice", Email: "alice@example.com", Password: "secret-password",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.Equal(t, "Bearer", tokens.TokenType)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc, err := NewAuthService(userRepo, authTestConfig())
		require.NoError(t, err)

		userRepo.On("GetUserByUsername", ctx, "alice").Return(&domain.User{ID: "user-1"}, nil)

		_, err = svc.Register(ctx, &dto.RegisterRequest{
			Username: "alice", Email: "other@example.com", Password: "secret-password",
		})
		var validationErrs domain.ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
		assert.Equal(t, "username", validationErrs[0].Field)
		userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: "user-1", Username: "alice", PasswordHash: string(hash)}

	t.Run("issues tokens on valid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc, err := NewAuthService(userRepo, authTestConfig())
		require.NoError(t, err)

		userRepo.On("GetUserByUsername", ctx, "alice").Return(user, nil)

		tokens, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "secret-password"})
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc, err := NewAuthService(userRepo, authTestConfig())
		require.NoError(t, err)

		userRepo.On("GetUserByUsername", ctx, "alice").Return(user, nil)

		_, err = svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "wrong"})
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
	})

	t.Run("rejects an unknown user with the same error", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc, err := NewAuthService(userRepo, authTestConfig())
		require.NoError(t, err)

		userRepo.On("GetUserByUsername", ctx, "nobody").Return(nil, nil)

		_, err = svc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "secret-password"})
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
	})
}

func TestValidateJWT(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc, err := NewAuthService(userRepo, authTestConfig())
	require.NoError(t, err)

	userRepo.On("GetUserByUsername", ctx, "alice").Return(nil, nil)
	userRepo.On("GetUserByEmail", ctx, "alice@example.com").Return(nil, nil)
	userRepo.On("CreateUser", ctx, mock.Anything).Return(nil)

	tokens, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret-password",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateJWT(ctx, tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "access", claims.TokenType)

	claims, err = svc.ValidateJWT(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)

	_, err = svc.ValidateJWT(ctx, "not-a-token")
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc, err := NewAuthService(userRepo, authTestConfig())
	require.NoError(t, err)

	userRepo.On("GetUserByUsername", ctx, "alice").Return(nil, nil)
	userRepo.On("GetUserByEmail", ctx, "alice@example.com").Return(nil, nil)
	userRepo.On("CreateUser", ctx, mock.Anything).Return(nil)

	tokens, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret-password",
	})
	require.NoError(t, err)

	t.Run("refresh token yields a new pair", func(t *testing.T) {
		userRepo.On("GetUserByID", ctx, mock.AnythingOfType("string")).Return(&domain.User{ID: "user-1", Username: "alice"}, nil).Once()

		refreshed, err := svc.RefreshToken(ctx, tokens.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
	})

	t.Run("access token is not accepted", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, tokens.AccessToken)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
	})
}
