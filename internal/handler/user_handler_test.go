package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserService mocks service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	args := m.Called(ctx, userID)
	if resp, ok := args.Get(0).(*dto.UserProfileResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	args := m.Called(ctx, userID, req)
	if resp, ok := args.Get(0).(*dto.UserProfileResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) GetUserHistory(ctx context.Context, userID string, pagination dto.Pagination) (*dto.HistoryResponse, error) {
	args := m.Called(ctx, userID, pagination)
	if resp, ok := args.Get(0).(*dto.HistoryResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) GetUserStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error) {
	args := m.Called(ctx, userID)
	if resp, ok := args.Get(0).(*dto.UserStatsResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) GetHomeStats(ctx context.Context) (*dto.HomeStatsResponse, error) {
	args := m.Called(ctx)
	if resp, ok := args.Get(0).(*dto.HomeStatsResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func newUserTestApp(svc *MockUserService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDKey, "user-1")
		return c.Next()
	})

	h := NewUserHandler(svc)
	app.Get("/api/users/me", h.GetMyProfile)
	app.Put("/api/users/me", h.UpdateMyProfile)
	app.Get("/api/users/me/history", h.GetMyHistory)
	return app
}

func TestUpdateMyProfileHandler(t *testing.T) {
	t.Run("returns the updated profile", func(t *testing.T) {
		svc := new(MockUserService)
		app := newUserTestApp(svc)

		svc.On("UpdateProfile", mock.Anything, "user-1", &dto.UpdateProfileRequest{DisplayName: "Alice the Great"}).
			Return(&dto.UserProfileResponse{
				ID: "user-1", Username: "alice", DisplayName: "Alice the Great",
			}, nil)

		resp, err := app.Test(jsonRequest(http.MethodPut, "/api/users/me", dto.UpdateProfileRequest{
			DisplayName: "Alice the Great",
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body dto.UserProfileResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Alice the Great", body.DisplayName)
		svc.AssertExpectations(t)
	})

	t.Run("validation failure maps to 400", func(t *testing.T) {
		svc := new(MockUserService)
		app := newUserTestApp(svc)

		svc.On("UpdateProfile", mock.Anything, "user-1", mock.Anything).
			Return(nil, domain.ValidationErrors{
				domain.NewOutOfRangeError("display_name", 80, 0, 50),
			})

		resp, err := app.Test(jsonRequest(http.MethodPut, "/api/users/me", dto.UpdateProfileRequest{
			DisplayName: "way too long",
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var body middleware.ValidationErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.NotEmpty(t, body.Errors)
		assert.Equal(t, "display_name", body.Errors[0].Field)
	})
}
