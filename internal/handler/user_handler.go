package handler

import (
	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/middleware"
	"quizdeck/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles the authenticated user's profile and history requests
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func paginationFromQuery(c *fiber.Ctx, defaultLimit int) dto.Pagination {
	return dto.Pagination{
		Limit:  c.QueryInt("limit", defaultLimit),
		Offset: c.QueryInt("offset", 0),
	}
}

// GetMyProfile godoc
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.UserProfileResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	resp, err := h.service.GetUserProfile(c.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateMyProfile godoc
// @Summary Update own profile
// @Description Changes the display name; an empty value clears it
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.UserProfileResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /users/me [put]
func (h *UserHandler) UpdateMyProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.service.UpdateProfile(c.Context(), middleware.UserIDFromContext(c), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetMyHistory godoc
// @Summary Get own result history
// @Description Returns a page of the user's past results, newest first
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.HistoryResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /users/me/history [get]
func (h *UserHandler) GetMyHistory(c *fiber.Ctx) error {
	resp, err := h.service.GetUserHistory(c.Context(), middleware.UserIDFromContext(c), paginationFromQuery(c, 10))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetMyStats godoc
// @Summary Get own aggregate statistics
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.UserStatsResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /users/me/stats [get]
func (h *UserHandler) GetMyStats(c *fiber.Ctx) error {
	resp, err := h.service.GetUserStats(c.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetHomeStats godoc
// @Summary Get landing-page statistics
// @Description Public counters: active questions and completed quizzes
// @Tags home
// @Produce json
// @Success 200 {object} dto.HomeStatsResponse
// @Router /home/stats [get]
func (h *UserHandler) GetHomeStats(c *fiber.Ctx) error {
	resp, err := h.service.GetHomeStats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
