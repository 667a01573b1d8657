package handler

import (
	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/middleware"
	"quizdeck/internal/service"
	"quizdeck/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles question-bank management requests
type AdminHandler struct {
	service   service.AdminService
	validator *validation.Validator
}

// NewAdminHandler creates a new AdminHandler instance
func NewAdminHandler(service service.AdminService) *AdminHandler {
	return &AdminHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateQuestion godoc
// @Summary Create a question
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.QuestionRequest true "Question details"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /admin/questions [post]
func (h *AdminHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateQuestionRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.CreateQuestion(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetQuestion godoc
// @Summary Get a question
// @Description Returns one question, correct label included
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path string true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/questions/{questionId} [get]
func (h *AdminHandler) GetQuestion(c *fiber.Ctx) error {
	resp, err := h.service.GetQuestion(c.Context(), c.Params("questionId"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListQuestions godoc
// @Summary List questions
// @Description Returns a page of the bank, newest first
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param difficulty query string false "Difficulty filter" Enums(ALL, EASY, MEDIUM, HARD)
// @Param active_only query bool false "Only active questions"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.QuestionListResponse
// @Router /admin/questions [get]
func (h *AdminHandler) ListQuestions(c *fiber.Ctx) error {
	// Set by middleware.ValidateQuestionListParams; fall back to raw query
	// parsing when the route is mounted without it.
	difficulty, ok := c.Locals(middleware.ValidatedDifficultyKey).(domain.Difficulty)
	if !ok {
		difficultyStr := c.Query("difficulty", string(domain.DifficultyAll))
		if difficulty, ok = domain.ParseDifficulty(difficultyStr); !ok {
			return domain.ValidationErrors{domain.NewInvalidFormatError("difficulty", difficultyStr)}
		}
	}
	pagination, ok := c.Locals(middleware.ValidatedPaginationKey).(dto.Pagination)
	if !ok {
		pagination = paginationFromQuery(c, 20)
	}

	resp, err := h.service.ListQuestions(c.Context(), difficulty, c.QueryBool("active_only", false), pagination)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path string true "Question ID"
// @Param request body dto.QuestionRequest true "Question details"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/questions/{questionId} [put]
func (h *AdminHandler) UpdateQuestion(c *fiber.Ctx) error {
	var req dto.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateQuestionRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.UpdateQuestion(c.Context(), c.Params("questionId"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Description Soft-deletes one question; it no longer appears in new attempts
// @Tags admin
// @Security ApiKeyAuth
// @Param questionId path string true "Question ID"
// @Success 204 "No Content"
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/questions/{questionId} [delete]
func (h *AdminHandler) DeleteQuestion(c *fiber.Ctx) error {
	if err := h.service.DeleteQuestion(c.Context(), c.Params("questionId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BulkDeleteQuestions godoc
// @Summary Bulk delete questions
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.BulkIDsRequest true "Question IDs"
// @Success 200 {object} dto.BulkActionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /admin/questions/bulk-delete [post]
func (h *AdminHandler) BulkDeleteQuestions(c *fiber.Ctx) error {
	var req dto.BulkIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateBulkIDsRequest(req.IDs); len(errs) > 0 {
		return errs
	}

	affected, err := h.service.BulkDeleteQuestions(c.Context(), req.IDs)
	if err != nil {
		return err
	}
	return c.JSON(dto.BulkActionResponse{Affected: affected})
}

// BulkActivateQuestions godoc
// @Summary Bulk activate questions
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.BulkIDsRequest true "Question IDs"
// @Success 200 {object} dto.BulkActionResponse
// @Router /admin/questions/bulk-activate [post]
func (h *AdminHandler) BulkActivateQuestions(c *fiber.Ctx) error {
	return h.bulkSetActive(c, true)
}

// BulkDeactivateQuestions godoc
// @Summary Bulk deactivate questions
// @Description Deactivated questions stay in the bank but are excluded from new attempts
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.BulkIDsRequest true "Question IDs"
// @Success 200 {object} dto.BulkActionResponse
// @Router /admin/questions/bulk-deactivate [post]
func (h *AdminHandler) BulkDeactivateQuestions(c *fiber.Ctx) error {
	return h.bulkSetActive(c, false)
}

func (h *AdminHandler) bulkSetActive(c *fiber.Ctx, active bool) error {
	var req dto.BulkIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateBulkIDsRequest(req.IDs); len(errs) > 0 {
		return errs
	}

	affected, err := h.service.BulkSetQuestionsActive(c.Context(), req.IDs, active)
	if err != nil {
		return err
	}
	return c.JSON(dto.BulkActionResponse{Affected: affected})
}
