package handler

import (
	"quizdeck/internal/config"
	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/middleware"
	"quizdeck/internal/service"
	"quizdeck/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles the attempt lifecycle HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
	maxCount  int
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, cfg *config.Config) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
		maxCount:  cfg.Quiz.MaxQuestionCount,
	}
}

// StartAttempt godoc
// @Summary Start a quiz attempt
// @Description Draws a randomized question set and opens a new attempt
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.StartQuizRequest true "Attempt configuration"
// @Success 201 {object} dto.AttemptResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid configuration or insufficient questions"
// @Failure 401 {object} middleware.ErrorResponse
// @Router /quiz/attempts [post]
func (h *QuizHandler) StartAttempt(c *fiber.Ctx) error {
	var req dto.StartQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	if req.Difficulty == "" {
		req.Difficulty = string(domain.DifficultyAll)
	}
	if errs := h.validator.ValidateStartQuizRequest(req.Difficulty, req.Count, h.maxCount); len(errs) > 0 {
		return errs
	}
	difficulty, _ := domain.ParseDifficulty(req.Difficulty)

	resp, err := h.service.StartAttempt(c.Context(), middleware.UserIDFromContext(c), difficulty, req.Count)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetAttempt godoc
// @Summary Get an in-progress attempt
// @Description Returns the current state of an attempt, correct answers excluded
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 404 {object} middleware.ErrorResponse "Attempt not found or expired"
// @Router /quiz/attempts/{attemptId} [get]
func (h *QuizHandler) GetAttempt(c *fiber.Ctx) error {
	resp, err := h.service.GetAttempt(c.Context(), middleware.UserIDFromContext(c), c.Params("attemptId"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// RecordAnswer godoc
// @Summary Answer a question
// @Description Stores the chosen label for one question, overwriting any prior choice
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path string true "Attempt ID"
// @Param request body dto.RecordAnswerRequest true "Answer details"
// @Success 200 {object} dto.AttemptResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "Attempt or question not found"
// @Failure 409 {object} middleware.ErrorResponse "Attempt already submitted"
// @Router /quiz/attempts/{attemptId}/answers [put]
func (h *QuizHandler) RecordAnswer(c *fiber.Ctx) error {
	var req dto.RecordAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	if errs := h.validator.ValidateRecordAnswerRequest(req.QuestionID, req.ChosenLabel); len(errs) > 0 {
		return errs
	}
	label, _ := domain.ParseChoiceLabel(req.ChosenLabel)

	resp, err := h.service.RecordAnswer(c.Context(), middleware.UserIDFromContext(c), c.Params("attemptId"), req.QuestionID, label)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAttempt godoc
// @Summary Submit an attempt for scoring
// @Description Scores the attempt, persists the result and closes the session
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path string true "Attempt ID"
// @Success 200 {object} dto.ResultResponse
// @Failure 404 {object} middleware.ErrorResponse "Attempt not found or expired"
// @Failure 409 {object} middleware.ErrorResponse "Attempt already submitted"
// @Router /quiz/attempts/{attemptId}/submit [post]
func (h *QuizHandler) SubmitAttempt(c *fiber.Ctx) error {
	resp, err := h.service.SubmitAttempt(c.Context(), middleware.UserIDFromContext(c), c.Params("attemptId"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// AbandonAttempt godoc
// @Summary Abandon an in-progress attempt
// @Description Discards the attempt without scoring; submitted attempts cannot be abandoned
// @Tags quiz
// @Security ApiKeyAuth
// @Param attemptId path string true "Attempt ID"
// @Success 204 "No Content"
// @Failure 404 {object} middleware.ErrorResponse "Attempt not found or expired"
// @Failure 409 {object} middleware.ErrorResponse "Attempt already submitted"
// @Router /quiz/attempts/{attemptId} [delete]
func (h *QuizHandler) AbandonAttempt(c *fiber.Ctx) error {
	if err := h.service.AbandonAttempt(c.Context(), middleware.UserIDFromContext(c), c.Params("attemptId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetResult godoc
// @Summary Get a scored result
// @Description Returns a persisted result with its per-question breakdown
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param resultId path string true "Result ID"
// @Success 200 {object} dto.ResultResponse
// @Failure 403 {object} middleware.ErrorResponse "Result belongs to another user"
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/results/{resultId} [get]
func (h *QuizHandler) GetResult(c *fiber.Ctx) error {
	resp, err := h.service.GetResult(c.Context(), middleware.UserIDFromContext(c), c.Params("resultId"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
