package middleware

import (
	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	ValidatedDifficultyKey = "validated_difficulty"
	ValidatedPaginationKey = "validated_pagination"
)

const maxPageSize = 100

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateQuestionListParams validates the difficulty filter and pagination
// query parameters of the question list endpoint and stashes the parsed
// values in the request locals.
func (vm *ValidationMiddleware) ValidateQuestionListParams(defaultLimit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		difficultyStr := c.Query("difficulty", string(domain.DifficultyAll))
		difficulty, ok := domain.ParseDifficulty(difficultyStr)
		if !ok {
			return domain.ValidationErrors{
				domain.NewInvalidFormatError("difficulty", difficultyStr),
			}
		}

		limit := defaultLimit
		if limitStr := c.Query("limit"); limitStr != "" {
			parsed, err := parsePositiveInt(limitStr, maxPageSize)
			if err != nil {
				return domain.ValidationErrors{
					domain.NewInvalidFormatError("limit", limitStr),
				}
			}
			limit = parsed
		}

		offset := c.QueryInt("offset", 0)
		if offset < 0 {
			return domain.ValidationErrors{
				domain.NewInvalidFormatError("offset", c.Query("offset")),
			}
		}

		c.Locals(ValidatedDifficultyKey, difficulty)
		c.Locals(ValidatedPaginationKey, dto.Pagination{Limit: limit, Offset: offset})
		return c.Next()
	}
}

// parsePositiveInt parses a digit-only query value in the range [1, max].
func parsePositiveInt(s string, max int) (int, error) {
	value := 0
	for _, char := range s {
		if char < '0' || char > '9' {
			return 0, domain.NewInvalidInputError("value must be a number")
		}
		value = value*10 + int(char-'0')
		if value > max {
			return 0, domain.NewInvalidInputError("value exceeds maximum")
		}
	}
	if value == 0 {
		return 0, domain.NewInvalidInputError("value must be greater than 0")
	}
	return value, nil
}
