package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeConflict     ErrorCode = "CONFLICT"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Quiz specific errors
	CodeQuestionNotFound      ErrorCode = "QUESTION_NOT_FOUND"
	CodeAttemptNotFound       ErrorCode = "ATTEMPT_NOT_FOUND"
	CodeInsufficientQuestions ErrorCode = "INSUFFICIENT_QUESTIONS"
	CodeAlreadySubmitted      ErrorCode = "ALREADY_SUBMITTED"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithContext attaches additional detail surfaced in the error response
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Helper constructors for common errors

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(CodeForbidden, message, nil)
}

func NewQuestionNotFoundError(questionID string) *DomainError {
	return NewError(CodeQuestionNotFound, fmt.Sprintf("question not found: %s", questionID), nil)
}

func NewAttemptNotFoundError(attemptID string) *DomainError {
	return NewError(CodeAttemptNotFound, fmt.Sprintf("attempt not found: %s", attemptID), nil)
}

// NewInsufficientQuestionsError is returned when the question bank cannot
// satisfy the requested difficulty/count combination.
func NewInsufficientQuestionsError(difficulty Difficulty, requested, available int) *DomainError {
	return NewError(
		CodeInsufficientQuestions,
		fmt.Sprintf("only %d questions are available, requested %d", available, requested),
		nil,
	).WithContext("difficulty", string(difficulty)).
		WithContext("requested", requested).
		WithContext("available", available)
}

// NewAlreadySubmittedError is returned on a duplicate submission of one attempt.
func NewAlreadySubmittedError(attemptID string) *DomainError {
	return NewError(CodeAlreadySubmitted, fmt.Sprintf("attempt already submitted: %s", attemptID), nil)
}

// ValidationError represents a single field-level validation failure
type ValidationError struct {
	Code    ErrorCode `json:"code"`
	Field   string    `json:"field"`
	Message string    `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field-level failures so the form layer can
// re-display them all at once.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

func NewValidationError(field, message string) ValidationError {
	return ValidationError{Code: CodeValidation, Field: field, Message: message}
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Code: CodeMissingField, Field: field, Message: fmt.Sprintf("%s is required", field)}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Code: CodeInvalidFormat, Field: field, Message: fmt.Sprintf("invalid format for %s: %s", field, value)}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{Code: CodeOutOfRange, Field: field, Message: fmt.Sprintf("%s must be between %d and %d, got %d", field, min, max, value)}
}
