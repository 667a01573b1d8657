package validation

import (
	"regexp"
	"strings"

	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
)

const (
	minQuestionCount        = 1
	defaultMaxQuestionCount = 50
	minUsernameLen          = 3
	maxUsernameLen   = 30
	minPasswordLen   = 8
	maxPasswordLen   = 72 // bcrypt input limit
	maxBulkIDs       = 100
)

var (
	ulidPattern     = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateStartQuizRequest validates the parameters for starting an attempt.
// maxCount is the deployment's per-attempt question cap; a non-positive value
// falls back to the built-in default.
func (v *Validator) ValidateStartQuizRequest(difficulty string, count, maxCount int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if maxCount <= 0 {
		maxCount = defaultMaxQuestionCount
	}

	if difficulty != "" {
		if _, ok := domain.ParseDifficulty(difficulty); !ok {
			errors = append(errors, domain.NewInvalidFormatError("difficulty", difficulty))
		}
	}

	// A zero count means "use the configured default".
	if count != 0 && (count < minQuestionCount || count > maxCount) {
		errors = append(errors, domain.NewOutOfRangeError("count", count, minQuestionCount, maxCount))
	}

	return errors
}

// ValidateRecordAnswerRequest validates the answer submission for one question.
func (v *Validator) ValidateRecordAnswerRequest(questionID, chosenLabel string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(questionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("question_id"))
	} else if !isValidULID(questionID) {
		errors = append(errors, domain.NewInvalidFormatError("question_id", questionID))
	}

	if strings.TrimSpace(chosenLabel) == "" {
		errors = append(errors, domain.NewMissingFieldError("chosen_label"))
	} else if _, ok := domain.ParseChoiceLabel(chosenLabel); !ok {
		errors = append(errors, domain.NewInvalidFormatError("chosen_label", chosenLabel))
	}

	return errors
}

// ValidateRegisterRequest validates a registration payload.
func (v *Validator) ValidateRegisterRequest(req *dto.RegisterRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	username := strings.TrimSpace(req.Username)
	if username == "" {
		errors = append(errors, domain.NewMissingFieldError("username"))
	} else if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		errors = append(errors, domain.NewOutOfRangeError("username", len(username), minUsernameLen, maxUsernameLen))
	} else if !usernamePattern.MatchString(username) {
		errors = append(errors, domain.NewInvalidFormatError("username", username))
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errors = append(errors, domain.NewMissingFieldError("email"))
	} else if !emailPattern.MatchString(email) {
		errors = append(errors, domain.NewInvalidFormatError("email", email))
	}

	if req.Password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	} else if len(req.Password) < minPasswordLen || len(req.Password) > maxPasswordLen {
		errors = append(errors, domain.NewOutOfRangeError("password", len(req.Password), minPasswordLen, maxPasswordLen))
	}

	return errors
}

// ValidateLoginRequest validates a login payload.
func (v *Validator) ValidateLoginRequest(req *dto.LoginRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Username) == "" {
		errors = append(errors, domain.NewMissingFieldError("username"))
	}
	if req.Password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	}

	return errors
}

// ValidateQuestionRequest validates an admin create/update payload.
func (v *Validator) ValidateQuestionRequest(req *dto.QuestionRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Text) == "" {
		errors = append(errors, domain.NewMissingFieldError("text"))
	}
	for field, choice := range map[string]string{
		"choice_a": req.ChoiceA,
		"choice_b": req.ChoiceB,
		"choice_c": req.ChoiceC,
		"choice_d": req.ChoiceD,
	} {
		if strings.TrimSpace(choice) == "" {
			errors = append(errors, domain.NewMissingFieldError(field))
		}
	}

	if strings.TrimSpace(req.CorrectLabel) == "" {
		errors = append(errors, domain.NewMissingFieldError("correct_label"))
	} else if _, ok := domain.ParseChoiceLabel(req.CorrectLabel); !ok {
		errors = append(errors, domain.NewInvalidFormatError("correct_label", req.CorrectLabel))
	}

	if strings.TrimSpace(req.Difficulty) == "" {
		errors = append(errors, domain.NewMissingFieldError("difficulty"))
	} else if d, ok := domain.ParseDifficulty(req.Difficulty); !ok || d == domain.DifficultyAll {
		errors = append(errors, domain.NewInvalidFormatError("difficulty", req.Difficulty))
	}

	return errors
}

// ValidateBulkIDsRequest validates a bulk-action ID list.
func (v *Validator) ValidateBulkIDsRequest(ids []string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(ids) == 0 {
		errors = append(errors, domain.NewMissingFieldError("ids"))
		return errors
	}
	if len(ids) > maxBulkIDs {
		errors = append(errors, domain.NewOutOfRangeError("ids", len(ids), 1, maxBulkIDs))
		return errors
	}
	for _, id := range ids {
		if !isValidULID(id) {
			errors = append(errors, domain.NewInvalidFormatError("ids", id))
			break
		}
	}

	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	// ULID is 26 characters long, Crockford's Base32
	return len(s) == 26 && ulidPattern.MatchString(s)
}
