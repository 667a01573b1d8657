package domain

import (
	"strings"
	"time"
)

// Difficulty is the question difficulty level.
type Difficulty string

const (
	DifficultyAll    Difficulty = "ALL" // no filter
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// ParseDifficulty normalizes a difficulty string. An empty string means no
// filter and maps to DifficultyAll.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(strings.ToUpper(strings.TrimSpace(s))) {
	case "", DifficultyAll:
		return DifficultyAll, true
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyMedium:
		return DifficultyMedium, true
	case DifficultyHard:
		return DifficultyHard, true
	default:
		return "", false
	}
}

// IsFilter reports whether the difficulty restricts question selection.
func (d Difficulty) IsFilter() bool {
	return d != DifficultyAll && d != ""
}

// ChoiceLabel identifies one of the four answer choices.
type ChoiceLabel string

const (
	ChoiceA ChoiceLabel = "A"
	ChoiceB ChoiceLabel = "B"
	ChoiceC ChoiceLabel = "C"
	ChoiceD ChoiceLabel = "D"
)

// ChoiceLabels lists the labels in presentation order.
var ChoiceLabels = []ChoiceLabel{ChoiceA, ChoiceB, ChoiceC, ChoiceD}

// ParseChoiceLabel normalizes a choice label string.
func ParseChoiceLabel(s string) (ChoiceLabel, bool) {
	switch ChoiceLabel(strings.ToUpper(strings.TrimSpace(s))) {
	case ChoiceA:
		return ChoiceA, true
	case ChoiceB:
		return ChoiceB, true
	case ChoiceC:
		return ChoiceC, true
	case ChoiceD:
		return ChoiceD, true
	default:
		return "", false
	}
}

const minQuestionTextLen = 10

// Question is a multiple-choice question in the bank.
type Question struct {
	ID           string
	Text         string
	ChoiceA      string
	ChoiceB      string
	ChoiceC      string
	ChoiceD      string
	CorrectLabel ChoiceLabel
	Difficulty   Difficulty
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// NewQuestion creates a new active Question.
func NewQuestion(text, a, b, c, d string, correct ChoiceLabel, difficulty Difficulty) *Question {
	now := time.Now()
	return &Question{
		Text:         text,
		ChoiceA:      a,
		ChoiceB:      b,
		ChoiceC:      c,
		ChoiceD:      d,
		CorrectLabel: correct,
		Difficulty:   difficulty,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Choices returns the four choices keyed by label, in presentation order.
func (q *Question) Choices() map[ChoiceLabel]string {
	return map[ChoiceLabel]string{
		ChoiceA: q.ChoiceA,
		ChoiceB: q.ChoiceB,
		ChoiceC: q.ChoiceC,
		ChoiceD: q.ChoiceD,
	}
}

// Choice returns the choice text for a label, or "" for an unknown label.
func (q *Question) Choice(label ChoiceLabel) string {
	switch label {
	case ChoiceA:
		return q.ChoiceA
	case ChoiceB:
		return q.ChoiceB
	case ChoiceC:
		return q.ChoiceC
	case ChoiceD:
		return q.ChoiceD
	default:
		return ""
	}
}

// CorrectChoiceText returns the text of the correct answer.
func (q *Question) CorrectChoiceText() string {
	return q.Choice(q.CorrectLabel)
}

// Validate validates the question. The correct label must name one of the
// four labels and its choice text must be non-empty.
func (q *Question) Validate() ValidationErrors {
	var errs ValidationErrors

	if len(strings.TrimSpace(q.Text)) < minQuestionTextLen {
		errs = append(errs, NewValidationError("text", "question must be at least 10 characters long"))
	}
	for _, label := range ChoiceLabels {
		if strings.TrimSpace(q.Choice(label)) == "" {
			errs = append(errs, NewMissingFieldError("choice_"+strings.ToLower(string(label))))
		}
	}
	if _, ok := ParseChoiceLabel(string(q.CorrectLabel)); !ok {
		errs = append(errs, NewInvalidFormatError("correct_label", string(q.CorrectLabel)))
	}
	if d, ok := ParseDifficulty(string(q.Difficulty)); !ok || !d.IsFilter() {
		errs = append(errs, NewInvalidFormatError("difficulty", string(q.Difficulty)))
	}
	return errs
}
