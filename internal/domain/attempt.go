package domain

import "time"

// AttemptQuestion is the snapshot of one question taken when an attempt
// starts. Snapshotting keeps the attempt stable even if an administrator
// edits or deletes the question mid-run.
type AttemptQuestion struct {
	QuestionID   string                 `json:"question_id"`
	Text         string                 `json:"text"`
	Choices      map[ChoiceLabel]string `json:"choices"`
	CorrectLabel ChoiceLabel            `json:"correct_label"`
}

// QuizAttempt is one user's in-progress run through a selected question
// sequence. It lives in the session store, never in the relational store,
// and is scoped to one user.
type QuizAttempt struct {
	ID         string                 `json:"id"`
	UserID     string                 `json:"user_id"`
	Difficulty Difficulty             `json:"difficulty"`
	Count      int                    `json:"count"`
	Questions  []AttemptQuestion      `json:"questions"`
	Answers    map[string]ChoiceLabel `json:"answers"` // question ID -> chosen label
	StartedAt  time.Time              `json:"started_at"`
	Submitted  bool                   `json:"submitted"`
	ResultID   string                 `json:"result_id,omitempty"` // set once the attempt is scored
}

// MarkSubmitted closes the attempt and records the result it produced.
func (a *QuizAttempt) MarkSubmitted(resultID string) {
	a.Submitted = true
	a.ResultID = resultID
}

// NewQuizAttempt creates an attempt over the given question snapshots.
func NewQuizAttempt(id, userID string, difficulty Difficulty, questions []AttemptQuestion) *QuizAttempt {
	return &QuizAttempt{
		ID:         id,
		UserID:     userID,
		Difficulty: difficulty,
		Count:      len(questions),
		Questions:  questions,
		Answers:    make(map[string]ChoiceLabel),
		StartedAt:  time.Now(),
	}
}

// HasQuestion reports whether the question is part of this attempt.
func (a *QuizAttempt) HasQuestion(questionID string) bool {
	for _, q := range a.Questions {
		if q.QuestionID == questionID {
			return true
		}
	}
	return false
}

// RecordAnswer stores the user's choice for a question, overwriting any
// prior choice for the same question.
func (a *QuizAttempt) RecordAnswer(questionID string, label ChoiceLabel) error {
	if a.Submitted {
		return NewAlreadySubmittedError(a.ID)
	}
	if !a.HasQuestion(questionID) {
		return NewQuestionNotFoundError(questionID)
	}
	if a.Answers == nil {
		a.Answers = make(map[string]ChoiceLabel)
	}
	a.Answers[questionID] = label
	return nil
}

// Score compares every recorded answer against the snapshot's correct label
// and returns the per-question breakdown. An unanswered or mismatching label
// counts as incorrect.
func (a *QuizAttempt) Score() (correct int, breakdown []AnswerDetail) {
	breakdown = make([]AnswerDetail, 0, len(a.Questions))
	for _, q := range a.Questions {
		chosen, answered := a.Answers[q.QuestionID]
		isCorrect := answered && chosen == q.CorrectLabel
		if isCorrect {
			correct++
		}
		breakdown = append(breakdown, AnswerDetail{
			QuestionID:   q.QuestionID,
			Text:         q.Text,
			Choices:      q.Choices,
			ChosenLabel:  chosen,
			CorrectLabel: q.CorrectLabel,
			IsCorrect:    isCorrect,
		})
	}
	return correct, breakdown
}

// AnswerDetail is the scored outcome for a single question of an attempt.
type AnswerDetail struct {
	QuestionID   string                 `json:"question_id"`
	Text         string                 `json:"text"`
	Choices      map[ChoiceLabel]string `json:"choices"`
	ChosenLabel  ChoiceLabel            `json:"chosen_label,omitempty"`
	CorrectLabel ChoiceLabel            `json:"correct_label"`
	IsCorrect    bool                   `json:"is_correct"`
}
