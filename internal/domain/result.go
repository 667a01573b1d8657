package domain

import "time"

// Result is the immutable scored outcome of a completed attempt. Created
// exactly once per attempt; the repository enforces uniqueness on AttemptID.
type Result struct {
	ID          string
	UserID      string
	AttemptID   string
	Correct     int
	Total       int
	Percentage  float64
	Difficulty  Difficulty
	TimeTaken   time.Duration
	Answers     map[string]ChoiceLabel // question ID -> chosen label
	Questions   []AttemptQuestion      // question snapshots for the breakdown view
	CompletedAt time.Time
	CreatedAt   time.Time
}

// NewResult builds a Result from a scored attempt.
func NewResult(id string, attempt *QuizAttempt, correct int) *Result {
	now := time.Now()
	r := &Result{
		ID:          id,
		UserID:      attempt.UserID,
		AttemptID:   attempt.ID,
		Correct:     correct,
		Total:       len(attempt.Questions),
		Difficulty:  attempt.Difficulty,
		TimeTaken:   now.Sub(attempt.StartedAt),
		Answers:     attempt.Answers,
		Questions:   attempt.Questions,
		CompletedAt: now,
		CreatedAt:   now,
	}
	if r.Total > 0 {
		r.Percentage = float64(r.Correct) / float64(r.Total) * 100
	}
	return r
}

// Grade returns the letter grade for the percentage.
func (r *Result) Grade() string {
	switch {
	case r.Percentage >= 90:
		return "A"
	case r.Percentage >= 80:
		return "B"
	case r.Percentage >= 70:
		return "C"
	case r.Percentage >= 60:
		return "D"
	default:
		return "F"
	}
}

// Passed reports whether the result meets the 60% pass mark.
func (r *Result) Passed() bool {
	return r.Percentage >= 60
}

// Validate checks the result invariants before persistence.
func (r *Result) Validate() error {
	if r.UserID == "" {
		return NewInvalidInputError("user ID is required")
	}
	if r.AttemptID == "" {
		return NewInvalidInputError("attempt ID is required")
	}
	if r.Correct < 0 || r.Correct > r.Total {
		return NewInvalidInputError("correct count must be between 0 and total")
	}
	return nil
}

// LeaderboardEntry is one ranked row of the leaderboard: a user's best
// percentage, when it was first achieved, and their attempt count.
type LeaderboardEntry struct {
	Rank           int       `json:"rank"`
	UserID         string    `json:"user_id"`
	Username       string    `json:"username"`
	BestPercentage float64   `json:"best_percentage"`
	TotalAttempts  int       `json:"total_attempts"`
	AchievedAt     time.Time `json:"achieved_at"`
}
