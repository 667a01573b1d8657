package domain

import "context"

// QuestionFilter narrows question listing and selection.
type QuestionFilter struct {
	Difficulty Difficulty
	ActiveOnly bool
}

// QuestionRepository defines the interface for question bank persistence
type QuestionRepository interface {
	// GetQuestionByID retrieves a question by its ID
	GetQuestionByID(ctx context.Context, id string) (*Question, error)

	// CountQuestions counts questions matching the filter
	CountQuestions(ctx context.Context, filter QuestionFilter) (int, error)

	// SelectRandomQuestions draws up to count distinct questions matching the
	// filter, in random order
	SelectRandomQuestions(ctx context.Context, filter QuestionFilter, count int) ([]*Question, error)

	// ListQuestions returns a page of questions matching the filter and the
	// total match count
	ListQuestions(ctx context.Context, filter QuestionFilter, limit, offset int) ([]*Question, int, error)

	// SaveQuestion persists a new question
	SaveQuestion(ctx context.Context, question *Question) error

	// UpdateQuestion updates an existing question
	UpdateQuestion(ctx context.Context, question *Question) error

	// DeleteQuestions soft-deletes the given questions and returns the number
	// of rows affected
	DeleteQuestions(ctx context.Context, ids []string) (int, error)

	// SetQuestionsActive toggles the active flag on the given questions and
	// returns the number of rows affected
	SetQuestionsActive(ctx context.Context, ids []string, active bool) (int, error)
}

// ResultRepository defines the interface for result persistence
type ResultRepository interface {
	// SaveResult persists a completed result. It fails with an
	// ALREADY_SUBMITTED domain error if a result for the same attempt exists.
	SaveResult(ctx context.Context, result *Result) error

	// GetResultByID retrieves a result by its ID
	GetResultByID(ctx context.Context, id string) (*Result, error)

	// GetResultsByUserID returns a page of the user's results ordered by
	// completion time descending, plus the total count
	GetResultsByUserID(ctx context.Context, userID string, limit, offset int) ([]*Result, int, error)

	// GetUserResultStats aggregates a user's result history
	GetUserResultStats(ctx context.Context, userID string) (*UserResultStats, error)

	// GetLeaderboard returns up to limit users ranked by best percentage,
	// ties broken by the earliest time the best score was achieved
	GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)

	// CountResults counts all persisted results
	CountResults(ctx context.Context) (int, error)
}

// UserResultStats aggregates one user's history.
type UserResultStats struct {
	TotalAttempts     int     `json:"total_attempts"`
	BestPercentage    float64 `json:"best_percentage"`
	AveragePercentage float64 `json:"average_percentage"`
	QuestionsAnswered int     `json:"questions_answered"`
	CorrectAnswers    int     `json:"correct_answers"`
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
}
