package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizdeck/internal/domain"
	"quizdeck/internal/repository/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

// sqlxResultRepository implements domain.ResultRepository using sqlx.
type sqlxResultRepository struct {
	db *sqlx.DB
}

// NewSQLXResultRepository creates a new instance of sqlxResultRepository.
func NewSQLXResultRepository(db *sqlx.DB) domain.ResultRepository {
	return &sqlxResultRepository{db: db}
}

func toDomainResult(m *models.Result) *domain.Result {
	if m == nil {
		return nil
	}

	answers := make(map[string]domain.ChoiceLabel, len(m.Answers))
	for qid, label := range m.Answers {
		answers[qid] = domain.ChoiceLabel(label)
	}

	questions := make([]domain.AttemptQuestion, len(m.Questions))
	for i, snap := range m.Questions {
		choices := make(map[domain.ChoiceLabel]string, len(snap.Choices))
		for label, text := range snap.Choices {
			choices[domain.ChoiceLabel(label)] = text
		}
		questions[i] = domain.AttemptQuestion{
			QuestionID:   snap.QuestionID,
			Text:         snap.Text,
			Choices:      choices,
			CorrectLabel: domain.ChoiceLabel(snap.CorrectLabel),
		}
	}

	return &domain.Result{
		ID:          m.ID,
		UserID:      m.UserID,
		AttemptID:   m.AttemptID,
		Correct:     m.CorrectCount,
		Total:       m.TotalCount,
		Percentage:  m.Percentage,
		Difficulty:  domain.Difficulty(m.Difficulty),
		TimeTaken:   time.Duration(m.TimeTakenSecs) * time.Second,
		Answers:     answers,
		Questions:   questions,
		CompletedAt: m.CompletedAt,
		CreatedAt:   m.CreatedAt,
	}
}

func fromDomainResult(r *domain.Result) *models.Result {
	if r == nil {
		return nil
	}

	answers := make(models.AnswerMap, len(r.Answers))
	for qid, label := range r.Answers {
		answers[qid] = string(label)
	}

	questions := make(models.QuestionSnapshots, len(r.Questions))
	for i, q := range r.Questions {
		choices := make(map[string]string, len(q.Choices))
		for label, text := range q.Choices {
			choices[string(label)] = text
		}
		questions[i] = models.QuestionSnapshot{
			QuestionID:   q.QuestionID,
			Text:         q.Text,
			Choices:      choices,
			CorrectLabel: string(q.CorrectLabel),
		}
	}

	return &models.Result{
		ID:            r.ID,
		UserID:        r.UserID,
		AttemptID:     r.AttemptID,
		CorrectCount:  r.Correct,
		TotalCount:    r.Total,
		Percentage:    r.Percentage,
		Difficulty:    string(r.Difficulty),
		TimeTakenSecs: int64(r.TimeTaken.Seconds()),
		Answers:       answers,
		Questions:     questions,
		CompletedAt:   r.CompletedAt,
		CreatedAt:     r.CreatedAt,
	}
}

const pgUniqueViolation = "23505"

// SaveResult persists a completed result. The UNIQUE constraint on
// attempt_id is the backstop against duplicate submissions racing past the
// session-store check.
func (r *sqlxResultRepository) SaveResult(ctx context.Context, result *domain.Result) error {
	m := fromDomainResult(result)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	query := `INSERT INTO results (id, user_id, attempt_id, correct_count, total_count, percentage, difficulty, time_taken_secs, answers, questions, completed_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.UserID, m.AttemptID, m.CorrectCount, m.TotalCount, m.Percentage,
		m.Difficulty, m.TimeTakenSecs, m.Answers, m.Questions, m.CompletedAt, m.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.NewAlreadySubmittedError(result.AttemptID)
		}
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// GetResultByID retrieves a result by its ID.
func (r *sqlxResultRepository) GetResultByID(ctx context.Context, id string) (*domain.Result, error) {
	var m models.Result
	query := `SELECT * FROM results WHERE id = $1`
	if err := r.db.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get result by id: %w", err)
	}
	return toDomainResult(&m), nil
}

// GetResultsByUserID returns a page of the user's results ordered by
// completion time descending, plus the total count. The limit/offset pair
// makes the sequence restartable from any page.
func (r *sqlxResultRepository) GetResultsByUserID(ctx context.Context, userID string, limit, offset int) ([]*domain.Result, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM results WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count results for user: %w", err)
	}

	var rows []models.Result
	query := `SELECT * FROM results WHERE user_id = $1 ORDER BY completed_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to get results for user: %w", err)
	}

	results := make([]*domain.Result, len(rows))
	for i := range rows {
		results[i] = toDomainResult(&rows[i])
	}
	return results, total, nil
}

// GetUserResultStats aggregates a user's result history in one query.
func (r *sqlxResultRepository) GetUserResultStats(ctx context.Context, userID string) (*domain.UserResultStats, error) {
	var row struct {
		TotalAttempts     int             `db:"total_attempts"`
		BestPercentage    sql.NullFloat64 `db:"best_percentage"`
		AveragePercentage sql.NullFloat64 `db:"average_percentage"`
		QuestionsAnswered sql.NullInt64   `db:"questions_answered"`
		CorrectAnswers    sql.NullInt64   `db:"correct_answers"`
	}

	query := `SELECT COUNT(*) AS total_attempts,
	                 MAX(percentage) AS best_percentage,
	                 AVG(percentage) AS average_percentage,
	                 SUM(total_count) AS questions_answered,
	                 SUM(correct_count) AS correct_answers
	          FROM results WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get result stats for user: %w", err)
	}

	return &domain.UserResultStats{
		TotalAttempts:     row.TotalAttempts,
		BestPercentage:    row.BestPercentage.Float64,
		AveragePercentage: row.AveragePercentage.Float64,
		QuestionsAnswered: int(row.QuestionsAnswered.Int64),
		CorrectAnswers:    int(row.CorrectAnswers.Int64),
	}, nil
}

// GetLeaderboard ranks users by their best percentage; ties are broken by
// the earliest time the best score was achieved.
func (r *sqlxResultRepository) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []struct {
		UserID         string    `db:"user_id"`
		Username       string    `db:"username"`
		BestPercentage float64   `db:"best_percentage"`
		TotalAttempts  int       `db:"total_attempts"`
		AchievedAt     time.Time `db:"achieved_at"`
	}

	query := `SELECT r.user_id,
	                 u.username,
	                 MAX(r.percentage) AS best_percentage,
	                 COUNT(*) AS total_attempts,
	                 MIN(r.completed_at) FILTER (WHERE r.percentage = best.best_pct) AS achieved_at
	          FROM results r
	          JOIN users u ON u.id = r.user_id
	          JOIN (SELECT user_id, MAX(percentage) AS best_pct FROM results GROUP BY user_id) best
	            ON best.user_id = r.user_id
	          GROUP BY r.user_id, u.username
	          ORDER BY best_percentage DESC, achieved_at ASC
	          LIMIT $1`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.LeaderboardEntry{
			Rank:           i + 1,
			UserID:         row.UserID,
			Username:       row.Username,
			BestPercentage: row.BestPercentage,
			TotalAttempts:  row.TotalAttempts,
			AchievedAt:     row.AchievedAt,
		}
	}
	return entries, nil
}

// CountResults counts all persisted results.
func (r *sqlxResultRepository) CountResults(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM results`); err != nil {
		return 0, fmt.Errorf("failed to count results: %w", err)
	}
	return count, nil
}
