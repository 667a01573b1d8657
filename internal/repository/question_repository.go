package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"quizdeck/internal/domain"
	"quizdeck/internal/repository/models"
	"quizdeck/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxQuestionRepository implements domain.QuestionRepository using sqlx.
type sqlxQuestionRepository struct {
	db *sqlx.DB
}

// NewSQLXQuestionRepository creates a new instance of sqlxQuestionRepository.
func NewSQLXQuestionRepository(db *sqlx.DB) domain.QuestionRepository {
	return &sqlxQuestionRepository{db: db}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}
	return &domain.Question{
		ID:           m.ID,
		Text:         m.Text,
		ChoiceA:      m.ChoiceA,
		ChoiceB:      m.ChoiceB,
		ChoiceC:      m.ChoiceC,
		ChoiceD:      m.ChoiceD,
		CorrectLabel: domain.ChoiceLabel(m.CorrectLabel),
		Difficulty:   domain.Difficulty(m.Difficulty),
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		DeletedAt:    deletedAt,
	}
}

func fromDomainQuestion(q *domain.Question) *models.Question {
	if q == nil {
		return nil
	}
	var deletedAt sql.NullTime
	if q.DeletedAt != nil {
		deletedAt = util.TimeToNullTime(*q.DeletedAt)
	}
	return &models.Question{
		ID:           q.ID,
		Text:         q.Text,
		ChoiceA:      q.ChoiceA,
		ChoiceB:      q.ChoiceB,
		ChoiceC:      q.ChoiceC,
		ChoiceD:      q.ChoiceD,
		CorrectLabel: string(q.CorrectLabel),
		Difficulty:   string(q.Difficulty),
		IsActive:     q.IsActive,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
		DeletedAt:    deletedAt,
	}
}

// questionFilterWhere builds the WHERE clause for a question filter.
func questionFilterWhere(filter domain.QuestionFilter, startIndex int) (string, []interface{}) {
	clauses := []string{"deleted_at IS NULL"}
	var args []interface{}
	argIndex := startIndex

	if filter.ActiveOnly {
		clauses = append(clauses, "is_active = TRUE")
	}
	if filter.Difficulty.IsFilter() {
		clauses = append(clauses, fmt.Sprintf("difficulty = $%d", argIndex))
		args = append(args, string(filter.Difficulty))
		argIndex++
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// GetQuestionByID retrieves a question by its ID.
func (r *sqlxQuestionRepository) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	var m models.Question
	query := `SELECT * FROM questions WHERE id = $1 AND deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by id: %w", err)
	}
	return toDomainQuestion(&m), nil
}

// CountQuestions counts questions matching the filter.
func (r *sqlxQuestionRepository) CountQuestions(ctx context.Context, filter domain.QuestionFilter) (int, error) {
	where, args := questionFilterWhere(filter, 1)
	query := "SELECT COUNT(*) FROM questions " + where

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// SelectRandomQuestions draws up to count distinct questions matching the
// filter. Ordering is delegated to the database (ORDER BY random()), which
// also guarantees no repetition within one draw.
func (r *sqlxQuestionRepository) SelectRandomQuestions(ctx context.Context, filter domain.QuestionFilter, count int) ([]*domain.Question, error) {
	where, args := questionFilterWhere(filter, 1)
	query := fmt.Sprintf("SELECT * FROM questions %s ORDER BY random() LIMIT $%d", where, len(args)+1)
	args = append(args, count)

	var rows []models.Question
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select random questions: %w", err)
	}

	questions := make([]*domain.Question, len(rows))
	for i := range rows {
		questions[i] = toDomainQuestion(&rows[i])
	}
	return questions, nil
}

// ListQuestions returns a page of questions matching the filter, newest
// first, plus the total match count.
func (r *sqlxQuestionRepository) ListQuestions(ctx context.Context, filter domain.QuestionFilter, limit, offset int) ([]*domain.Question, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where, args := questionFilterWhere(filter, 1)
	countQuery := "SELECT COUNT(*) FROM questions " + where

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count questions for listing: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM questions %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var rows []models.Question
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list questions: %w", err)
	}

	questions := make([]*domain.Question, len(rows))
	for i := range rows {
		questions[i] = toDomainQuestion(&rows[i])
	}
	return questions, total, nil
}

// SaveQuestion persists a new question.
func (r *sqlxQuestionRepository) SaveQuestion(ctx context.Context, question *domain.Question) error {
	m := fromDomainQuestion(question)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.UpdatedAt = time.Now()

	query := `INSERT INTO questions (id, text, choice_a, choice_b, choice_c, choice_d, correct_label, difficulty, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Text, m.ChoiceA, m.ChoiceB, m.ChoiceC, m.ChoiceD,
		m.CorrectLabel, m.Difficulty, m.IsActive, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}
	return nil
}

// UpdateQuestion updates an existing question.
func (r *sqlxQuestionRepository) UpdateQuestion(ctx context.Context, question *domain.Question) error {
	m := fromDomainQuestion(question)
	m.UpdatedAt = time.Now()

	query := `UPDATE questions
	          SET text = $1, choice_a = $2, choice_b = $3, choice_c = $4, choice_d = $5,
	              correct_label = $6, difficulty = $7, is_active = $8, updated_at = $9
	          WHERE id = $10 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query,
		m.Text, m.ChoiceA, m.ChoiceB, m.ChoiceC, m.ChoiceD,
		m.CorrectLabel, m.Difficulty, m.IsActive, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.NewQuestionNotFoundError(question.ID)
	}
	return nil
}

// DeleteQuestions soft-deletes the given questions.
func (r *sqlxQuestionRepository) DeleteQuestions(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(`UPDATE questions SET deleted_at = ?, updated_at = ? WHERE id IN (?) AND deleted_at IS NULL`,
		time.Now(), time.Now(), ids)
	if err != nil {
		return 0, fmt.Errorf("failed to build bulk delete query: %w", err)
	}
	query = r.db.Rebind(query)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete questions: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return int(affected), nil
}

// SetQuestionsActive toggles the active flag on the given questions.
func (r *sqlxQuestionRepository) SetQuestionsActive(ctx context.Context, ids []string, active bool) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(`UPDATE questions SET is_active = ?, updated_at = ? WHERE id IN (?) AND deleted_at IS NULL`,
		active, time.Now(), ids)
	if err != nil {
		return 0, fmt.Errorf("failed to build bulk activate query: %w", err)
	}
	query = r.db.Rebind(query)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to set questions active: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return int(affected), nil
}
