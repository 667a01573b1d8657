package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"quizdeck/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var resultColumns = []string{
	"id", "user_id", "attempt_id", "correct_count", "total_count", "percentage",
	"difficulty", "time_taken_secs", "answers", "questions", "completed_at", "created_at",
}

func sampleDomainResult() *domain.Result {
	attempt := domain.NewQuizAttempt("attempt-1", "user-1", domain.DifficultyEasy, []domain.AttemptQuestion{
		{
			QuestionID:   "q1",
			Text:         "Stored question",
			Choices:      map[domain.ChoiceLabel]string{domain.ChoiceA: "one", domain.ChoiceB: "two"},
			CorrectLabel: domain.ChoiceA,
		},
	})
	attempt.Answers["q1"] = domain.ChoiceA
	return domain.NewResult("result-1", attempt, 1)
}

func TestSaveResult(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts the row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSQLXResultRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO results`)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SaveResult(ctx, sampleDomainResult()))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to already submitted", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSQLXResultRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO results`)).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "results_attempt_id_key"})

		err := repo.SaveResult(ctx, sampleDomainResult())
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeAlreadySubmitted, domainErr.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetResultByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXResultRepository(db)
	ctx := context.Background()

	now := time.Now()
	answersJSON := `{"q1": "A"}`
	questionsJSON := `[{"question_id": "q1", "text": "Stored question", "choices": {"A": "one", "B": "two"}, "correct_label": "A"}]`

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM results WHERE id = $1`)).
			WithArgs("result-1").
			WillReturnRows(sqlmock.NewRows(resultColumns).AddRow(
				"result-1", "user-1", "attempt-1", 1, 1, 100.0,
				"EASY", int64(42), []byte(answersJSON), []byte(questionsJSON), now, now,
			))

		result, err := repo.GetResultByID(ctx, "result-1")
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, domain.ChoiceA, result.Answers["q1"])
		require.Len(t, result.Questions, 1)
		assert.Equal(t, "one", result.Questions[0].Choices[domain.ChoiceA])
		assert.Equal(t, 42*time.Second, result.TimeTaken)
	})

	t.Run("not found returns nil, nil", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM results WHERE id = $1`)).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(resultColumns))

		result, err := repo.GetResultByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetResultsByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXResultRepository(db)
	ctx := context.Background()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM results WHERE user_id = $1`)).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM results WHERE user_id = $1 ORDER BY completed_at DESC LIMIT $2 OFFSET $3`)).
		WithArgs("user-1", 10, 0).
		WillReturnRows(sqlmock.NewRows(resultColumns).
			AddRow("r2", "user-1", "a2", 9, 10, 90.0, "HARD", int64(60), []byte(`{}`), []byte(`[]`), now, now).
			AddRow("r1", "user-1", "a1", 4, 10, 40.0, "EASY", int64(55), []byte(`{}`), []byte(`[]`), now.Add(-time.Hour), now.Add(-time.Hour)))

	results, total, err := repo.GetResultsByUserID(ctx, "user-1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, results, 2)
	assert.Equal(t, "r2", results[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserResultStats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXResultRepository(db)
	ctx := context.Background()

	statsColumns := []string{"total_attempts", "best_percentage", "average_percentage", "questions_answered", "correct_answers"}

	t.Run("aggregates history", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) AS total_attempts`).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows(statsColumns).AddRow(4, 90.0, 72.5, 40, 29))

		stats, err := repo.GetUserResultStats(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 4, stats.TotalAttempts)
		assert.InDelta(t, 90.0, stats.BestPercentage, 0.01)
		assert.Equal(t, 29, stats.CorrectAnswers)
	})

	t.Run("no history yields zeroes", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) AS total_attempts`).
			WithArgs("user-2").
			WillReturnRows(sqlmock.NewRows(statsColumns).AddRow(0, nil, nil, nil, nil))

		stats, err := repo.GetUserResultStats(ctx, "user-2")
		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalAttempts)
		assert.Zero(t, stats.BestPercentage)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLeaderboardQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXResultRepository(db)
	ctx := context.Background()

	leaderboardColumns := []string{"user_id", "username", "best_percentage", "total_attempts", "achieved_at"}
	early := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT r\.user_id`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(leaderboardColumns).
			AddRow("user-1", "alice", 95.0, 7, early).
			AddRow("user-2", "bob", 95.0, 3, late).
			AddRow("user-3", "carol", 80.0, 1, early))

	entries, err := repo.GetLeaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, 3, entries[2].Rank)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountResults(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXResultRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM results`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(128))

	count, err := repo.CountResults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 128, count)
	require.NoError(t, mock.ExpectationsWereMet())
}
