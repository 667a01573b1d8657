package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// AnswerMap is a custom type for handling the question->label answer map
// stored as a JSONB column.
type AnswerMap map[string]string

// Value implements the driver.Valuer interface
func (m AnswerMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	jsonData, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (m *AnswerMap) Scan(value interface{}) error {
	if value == nil {
		*m = AnswerMap{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("AnswerMap Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*m = AnswerMap{}
		return nil
	}
	return json.Unmarshal(bytesToParse, m)
}

// QuestionSnapshot mirrors domain.AttemptQuestion inside the JSONB
// questions column of a result row.
type QuestionSnapshot struct {
	QuestionID   string            `json:"question_id"`
	Text         string            `json:"text"`
	Choices      map[string]string `json:"choices"`
	CorrectLabel string            `json:"correct_label"`
}

// QuestionSnapshots is a custom type for the snapshot list stored as JSONB.
type QuestionSnapshots []QuestionSnapshot

// Value implements the driver.Valuer interface
func (s QuestionSnapshots) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *QuestionSnapshots) Scan(value interface{}) error {
	if value == nil {
		*s = QuestionSnapshots{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("QuestionSnapshots Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = QuestionSnapshots{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// Question represents a row of the questions table.
type Question struct {
	ID           string       `db:"id"`
	Text         string       `db:"text"`
	ChoiceA      string       `db:"choice_a"`
	ChoiceB      string       `db:"choice_b"`
	ChoiceC      string       `db:"choice_c"`
	ChoiceD      string       `db:"choice_d"`
	CorrectLabel string       `db:"correct_label"`
	Difficulty   string       `db:"difficulty"`
	IsActive     bool         `db:"is_active"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
	DeletedAt    sql.NullTime `db:"deleted_at"`
}

// Result represents a row of the results table. One row per completed
// attempt; attempt_id carries a UNIQUE constraint.
type Result struct {
	ID            string            `db:"id"`
	UserID        string            `db:"user_id"`
	AttemptID     string            `db:"attempt_id"`
	CorrectCount  int               `db:"correct_count"`
	TotalCount    int               `db:"total_count"`
	Percentage    float64           `db:"percentage"`
	Difficulty    string            `db:"difficulty"`
	TimeTakenSecs int64             `db:"time_taken_secs"`
	Answers       AnswerMap         `db:"answers"`
	Questions     QuestionSnapshots `db:"questions"`
	CompletedAt   time.Time         `db:"completed_at"`
	CreatedAt     time.Time         `db:"created_at"`
}

// User represents a row of the users table.
type User struct {
	ID           string         `db:"id"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	PasswordHash sql.NullString `db:"password_hash"` // NULL for OAuth-only accounts
	GoogleID     sql.NullString `db:"google_id"`
	DisplayName  sql.NullString `db:"display_name"`
	IsAdmin      bool           `db:"is_admin"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    sql.NullTime   `db:"deleted_at"`
}
