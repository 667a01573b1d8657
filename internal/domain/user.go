package domain

import "time"

// User represents a registered user.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // empty for OAuth-only accounts
	GoogleID     string // empty for password accounts
	DisplayName  string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}
