package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizdeck/internal/domain"
	"quizdeck/internal/repository/models"
	"quizdeck/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash.String,
		GoogleID:     m.GoogleID.String,
		DisplayName:  m.DisplayName.String,
		IsAdmin:      m.IsAdmin,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		DeletedAt:    deletedAt,
	}
}

func fromDomainUser(u *domain.User) *models.User {
	if u == nil {
		return nil
	}
	var deletedAt sql.NullTime
	if u.DeletedAt != nil {
		deletedAt = util.TimeToNullTime(*u.DeletedAt)
	}
	return &models.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: util.StringToNullString(u.PasswordHash),
		GoogleID:     util.StringToNullString(u.GoogleID),
		DisplayName:  util.StringToNullString(u.DisplayName),
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		DeletedAt:    deletedAt,
	}
}

// CreateUser inserts a new user.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	m := fromDomainUser(user)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.UpdatedAt = time.Now()

	query := `INSERT INTO users (id, username, email, password_hash, google_id, display_name, is_admin, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Username, m.Email, m.PasswordHash, m.GoogleID, m.DisplayName, m.IsAdmin, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *sqlxUserRepository) getUserBy(ctx context.Context, column, value string) (*domain.User, error) {
	var m models.User
	query := fmt.Sprintf(`SELECT * FROM users WHERE %s = $1 AND deleted_at IS NULL`, column)
	if err := r.db.GetContext(ctx, &m, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return toDomainUser(&m), nil
}

// GetUserByID retrieves a user by ID; returns (nil, nil) when not found.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getUserBy(ctx, "id", id)
}

// GetUserByUsername retrieves a user by username; returns (nil, nil) when not found.
func (r *sqlxUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getUserBy(ctx, "username", username)
}

// GetUserByEmail retrieves a user by email; returns (nil, nil) when not found.
func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUserBy(ctx, "email", email)
}

// GetUserByGoogleID retrieves a user by Google ID; returns (nil, nil) when not found.
func (r *sqlxUserRepository) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	return r.getUserBy(ctx, "google_id", googleID)
}

// UpdateUser updates an existing user.
func (r *sqlxUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	m := fromDomainUser(user)
	m.UpdatedAt = time.Now()

	query := `UPDATE users
	          SET username = $1, email = $2, password_hash = $3, google_id = $4,
	              display_name = $5, is_admin = $6, updated_at = $7
	          WHERE id = $8 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query,
		m.Username, m.Email, m.PasswordHash, m.GoogleID, m.DisplayName, m.IsAdmin, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("user not found: %s", user.ID))
	}
	return nil
}
