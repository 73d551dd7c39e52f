package repository

import (
	"database/sql"
	"time"

	"pokedex/internal/database"
	"pokedex/internal/models"
)

// UserRepository handles user and session database operations
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser creates a new user account
func (r *UserRepository) CreateUser(email, passwordHash, name string) (*models.User, error) {
	query := `
		INSERT INTO users (email, password_hash, name)
		VALUES (?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query, email, passwordHash, name)
	if err != nil {
		return nil, err
	}

	return r.GetUserByID(id)
}

// GetUserByID retrieves a user by ID, or nil if not found
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, name, created_at, updated_at
		FROM users
		WHERE id = ?
	`

	user := &models.User{}
	err := r.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email, or nil if not found
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, name, created_at, updated_at
		FROM users
		WHERE email = ?
	`

	user := &models.User{}
	err := r.db.QueryRow(query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// CreateSession records an issued token
func (r *UserRepository) CreateSession(tokenID string, userID int64, expiresAt time.Time) (*models.Session, error) {
	query := `
		INSERT INTO sessions (token_id, user_id, expires_at)
		VALUES (?, ?, ?)
	`

	if _, err := r.db.Exec(query, tokenID, userID, expiresAt); err != nil {
		return nil, err
	}

	return r.GetSession(tokenID)
}

// GetSession retrieves a session by token ID, or nil if not found
func (r *UserRepository) GetSession(tokenID string) (*models.Session, error) {
	query := `
		SELECT token_id, user_id, expires_at, created_at
		FROM sessions
		WHERE token_id = ?
	`

	session := &models.Session{}
	err := r.db.QueryRow(query, tokenID).Scan(
		&session.TokenID,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return session, nil
}

// DeleteSession revokes a session
func (r *UserRepository) DeleteSession(tokenID string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE token_id = ?", tokenID)
	return err
}

// DeleteExpiredSessions removes all expired sessions and returns how many
// were removed
func (r *UserRepository) DeleteExpiredSessions() (int64, error) {
	result, err := r.db.Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now())
	if err != nil {
		return 0, err
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return count, nil
}
