package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mentoria-api/internal/models"
)

// SessionRepository persists bearer sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository constructs a SessionRepository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session row.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	const query = `INSERT INTO sessions (id, token, user_id, user_type, created_at, expires_at)
		VALUES (:id, :token, :user_id, :user_type, :created_at, :expires_at)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// FindLatestByToken returns the most recently created session carrying token.
func (r *SessionRepository) FindLatestByToken(ctx context.Context, token string) (*models.Session, error) {
	const query = `SELECT id, token, user_id, user_type, created_at, expires_at FROM sessions
		WHERE token = $1 ORDER BY created_at DESC LIMIT 1`
	var session models.Session
	if err := r.db.GetContext(ctx, &session, query, token); err != nil {
		return nil, err
	}
	return &session, nil
}
