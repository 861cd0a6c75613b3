package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"agenda_backend/internal/domain"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository struct {
	db *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// Replace deletes the user's previous sessions and stores the new one in a
// single transaction, so a login never leaves two live refresh tokens.
func (r *SessionRepository) Replace(ctx context.Context, s *domain.Session) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`DELETE FROM sessions WHERE user_id = $1`, s.UserID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO sessions (id, user_id, refresh_token, fingerprint, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.UserID, s.RefreshToken, s.Fingerprint, s.ExpiresAt, s.CreatedAt,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *SessionRepository) GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, refresh_token, fingerprint, expires_at, created_at
		 FROM sessions
		 WHERE refresh_token = $1`,
		token,
	)

	var s domain.Session
	err := row.Scan(&s.ID, &s.UserID, &s.RefreshToken, &s.Fingerprint, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Rotate swaps the session's refresh token and pushes its expiry forward.
func (r *SessionRepository) Rotate(ctx context.Context, s *domain.Session) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE sessions SET refresh_token = $1, expires_at = $2 WHERE id = $3`,
		s.RefreshToken, s.ExpiresAt, s.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func (r *SessionRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}
