package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"agenda_backend/internal/domain"
)

var ErrResetNotFound = errors.New("reset token not found")

type ResetRepository struct {
	db *pgxpool.Pool
}

func NewResetRepository(db *pgxpool.Pool) *ResetRepository {
	return &ResetRepository{db: db}
}

func (r *ResetRepository) Create(ctx context.Context, pr *domain.PasswordReset) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO password_resets (token, user_id, used, expires_at, created_at)
		 VALUES ($1, $2, false, $3, $4)`,
		pr.Token, pr.UserID, pr.ExpiresAt, pr.CreatedAt)
	return err
}

func (r *ResetRepository) Get(ctx context.Context, token string) (*domain.PasswordReset, error) {
	row := r.db.QueryRow(ctx,
		`SELECT token, user_id, used, expires_at, created_at
		 FROM password_resets
		 WHERE token = $1`,
		token,
	)

	var pr domain.PasswordReset
	err := row.Scan(&pr.Token, &pr.UserID, &pr.Used, &pr.ExpiresAt, &pr.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResetNotFound
		}
		return nil, err
	}
	return &pr, nil
}

// Consume marks the token used and updates the password atomically.
func (r *ResetRepository) Consume(ctx context.Context, token string, userID int64, newHash string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`UPDATE password_resets SET used = true WHERE token = $1 AND used = false`, token)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrResetNotFound
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`, newHash, userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
