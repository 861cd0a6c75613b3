package domain

import "time"

// Session is one refresh-token login. Logging in again replaces the
// user's previous sessions.
type Session struct {
	ID           string    `db:"id"`
	UserID       int64     `db:"user_id"`
	RefreshToken string    `db:"refresh_token"`
	Fingerprint  string    `db:"fingerprint"`
	ExpiresAt    time.Time `db:"expires_at"`
	CreatedAt    time.Time `db:"created_at"`
}

// PasswordReset is a single-use reset token.
type PasswordReset struct {
	Token     string    `db:"token"`
	UserID    int64     `db:"user_id"`
	Used      bool      `db:"used"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
