package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"agenda_backend/internal/domain"
	"agenda_backend/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
	ErrResetInvalid       = errors.New("reset token invalid or expired")
)

// AuthService owns registration, login and the refresh-token lifecycle.
type AuthService struct {
	logger     zerolog.Logger
	users      *repository.UserRepository
	sessions   *repository.SessionRepository
	resets     *repository.ResetRepository
	refreshTTL time.Duration
	resetTTL   time.Duration
}

func NewAuthService(
	logger zerolog.Logger,
	users *repository.UserRepository,
	sessions *repository.SessionRepository,
	resets *repository.ResetRepository,
	refreshTTL time.Duration,
	resetTTL time.Duration,
) *AuthService {
	return &AuthService{
		logger:     logger,
		users:      users,
		sessions:   sessions,
		resets:     resets,
		refreshTTL: refreshTTL,
		resetTTL:   resetTTL,
	}
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *AuthService) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, err
	}

	user := &domain.User{Email: email, Username: username, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("registered user")
	return user, nil
}

// Login verifies the password and replaces the user's session. A stolen
// refresh token dies the next time the real owner logs in.
func (s *AuthService) Login(ctx context.Context, email, password, fingerprint string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	match, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to compare password")
		return nil, nil, err
	}
	if !match {
		return nil, nil, ErrInvalidCredentials
	}

	sessionID, err := uuid.NewV7()
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := NewRefreshToken()
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	session := &domain.Session{
		ID:           sessionID.String(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		Fingerprint:  fingerprint,
		ExpiresAt:    now.Add(s.refreshTTL),
		CreatedAt:    now,
	}
	if err := s.sessions.Replace(ctx, session); err != nil {
		s.logger.Error().Err(err).Msg("failed to store session")
		return nil, nil, err
	}

	access, err := GenerateJWT(user.ID, session.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("logged in")
	return user, &TokenPair{AccessToken: access, RefreshToken: refreshToken}, nil
}

// Refresh rotates the refresh token and issues a fresh access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	session, err := s.sessions.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, ErrSessionExpired
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.DeleteByID(ctx, session.ID)
		return nil, ErrSessionExpired
	}

	rotated, err := NewRefreshToken()
	if err != nil {
		return nil, err
	}
	session.RefreshToken = rotated
	session.ExpiresAt = time.Now().Add(s.refreshTTL)
	if err := s.sessions.Rotate(ctx, session); err != nil {
		return nil, ErrSessionExpired
	}

	access, err := GenerateJWT(session.UserID, session.ID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: rotated}, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.DeleteByID(ctx, sessionID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	match, err := VerifyPassword(oldPassword, user.PasswordHash)
	if err != nil {
		return err
	}
	if !match {
		return ErrInvalidCredentials
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	// changing the password invalidates all refresh tokens
	return s.sessions.DeleteByUserID(ctx, userID)
}

// RequestReset mints a single-use reset token for the account. Unknown
// emails return an empty token instead of an error so the endpoint does not
// leak which addresses exist.
func (s *AuthService) RequestReset(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil
	}

	token, err := uuid.NewV7()
	if err != nil {
		return "", err
	}

	now := time.Now()
	reset := &domain.PasswordReset{
		Token:     token.String(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.resetTTL),
		CreatedAt: now,
	}
	if err := s.resets.Create(ctx, reset); err != nil {
		return "", err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("issued password reset token")
	return reset.Token, nil
}

func (s *AuthService) ConfirmReset(ctx context.Context, token, newPassword string) error {
	reset, err := s.resets.Get(ctx, token)
	if err != nil {
		return ErrResetInvalid
	}
	if reset.Used || time.Now().After(reset.ExpiresAt) {
		return ErrResetInvalid
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.resets.Consume(ctx, token, reset.UserID, hash); err != nil {
		return ErrResetInvalid
	}

	return s.sessions.DeleteByUserID(ctx, reset.UserID)
}
