package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"recipe_journal/internal/domain/models"
	"recipe_journal/internal/lib/jwt"
	"recipe_journal/internal/lib/logger/sl"
	"recipe_journal/internal/repository"
	"recipe_journal/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const DefaultSessionTTL = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("admin session missing")
	ErrSessionExpired     = errors.New("admin session expired")
)

// Auth вход администратора по одному паролю. Сессия живет в SessionRepository,
// клиенту отдается подписанный токен с ее идентификатором.
type Auth struct {
	log          *slog.Logger
	sessions     repository.SessionRepository
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

type Option func(*Auth)

func WithClock(now func() time.Time) Option {
	return func(a *Auth) {
		a.now = now
	}
}

func New(log *slog.Logger, sessions repository.SessionRepository, passwordHash, secret string, ttl time.Duration, opts ...Option) *Auth {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	a := &Auth{
		log:          log,
		sessions:     sessions,
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
		ttl:          ttl,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

func (a *Auth) TTL() time.Duration {
	return a.ttl
}

// Login проверяет пароль, заводит сессию и возвращает токен
func (a *Auth) Login(ctx context.Context, password string) (string, models.AdminSession, error) {
	const op = "auth.Login"

	log := a.log.With(slog.String("op", op))

	log.Info("attempting to login admin")

	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return "", models.AdminSession{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	session := models.AdminSession{
		ID:      uuid.NewString(),
		LoginAt: a.now().UTC(),
	}

	if err := a.sessions.Set(ctx, session, a.ttl); err != nil {
		log.Error("failed to save session", sl.Err(err))

		return "", models.AdminSession{}, fmt.Errorf("%s: %w", op, err)
	}

	token, err := jwt.NewToken(session.ID, session.LoginAt, a.ttl, a.secret)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))

		return "", models.AdminSession{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("admin logged in successfully", slog.String("session_id", session.ID))

	return token, session, nil
}

// Authorize проверяет, что сессия существует и не старше ttl.
// Просроченная сессия удаляется.
func (a *Auth) Authorize(ctx context.Context, sessionID string) (models.AdminSession, error) {
	const op = "auth.Authorize"

	log := a.log.With(
		slog.String("op", op),
		slog.String("session_id", sessionID),
	)

	if sessionID == "" {
		return models.AdminSession{}, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	session, err := a.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return models.AdminSession{}, fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}
		log.Error("failed to get session", sl.Err(err))

		return models.AdminSession{}, fmt.Errorf("%s: %w", op, err)
	}

	if session.Expired(a.now(), a.ttl) {
		log.Info("session expired")

		if err := a.sessions.Clear(ctx, sessionID); err != nil {
			log.Warn("failed to clear expired session", sl.Err(err))
		}

		return models.AdminSession{}, fmt.Errorf("%s: %w", op, ErrSessionExpired)
	}

	return session, nil
}

// AuthorizeToken разбирает токен и проверяет сессию из него
func (a *Auth) AuthorizeToken(ctx context.Context, token string) (models.AdminSession, error) {
	const op = "auth.AuthorizeToken"

	claims, err := jwt.ParseToken(token, a.secret)
	if err != nil {
		return models.AdminSession{}, fmt.Errorf("%s: %w: %v", op, ErrUnauthorized, err)
	}

	return a.Authorize(ctx, claims.SessionID)
}

func (a *Auth) Logout(ctx context.Context, sessionID string) error {
	const op = "auth.Logout"

	log := a.log.With(
		slog.String("op", op),
		slog.String("session_id", sessionID),
	)

	if err := a.sessions.Clear(ctx, sessionID); err != nil {
		log.Error("failed to clear session", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("admin logged out")

	return nil
}

// Secret ключ подписи токенов для middleware
func (a *Auth) Secret() []byte {
	return a.secret
}
