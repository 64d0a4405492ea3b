package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/booking-portal/internal/persistence"
)

// AuthService coordinates login, session resolution, and logout.
//
// Sessions carry the user snapshot captured at login; a record updated after
// login keeps serving its stale snapshot until the next login. That staleness
// is an observable contract, not an accident.
type AuthService struct {
	users          persistence.UserRepository
	sessions       persistence.SessionRepository
	hasher         PasswordHasher
	tokenGenerator func() string
	now            func() time.Time
	sessionTTL     time.Duration
	logger         *slog.Logger
}

// NewAuthService constructs an AuthService with the provided dependencies.
func NewAuthService(users persistence.UserRepository, sessions persistence.SessionRepository, hasher PasswordHasher, tokenGenerator func() string, now func() time.Time, sessionTTL time.Duration) *AuthService {
	return NewAuthServiceWithLogger(users, sessions, hasher, tokenGenerator, now, sessionTTL, nil)
}

// NewAuthServiceWithLogger constructs an AuthService with a specified logger.
func NewAuthServiceWithLogger(users persistence.UserRepository, sessions persistence.SessionRepository, hasher PasswordHasher, tokenGenerator func() string, now func() time.Time, sessionTTL time.Duration, logger *slog.Logger) *AuthService {
	if tokenGenerator == nil {
		tokenGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		users:          users,
		sessions:       sessions,
		hasher:         hasher,
		tokenGenerator: tokenGenerator,
		now:            now,
		sessionTTL:     sessionTTL,
		logger:         defaultLogger(logger),
	}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Authenticate validates credentials and issues a new session token.
//
// Unknown email and wrong password surface as distinct sentinels because the
// login page shows a different message for each.
func (s *AuthService) Authenticate(ctx context.Context, params AuthenticateParams) (result AuthenticateResult, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.users == nil || s.sessions == nil {
		err = fmt.Errorf("auth service not fully configured")
		return
	}

	email := strings.TrimSpace(strings.ToLower(params.Email))

	logger := s.loggerWith(ctx, "Authenticate", "email", email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "authentication failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", result.User.ID).InfoContext(ctx, "authentication succeeded")
	}()

	if email == "" {
		err = ErrUnknownEmail
		return
	}

	record, lookupErr := s.users.GetUserByEmail(ctx, email)
	if lookupErr != nil {
		if errors.Is(lookupErr, persistence.ErrNotFound) {
			err = ErrUnknownEmail
			return
		}
		err = lookupErr
		return
	}

	if !s.hasher.Verify(params.Password, record.PasswordHash) {
		err = ErrInvalidCredentials
		return
	}

	now := s.now().UTC()
	if pruneErr := s.sessions.DeleteExpiredSessions(ctx, now); pruneErr != nil {
		err = pruneErr
		return
	}

	session, createErr := s.sessions.CreateSession(ctx, persistence.Session{
		Token:     s.tokenGenerator(),
		UserID:    record.ID,
		UserName:  record.Name,
		UserEmail: record.Email,
		UserRole:  record.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	})
	if createErr != nil {
		err = createErr
		return
	}

	result = AuthenticateResult{
		User: User{
			ID:    record.ID,
			Name:  record.Name,
			Email: record.Email,
			Role:  record.Role,
		},
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}
	return
}

// ResolveSession returns the login-time user snapshot for an active session
// token. Absent, expired, and revoked sessions yield sentinel errors that
// callers treat as "not authenticated".
func (s *AuthService) ResolveSession(ctx context.Context, token string) (User, error) {
	if s == nil {
		return User{}, fmt.Errorf("AuthService is nil")
	}
	if s.sessions == nil {
		return User{}, fmt.Errorf("session repository not configured")
	}

	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return User{}, ErrUnauthorized
	}

	session, err := s.sessions.GetSession(ctx, trimmed)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return User{}, ErrUnauthorized
		}
		return User{}, err
	}

	now := s.now().UTC()
	if session.RevokedAt != nil && !session.RevokedAt.IsZero() {
		return User{}, ErrSessionRevoked
	}
	if !session.ExpiresAt.IsZero() && !session.ExpiresAt.After(now) {
		return User{}, ErrSessionExpired
	}

	return User{
		ID:    session.UserID,
		Name:  session.UserName,
		Email: session.UserEmail,
		Role:  session.UserRole,
	}, nil
}

// RevokeSession invalidates a session token. Revoking an unknown or already
// revoked token is not an error.
func (s *AuthService) RevokeSession(ctx context.Context, token string) error {
	if s == nil {
		return fmt.Errorf("AuthService is nil")
	}
	if s.sessions == nil {
		return fmt.Errorf("session repository not configured")
	}

	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil
	}

	logger := s.loggerWith(ctx, "RevokeSession")

	now := s.now().UTC()
	if err := s.sessions.RevokeSession(ctx, trimmed, now); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil
		}
		logger.ErrorContext(ctx, "failed to revoke session", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	if err := s.sessions.DeleteExpiredSessions(ctx, now); err != nil {
		logger.ErrorContext(ctx, "failed to prune expired sessions", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "session revoked")
	return nil
}
