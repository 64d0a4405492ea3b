package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/booking-portal/internal/persistence"
)

// SessionRepository implements persistence.SessionRepository using SQLite.
type SessionRepository struct {
	pool *ConnectionPool
}

// NewSessionRepository creates a new SQLite session repository.
func NewSessionRepository(pool *ConnectionPool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// CreateSession stores a new session row carrying the user snapshot captured
// at login time and returns the persisted record.
func (r *SessionRepository) CreateSession(ctx context.Context, session persistence.Session) (persistence.Session, error) {
	session.Token = strings.TrimSpace(session.Token)
	if session.Token == "" || session.UserID <= 0 {
		return persistence.Session{}, persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.CreatedAt = session.CreatedAt.UTC()
	session.ExpiresAt = session.ExpiresAt.UTC()

	var revokedAt sql.NullString
	if session.RevokedAt != nil {
		revokedAt.String = session.RevokedAt.UTC().Format(time.RFC3339)
		revokedAt.Valid = true
	}

	result, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, user_name, user_email, user_role, created_at, expires_at, revoked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		session.Token,
		session.UserID,
		session.UserName,
		session.UserEmail,
		string(session.UserRole),
		session.CreatedAt.Format(time.RFC3339),
		session.ExpiresAt.Format(time.RFC3339),
		revokedAt,
	)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.Session{}, fmt.Errorf("sqlite: failed to read inserted session id: %w", err)
	}
	session.ID = id
	return session, nil
}

// GetSession retrieves a session by its token value.
func (r *SessionRepository) GetSession(ctx context.Context, token string) (persistence.Session, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return persistence.Session{}, persistence.ErrNotFound
	}

	row := r.pool.db.QueryRowContext(ctx, `
		SELECT id, token, user_id, user_name, user_email, user_role, created_at, expires_at, revoked_at
		FROM sessions
		WHERE token = ?
	`, trimmed)

	var session persistence.Session
	var role, createdAtStr, expiresAtStr string
	var revokedAt sql.NullString

	if err := row.Scan(
		&session.ID,
		&session.Token,
		&session.UserID,
		&session.UserName,
		&session.UserEmail,
		&role,
		&createdAtStr,
		&expiresAtStr,
		&revokedAt,
	); err != nil {
		return persistence.Session{}, mapError(err)
	}

	session.UserRole = persistence.Role(role)

	var err error
	if session.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return persistence.Session{}, fmt.Errorf("sqlite: failed to parse created_at: %w", err)
	}
	if session.ExpiresAt, err = time.Parse(time.RFC3339, expiresAtStr); err != nil {
		return persistence.Session{}, fmt.Errorf("sqlite: failed to parse expires_at: %w", err)
	}
	if revokedAt.Valid {
		revoked, err := time.Parse(time.RFC3339, revokedAt.String)
		if err != nil {
			return persistence.Session{}, fmt.Errorf("sqlite: failed to parse revoked_at: %w", err)
		}
		session.RevokedAt = &revoked
	}

	return session, nil
}

// RevokeSession marks the session with the given token as revoked. Revoking a
// nonexistent token returns ErrNotFound; callers treat that as a no-op.
func (r *SessionRepository) RevokeSession(ctx context.Context, token string, revokedAt time.Time) error {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return persistence.ErrNotFound
	}

	result, err := r.pool.db.ExecContext(ctx, `
		UPDATE sessions
		SET revoked_at = ?
		WHERE token = ?
	`, revokedAt.UTC().Format(time.RFC3339), trimmed)
	if err != nil {
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// DeleteExpiredSessions removes sessions that expired on or before the
// provided reference time.
func (r *SessionRepository) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	_, err := r.pool.db.ExecContext(ctx, `
		DELETE FROM sessions
		WHERE expires_at <= ?
	`, reference.UTC().Format(time.RFC3339))
	if err != nil {
		return mapError(err)
	}
	return nil
}
