package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/booking-portal/internal/persistence"
)

// UserRepository implements persistence.UserRepository using SQLite.
type UserRepository struct {
	pool *ConnectionPool
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(pool *ConnectionPool) *UserRepository {
	return &UserRepository{pool: pool}
}

// CreateUser inserts a new user and returns its generated id.
func (r *UserRepository) CreateUser(ctx context.Context, user persistence.User) (int64, error) {
	if user.PasswordHash == "" {
		return 0, persistence.ErrConstraintViolation
	}
	if !user.Role.Valid() {
		return 0, persistence.ErrConstraintViolation
	}

	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	result, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO users (name, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		user.Name,
		normalizeEmail(user.Email),
		user.PasswordHash,
		string(user.Role),
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, mapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sqlite: failed to read inserted user id: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by id.
func (r *UserRepository) GetUser(ctx context.Context, id int64) (persistence.User, error) {
	if id <= 0 {
		return persistence.User{}, persistence.ErrNotFound
	}
	row := r.pool.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE id = ?
	`, id)
	return scanUser(row)
}

// GetUserByEmail retrieves a user by its normalized email address.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	normalized := normalizeEmail(email)
	if normalized == "" {
		return persistence.User{}, persistence.ErrNotFound
	}
	row := r.pool.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE email = ?
	`, normalized)
	return scanUser(row)
}

// ListUsersByRole returns all users with the given role ordered by creation
// then id. Callers do not rely on the order; it only keeps listings stable.
func (r *UserRepository) ListUsersByRole(ctx context.Context, role persistence.Role) ([]persistence.User, error) {
	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE role = ?
		ORDER BY created_at ASC, id ASC
	`, string(role))
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var users []persistence.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return users, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (persistence.User, error) {
	var user persistence.User
	var role, createdAtStr string

	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &role, &createdAtStr); err != nil {
		return persistence.User{}, mapError(err)
	}

	user.Role = persistence.Role(role)

	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return persistence.User{}, fmt.Errorf("sqlite: failed to parse created_at: %w", err)
	}
	user.CreatedAt = createdAt
	return user, nil
}

// normalizeEmail normalizes email addresses for consistent storage and lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
