package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// migration is a versioned schema change applied exactly once per database.
type migration struct {
	Version     string
	Description string
	SQL         string
}

// The schema is small enough to embed in-source; versions are tracked in a
// schema_migrations table so restarted processes skip applied entries.
var migrations = []migration{
	{
		Version:     "001",
		Description: "create users table",
		SQL: `
			CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				role TEXT NOT NULL CHECK(role IN ('client','professional')),
				created_at TEXT NOT NULL
			);
		`,
	},
	{
		Version:     "002",
		Description: "create reservations table",
		SQL: `
			CREATE TABLE IF NOT EXISTS reservations (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				client_id INTEGER NOT NULL REFERENCES users(id),
				professional_id INTEGER NOT NULL REFERENCES users(id),
				date TEXT NOT NULL,
				created_at TEXT NOT NULL
			);
		`,
	},
	{
		Version:     "003",
		Description: "create sessions table",
		SQL: `
			CREATE TABLE IF NOT EXISTS sessions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				token TEXT NOT NULL UNIQUE,
				user_id INTEGER NOT NULL REFERENCES users(id),
				user_name TEXT NOT NULL,
				user_email TEXT NOT NULL,
				user_role TEXT NOT NULL,
				created_at TEXT NOT NULL,
				expires_at TEXT NOT NULL,
				revoked_at TEXT
			);
			CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);
		`,
	},
}

// Migrate applies pending schema migrations in version order, each within its
// own transaction.
func (cp *ConnectionPool) Migrate(ctx context.Context, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := cp.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("sqlite: failed to initialize schema_migrations: %w", err)
	}

	pending := 0
	for _, m := range migrations {
		applied, err := cp.versionApplied(ctx, m.Version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		pending++

		logger.InfoContext(ctx, "applying migration", "version", m.Version, "description", m.Description)
		if err := cp.WithTransaction(ctx, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.SQL); err != nil {
				return fmt.Errorf("sqlite: migration %s failed: %w", m.Version, err)
			}
			if _, err := tx.Exec(
				`INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)`,
				m.Version, m.Description, time.Now().UTC().Format(time.RFC3339),
			); err != nil {
				return fmt.Errorf("sqlite: failed to record migration %s: %w", m.Version, err)
			}
			return nil
		}); err != nil {
			return err
		}
	}

	if pending == 0 {
		logger.InfoContext(ctx, "database schema is up to date")
	} else {
		logger.InfoContext(ctx, "database migrations completed", "applied", pending)
	}
	return nil
}

// AppliedVersions returns the migration versions recorded in the database,
// ordered ascending.
func (cp *ConnectionPool) AppliedVersions(ctx context.Context) ([]string, error) {
	rows, err := cp.db.QueryContext(ctx, `SELECT version FROM schema_migrations ORDER BY version ASC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, mapError(err)
		}
		versions = append(versions, version)
	}
	return versions, rows.Err()
}

func (cp *ConnectionPool) versionApplied(ctx context.Context, version string) (bool, error) {
	var count int
	err := cp.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("sqlite: failed to check migration %s: %w", version, err)
	}
	return count > 0, nil
}
