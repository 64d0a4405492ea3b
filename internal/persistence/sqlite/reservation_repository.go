package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/example/booking-portal/internal/persistence"
)

// ReservationRepository implements persistence.ReservationRepository using SQLite.
type ReservationRepository struct {
	pool *ConnectionPool
}

// NewReservationRepository creates a new SQLite reservation repository.
func NewReservationRepository(pool *ConnectionPool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

// CreateReservation inserts an unconditioned booking record and returns its
// generated id. Conflict detection and role checks on the referenced accounts
// are intentionally absent.
func (r *ReservationRepository) CreateReservation(ctx context.Context, reservation persistence.Reservation) (int64, error) {
	if reservation.ClientID <= 0 || reservation.ProfessionalID <= 0 {
		return 0, persistence.ErrConstraintViolation
	}

	createdAt := reservation.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	result, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO reservations (client_id, professional_id, date, created_at)
		VALUES (?, ?, ?, ?)
	`,
		reservation.ClientID,
		reservation.ProfessionalID,
		reservation.Date,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, mapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sqlite: failed to read inserted reservation id: %w", err)
	}
	return id, nil
}

// ListForProfessional returns the professional's reservations joined with the
// booking client's name, ordered by date then id for stable dashboards.
func (r *ReservationRepository) ListForProfessional(ctx context.Context, professionalID int64) ([]persistence.ReservationEntry, error) {
	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT r.id, r.client_id, r.professional_id, r.date, r.created_at, u.name
		FROM reservations r
		JOIN users u ON r.client_id = u.id
		WHERE r.professional_id = ?
		ORDER BY r.date ASC, r.id ASC
	`, professionalID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var entries []persistence.ReservationEntry
	for rows.Next() {
		var entry persistence.ReservationEntry
		var createdAtStr string
		if err := rows.Scan(
			&entry.ID,
			&entry.ClientID,
			&entry.ProfessionalID,
			&entry.Date,
			&createdAtStr,
			&entry.ClientName,
		); err != nil {
			return nil, mapError(err)
		}
		createdAt, err := time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("sqlite: failed to parse created_at: %w", err)
		}
		entry.CreatedAt = createdAt
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return entries, nil
}
