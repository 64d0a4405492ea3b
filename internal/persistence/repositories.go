package persistence

import (
	"context"
	"time"
)

// UserRepository exposes the account operations the portal needs: creation at
// registration, lookup at login, and the role-filtered listing that feeds the
// professional picker.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) (int64, error)
	GetUser(ctx context.Context, id int64) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsersByRole(ctx context.Context, role Role) ([]User, error)
}

// ReservationRepository stores bookings. Creation is unconditioned; listing
// joins each reservation with the booking client's display name.
type ReservationRepository interface {
	CreateReservation(ctx context.Context, reservation Reservation) (int64, error)
	ListForProfessional(ctx context.Context, professionalID int64) ([]ReservationEntry, error)
}

// SessionRepository stores authentication session state.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) error
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}
