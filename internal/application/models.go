package application

import (
	"time"

	"github.com/example/booking-portal/internal/persistence"
)

// User is the account view exposed by the services. For authenticated
// requests it is the snapshot captured at login time, not a live read.
type User struct {
	ID    int64
	Name  string
	Email string
	Role  persistence.Role
}

// IsClient reports whether the user may create bookings.
func (u User) IsClient() bool {
	return u.Role == persistence.RoleClient
}

// IsProfessional reports whether the user receives bookings.
func (u User) IsProfessional() bool {
	return u.Role == persistence.RoleProfessional
}

// RegisterParams captures the registration form fields.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthenticateParams captures the login form fields.
type AuthenticateParams struct {
	Email    string
	Password string
}

// AuthenticateResult carries the issued session token alongside the
// authenticated user snapshot.
type AuthenticateResult struct {
	User      User
	Token     string
	ExpiresAt time.Time
}

// ReservationView is a booking as displayed on the professional dashboard.
type ReservationView struct {
	ID         int64
	Date       string
	ClientName string
}
