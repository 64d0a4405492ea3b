package persistence

import "time"

// Role identifies which side of a booking a user account belongs to.
type Role string

const (
	// RoleClient marks an account that books appointments.
	RoleClient Role = "client"
	// RoleProfessional marks an account that receives bookings.
	RoleProfessional Role = "professional"
)

// Valid reports whether the role is one of the two permitted values.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleProfessional
}

// User represents a registered account. PasswordHash never holds plaintext.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Reservation links a client and a professional to a calendar date.
//
// Date is the submitted YYYY-MM-DD string stored verbatim; the store performs
// no conflict or role checks on the referenced accounts.
type Reservation struct {
	ID             int64
	ClientID       int64
	ProfessionalID int64
	Date           string
	CreatedAt      time.Time
}

// ReservationEntry is a reservation joined with the booking client's name,
// as shown on the professional dashboard.
type ReservationEntry struct {
	Reservation
	ClientName string
}

// Session represents an authentication session issued at login.
//
// The User* columns freeze the account attributes at login time; resolving a
// session returns this snapshot without re-reading the users table.
type Session struct {
	ID        int64
	Token     string
	UserID    int64
	UserName  string
	UserEmail string
	UserRole  Role
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}
