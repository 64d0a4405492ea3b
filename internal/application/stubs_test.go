package application

import (
	"context"
	"time"

	"github.com/example/booking-portal/internal/persistence"
)

type stubUserRepository struct {
	users     map[string]persistence.User
	nextID    int64
	createErr error
	lookupErr error
	listErr   error
	created   []persistence.User
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{users: make(map[string]persistence.User)}
}

func (s *stubUserRepository) add(user persistence.User) persistence.User {
	s.nextID++
	user.ID = s.nextID
	s.users[user.Email] = user
	return user
}

func (s *stubUserRepository) CreateUser(ctx context.Context, user persistence.User) (int64, error) {
	if s.createErr != nil {
		return 0, s.createErr
	}
	if _, exists := s.users[user.Email]; exists {
		return 0, persistence.ErrDuplicateEmail
	}
	stored := s.add(user)
	s.created = append(s.created, stored)
	return stored.ID, nil
}

func (s *stubUserRepository) GetUser(ctx context.Context, id int64) (persistence.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return persistence.User{}, persistence.ErrNotFound
}

func (s *stubUserRepository) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	if s.lookupErr != nil {
		return persistence.User{}, s.lookupErr
	}
	user, ok := s.users[email]
	if !ok {
		return persistence.User{}, persistence.ErrNotFound
	}
	return user, nil
}

func (s *stubUserRepository) ListUsersByRole(ctx context.Context, role persistence.Role) ([]persistence.User, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var matched []persistence.User
	for _, user := range s.users {
		if user.Role == role {
			matched = append(matched, user)
		}
	}
	return matched, nil
}

type stubSessionRepository struct {
	sessions    map[string]persistence.Session
	nextID      int64
	createErr   error
	getErr      error
	revokeErr   error
	deleteErr   error
	deleteCalls []time.Time
}

func newStubSessionRepository() *stubSessionRepository {
	return &stubSessionRepository{sessions: make(map[string]persistence.Session)}
}

func (s *stubSessionRepository) CreateSession(ctx context.Context, session persistence.Session) (persistence.Session, error) {
	if s.createErr != nil {
		return persistence.Session{}, s.createErr
	}
	s.nextID++
	session.ID = s.nextID
	s.sessions[session.Token] = session
	return session, nil
}

func (s *stubSessionRepository) GetSession(ctx context.Context, token string) (persistence.Session, error) {
	if s.getErr != nil {
		return persistence.Session{}, s.getErr
	}
	session, ok := s.sessions[token]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	return session, nil
}

func (s *stubSessionRepository) RevokeSession(ctx context.Context, token string, revokedAt time.Time) error {
	if s.revokeErr != nil {
		return s.revokeErr
	}
	session, ok := s.sessions[token]
	if !ok {
		return persistence.ErrNotFound
	}
	session.RevokedAt = &revokedAt
	s.sessions[token] = session
	return nil
}

func (s *stubSessionRepository) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	s.deleteCalls = append(s.deleteCalls, reference)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for token, session := range s.sessions {
		if !session.ExpiresAt.After(reference) {
			delete(s.sessions, token)
		}
	}
	return nil
}

type stubReservationRepository struct {
	nextID    int64
	createErr error
	listErr   error
	created   []persistence.Reservation
	entries   []persistence.ReservationEntry
}

func (s *stubReservationRepository) CreateReservation(ctx context.Context, reservation persistence.Reservation) (int64, error) {
	if s.createErr != nil {
		return 0, s.createErr
	}
	s.nextID++
	reservation.ID = s.nextID
	s.created = append(s.created, reservation)
	return reservation.ID, nil
}

func (s *stubReservationRepository) ListForProfessional(ctx context.Context, professionalID int64) ([]persistence.ReservationEntry, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.entries, nil
}
