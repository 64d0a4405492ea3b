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

// AccountService handles registration and account listings.
type AccountService struct {
	users  persistence.UserRepository
	hasher PasswordHasher
	now    func() time.Time
	logger *slog.Logger
}

// NewAccountService wires dependencies for the account service.
func NewAccountService(users persistence.UserRepository, hasher PasswordHasher, now func() time.Time) *AccountService {
	return NewAccountServiceWithLogger(users, hasher, now, nil)
}

// NewAccountServiceWithLogger constructs an AccountService with a specified logger.
func NewAccountServiceWithLogger(users persistence.UserRepository, hasher PasswordHasher, now func() time.Time, logger *slog.Logger) *AccountService {
	if now == nil {
		now = time.Now
	}
	return &AccountService{
		users:  users,
		hasher: hasher,
		now:    now,
		logger: defaultLogger(logger),
	}
}

func (s *AccountService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AccountService", operation, attrs...)
}

// Register validates the role enum, hashes the password, and persists a new
// account. The role check lives here because the closed enum is a domain
// invariant, not merely a storage concern.
func (s *AccountService) Register(ctx context.Context, params RegisterParams) (id int64, err error) {
	if s == nil {
		return 0, fmt.Errorf("AccountService is nil")
	}
	if s.users == nil {
		return 0, fmt.Errorf("user repository not configured")
	}

	name := strings.TrimSpace(params.Name)
	email := strings.TrimSpace(strings.ToLower(params.Email))
	role := persistence.Role(strings.TrimSpace(params.Role))

	logger := s.loggerWith(ctx, "Register", "email", email, "role", string(role))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "registration failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", id).InfoContext(ctx, "account registered")
	}()

	if !role.Valid() {
		err = ErrInvalidRole
		return
	}

	vErr := &ValidationError{}
	if name == "" {
		vErr.add("name", "name is required")
	}
	if email == "" {
		vErr.add("email", "email is required")
	}
	if params.Password == "" {
		vErr.add("password", "password is required")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	hashed, hashErr := s.hasher.Hash(params.Password)
	if hashErr != nil {
		err = fmt.Errorf("failed to hash password: %w", hashErr)
		return
	}

	id, err = s.users.CreateUser(ctx, persistence.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, persistence.ErrDuplicateEmail) {
			err = ErrDuplicateEmail
		}
		return
	}
	return
}

// ListProfessionals returns every professional account, for the booking form
// shown to clients. No ordering is contractual.
func (s *AccountService) ListProfessionals(ctx context.Context) ([]User, error) {
	if s == nil {
		return nil, fmt.Errorf("AccountService is nil")
	}
	if s.users == nil {
		return nil, fmt.Errorf("user repository not configured")
	}

	records, err := s.users.ListUsersByRole(ctx, persistence.RoleProfessional)
	if err != nil {
		s.loggerWith(ctx, "ListProfessionals").ErrorContext(ctx, "failed to list professionals", "error", err, "error_kind", ErrorKind(err))
		return nil, err
	}

	professionals := make([]User, 0, len(records))
	for _, record := range records {
		professionals = append(professionals, User{
			ID:    record.ID,
			Name:  record.Name,
			Email: record.Email,
			Role:  record.Role,
		})
	}
	return professionals, nil
}
