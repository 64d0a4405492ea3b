package testfixtures

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/booking-portal/internal/application"
	"github.com/example/booking-portal/internal/persistence"
)

// ServiceFactory assists tests with constructing application services using
// deterministic clocks and session tokens. Password hashing uses the minimum
// bcrypt cost to keep tests fast.
type ServiceFactory struct {
	Clock  *Clock
	Tokens *TokenGenerator
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:  NewClock(time.Time{}),
		Tokens: NewTokenGenerator("token"),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.Tokens == nil {
		factory.Tokens = NewTokenGenerator("token")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithTokenGenerator overrides the token generator used by the factory.
func WithTokenGenerator(tokens *TokenGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Tokens = tokens
	}
}

// Hasher returns the password hasher tests share.
func (f *ServiceFactory) Hasher() application.PasswordHasher {
	return application.NewPasswordHasher(bcrypt.MinCost)
}

// AccountServiceDeps captures dependencies for constructing an account service.
type AccountServiceDeps struct {
	Users  persistence.UserRepository
	Now    func() time.Time
	Logger *slog.Logger
}

// NewAccountService builds an account service from the supplied dependencies
// combined with the factory defaults.
func (f *ServiceFactory) NewAccountService(deps AccountServiceDeps) *application.AccountService {
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewAccountServiceWithLogger(deps.Users, f.Hasher(), now, deps.Logger)
}

// AuthServiceDeps captures dependencies for constructing an auth service.
type AuthServiceDeps struct {
	Users      persistence.UserRepository
	Sessions   persistence.SessionRepository
	Tokens     func() string
	Now        func() time.Time
	SessionTTL time.Duration
	Logger     *slog.Logger
}

// NewAuthService builds an auth service from the supplied dependencies
// combined with the factory defaults. SessionTTL falls back to 24 hours.
func (f *ServiceFactory) NewAuthService(deps AuthServiceDeps) *application.AuthService {
	tokens := deps.Tokens
	if tokens == nil {
		tokens = f.Tokens.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	ttl := deps.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return application.NewAuthServiceWithLogger(deps.Users, deps.Sessions, f.Hasher(), tokens, now, ttl, deps.Logger)
}

// ReservationServiceDeps captures dependencies for constructing a reservation
// service.
type ReservationServiceDeps struct {
	Reservations persistence.ReservationRepository
	Now          func() time.Time
	Logger       *slog.Logger
}

// NewReservationService builds a reservation service from the supplied
// dependencies combined with the factory defaults.
func (f *ServiceFactory) NewReservationService(deps ReservationServiceDeps) *application.ReservationService {
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewReservationServiceWithLogger(deps.Reservations, now, deps.Logger)
}
