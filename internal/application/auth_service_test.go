package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/booking-portal/internal/persistence"
)

func registeredUser(t *testing.T, repo *stubUserRepository, hasher PasswordHasher, email, password string, role persistence.Role) persistence.User {
	t.Helper()
	hashed, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	return repo.add(persistence.User{
		Name:         "Ana",
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		CreatedAt:    fixedNow(),
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(bcrypt.MinCost)

	t.Run("issues a session for valid credentials", func(t *testing.T) {
		t.Parallel()

		users := newStubUserRepository()
		record := registeredUser(t, users, hasher, "ana@example.com", "secreto", persistence.RoleClient)
		sessions := newStubSessionRepository()

		svc := NewAuthService(users, sessions, hasher, func() string { return "token-1" }, fixedNow, time.Hour)

		result, err := svc.Authenticate(context.Background(), AuthenticateParams{Email: " Ana@Example.com ", Password: "secreto"})
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if result.Token != "token-1" {
			t.Fatalf("expected issued token, got %q", result.Token)
		}
		if !result.ExpiresAt.Equal(fixedNow().Add(time.Hour)) {
			t.Fatalf("expected expiry %v, got %v", fixedNow().Add(time.Hour), result.ExpiresAt)
		}
		if result.User.ID != record.ID || !result.User.IsClient() {
			t.Fatalf("unexpected user %+v", result.User)
		}

		stored, ok := sessions.sessions["token-1"]
		if !ok {
			t.Fatal("expected the session to be persisted")
		}
		if stored.UserID != record.ID || stored.UserName != record.Name || stored.UserEmail != record.Email || stored.UserRole != record.Role {
			t.Fatalf("session snapshot mismatch: %+v", stored)
		}
		if len(sessions.deleteCalls) != 1 || !sessions.deleteCalls[0].Equal(fixedNow()) {
			t.Fatalf("expected expired sessions to be pruned at login, got %v", sessions.deleteCalls)
		}
	})

	t.Run("distinguishes unknown emails from wrong passwords", func(t *testing.T) {
		t.Parallel()

		users := newStubUserRepository()
		registeredUser(t, users, hasher, "ana@example.com", "secreto", persistence.RoleClient)
		svc := NewAuthService(users, newStubSessionRepository(), hasher, func() string { return "t" }, fixedNow, time.Hour)

		if _, err := svc.Authenticate(context.Background(), AuthenticateParams{Email: "nadie@example.com", Password: "secreto"}); !errors.Is(err, ErrUnknownEmail) {
			t.Fatalf("expected ErrUnknownEmail, got %v", err)
		}
		if _, err := svc.Authenticate(context.Background(), AuthenticateParams{Email: "ana@example.com", Password: "incorrecta"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
		if _, err := svc.Authenticate(context.Background(), AuthenticateParams{Email: "  ", Password: "secreto"}); !errors.Is(err, ErrUnknownEmail) {
			t.Fatalf("expected ErrUnknownEmail for blank email, got %v", err)
		}
	})

	t.Run("propagates session creation failures", func(t *testing.T) {
		t.Parallel()

		expected := errors.New("insert failed")
		users := newStubUserRepository()
		registeredUser(t, users, hasher, "ana@example.com", "secreto", persistence.RoleClient)
		sessions := newStubSessionRepository()
		sessions.createErr = expected

		svc := NewAuthService(users, sessions, hasher, func() string { return "t" }, fixedNow, time.Hour)
		if _, err := svc.Authenticate(context.Background(), AuthenticateParams{Email: "ana@example.com", Password: "secreto"}); !errors.Is(err, expected) {
			t.Fatalf("expected %v, got %v", expected, err)
		}
	})
}

func TestAuthService_ResolveSession(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(bcrypt.MinCost)

	login := func(t *testing.T, svc *AuthService) AuthenticateResult {
		t.Helper()
		result, err := svc.Authenticate(context.Background(), AuthenticateParams{Email: "ana@example.com", Password: "secreto"})
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		return result
	}

	t.Run("returns the login-time snapshot", func(t *testing.T) {
		t.Parallel()

		users := newStubUserRepository()
		record := registeredUser(t, users, hasher, "ana@example.com", "secreto", persistence.RoleClient)
		sessions := newStubSessionRepository()
		svc := NewAuthService(users, sessions, hasher, func() string { return "token-1" }, fixedNow, time.Hour)
		result := login(t, svc)

		// Mutate the account after login; the session keeps serving the
		// snapshot captured when the token was issued.
		mutated := users.users[record.Email]
		mutated.Name = "Renombrada"
		users.users[record.Email] = mutated

		resolved, err := svc.ResolveSession(context.Background(), result.Token)
		if err != nil {
			t.Fatalf("ResolveSession failed: %v", err)
		}
		if resolved.Name != "Ana" {
			t.Fatalf("expected login-time name, got %q", resolved.Name)
		}
		if resolved.ID != record.ID || !resolved.IsClient() {
			t.Fatalf("unexpected resolved user %+v", resolved)
		}
	})

	t.Run("rejects absent, expired, and revoked sessions", func(t *testing.T) {
		t.Parallel()

		users := newStubUserRepository()
		registeredUser(t, users, hasher, "ana@example.com", "secreto", persistence.RoleClient)
		sessions := newStubSessionRepository()

		clock := fixedNow()
		now := func() time.Time { return clock }
		svc := NewAuthService(users, sessions, hasher, func() string { return "token-1" }, now, time.Hour)
		result := login(t, svc)

		if _, err := svc.ResolveSession(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
		}
		if _, err := svc.ResolveSession(context.Background(), "missing"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized for unknown token, got %v", err)
		}

		clock = clock.Add(2 * time.Hour)
		if _, err := svc.ResolveSession(context.Background(), result.Token); !errors.Is(err, ErrSessionExpired) {
			t.Fatalf("expected ErrSessionExpired, got %v", err)
		}

		clock = fixedNow()
		if err := svc.RevokeSession(context.Background(), result.Token); err != nil {
			t.Fatalf("RevokeSession failed: %v", err)
		}
		if _, err := svc.ResolveSession(context.Background(), result.Token); !errors.Is(err, ErrSessionRevoked) {
			t.Fatalf("expected ErrSessionRevoked, got %v", err)
		}
	})
}

func TestAuthService_RevokeSession(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(bcrypt.MinCost)

	t.Run("is idempotent for unknown and empty tokens", func(t *testing.T) {
		t.Parallel()

		sessions := newStubSessionRepository()
		svc := NewAuthService(newStubUserRepository(), sessions, hasher, nil, fixedNow, time.Hour)

		if err := svc.RevokeSession(context.Background(), ""); err != nil {
			t.Fatalf("expected nil for empty token, got %v", err)
		}
		if err := svc.RevokeSession(context.Background(), "never-issued"); err != nil {
			t.Fatalf("expected nil for unknown token, got %v", err)
		}
	})

	t.Run("prunes expired sessions after revocation", func(t *testing.T) {
		t.Parallel()

		users := newStubUserRepository()
		registeredUser(t, users, hasher, "ana@example.com", "secreto", persistence.RoleClient)
		sessions := newStubSessionRepository()
		svc := NewAuthService(users, sessions, hasher, func() string { return "token-1" }, fixedNow, time.Hour)

		if _, err := svc.Authenticate(context.Background(), AuthenticateParams{Email: "ana@example.com", Password: "secreto"}); err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if err := svc.RevokeSession(context.Background(), "token-1"); err != nil {
			t.Fatalf("RevokeSession failed: %v", err)
		}
		if len(sessions.deleteCalls) != 2 {
			t.Fatalf("expected pruning at login and logout, got %d calls", len(sessions.deleteCalls))
		}
	})
}
