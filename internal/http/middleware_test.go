package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/booking-portal/internal/application"
	"github.com/example/booking-portal/internal/logging"
	"github.com/example/booking-portal/internal/persistence"
)

type stubResolver struct {
	sessions map[string]application.User
}

func (s *stubResolver) ResolveSession(ctx context.Context, token string) (application.User, error) {
	user, ok := s.sessions[token]
	if !ok {
		return application.User{}, application.ErrUnauthorized
	}
	return user, nil
}

func TestWithSession(t *testing.T) {
	t.Parallel()

	ana := application.User{ID: 1, Name: "Ana", Role: persistence.RoleClient}
	resolver := &stubResolver{sessions: map[string]application.User{"valid": ana}}

	probe := func() (http.Handler, *application.User, *bool) {
		var seen application.User
		var authenticated bool
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, authenticated = SessionUserFromContext(r.Context())
		})
		return WithSession(resolver)(handler), &seen, &authenticated
	}

	t.Run("passes anonymous requests through", func(t *testing.T) {
		t.Parallel()

		handler, _, authenticated := probe()
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/dashboard", nil))
		if *authenticated {
			t.Fatal("expected no session user without a cookie")
		}
	})

	t.Run("treats unresolvable cookies as anonymous", func(t *testing.T) {
		t.Parallel()

		handler, _, authenticated := probe()
		request := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		request.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "stale"})
		handler.ServeHTTP(httptest.NewRecorder(), request)
		if *authenticated {
			t.Fatal("expected a stale cookie to resolve to no user")
		}
	})

	t.Run("stores the resolved user on the context", func(t *testing.T) {
		t.Parallel()

		handler, seen, authenticated := probe()
		request := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		request.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "valid"})
		handler.ServeHTTP(httptest.NewRecorder(), request)
		if !*authenticated {
			t.Fatal("expected the session to resolve")
		}
		if seen.ID != ana.ID || seen.Name != ana.Name {
			t.Fatalf("unexpected resolved user %+v", *seen)
		}
	})
}

func TestRequestLoggerInjectsContextLogger(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var sawLogger bool
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawLogger = logging.FromContext(r.Context()) != nil
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !sawLogger {
		t.Fatal("expected a request-scoped logger on the context")
	}
}

func TestChainAppliesOutermostFirst(t *testing.T) {
	t.Parallel()

	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), tag("outer"), tag("inner"))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if len(order) != 3 || order[0] != "outer" || order[1] != "inner" || order[2] != "handler" {
		t.Fatalf("unexpected execution order %v", order)
	}
}

func TestSessionUserContextRoundTrip(t *testing.T) {
	t.Parallel()

	if _, ok := SessionUserFromContext(context.Background()); ok {
		t.Fatal("expected no user on an empty context")
	}

	ana := application.User{ID: 1, Name: "Ana", Role: persistence.RoleClient}
	ctx := ContextWithSessionUser(context.Background(), ana)
	got, ok := SessionUserFromContext(ctx)
	if !ok || got != ana {
		t.Fatalf("unexpected round trip result %+v ok=%v", got, ok)
	}
}

var errResolver = errors.New("resolver unavailable")

type failingResolver struct{}

func (failingResolver) ResolveSession(ctx context.Context, token string) (application.User, error) {
	return application.User{}, errResolver
}

func TestWithSessionToleratesResolverFailures(t *testing.T) {
	t.Parallel()

	var authenticated bool
	handler := WithSession(failingResolver{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, authenticated = SessionUserFromContext(r.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	request.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "any"})
	handler.ServeHTTP(httptest.NewRecorder(), request)
	if authenticated {
		t.Fatal("expected resolver failures to degrade to anonymous")
	}
}
