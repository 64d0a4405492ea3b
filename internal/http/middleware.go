package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/booking-portal/internal/application"
	"github.com/example/booking-portal/internal/logging"
)

// Middleware wraps a handler with cross-cutting behavior.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares in declaration order: the first middleware
// listed is the outermost wrapper.
func Chain(handler http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// RequestLogger attaches a request-scoped logger to the context and logs
// one line per request with method, path, and remote address.
func RequestLogger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestLogger := logger.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
			)
			requestLogger.InfoContext(r.Context(), "http request received")
			ctx := logging.ContextWithLogger(r.Context(), requestLogger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionResolver resolves a session cookie value to the user it
// belongs to.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (application.User, error)
}

// WithSession resolves the session cookie, if any, and stores the
// authenticated user on the request context. Requests without a valid
// session proceed anonymously; handlers decide whether to reject them.
func WithSession(resolver SessionResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			user, err := resolver.ResolveSession(r.Context(), cookie.Value)
			if err != nil {
				// Stale or revoked cookie: treat the request as anonymous.
				next.ServeHTTP(w, r)
				return
			}
			ctx := ContextWithSessionUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
