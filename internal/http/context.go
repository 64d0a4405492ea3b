package http

import (
	"context"

	"github.com/example/booking-portal/internal/application"
)

type contextKey string

const sessionUserContextKey contextKey = "session_user"

// ContextWithSessionUser returns a derived context carrying the user snapshot
// resolved from the request's session cookie.
func ContextWithSessionUser(ctx context.Context, user application.User) context.Context {
	return context.WithValue(ctx, sessionUserContextKey, user)
}

// SessionUserFromContext extracts the authenticated user snapshot, if any.
func SessionUserFromContext(ctx context.Context) (application.User, bool) {
	user, ok := ctx.Value(sessionUserContextKey).(application.User)
	return user, ok
}
