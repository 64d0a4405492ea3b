package http

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/example/booking-portal/internal/logging"
)

// renderer produces the portal's server-side HTML. Every interpolated value
// passes through html/template's contextual escaping, so stored field values
// cannot inject markup into rendered pages.
type renderer struct {
	templates *template.Template
	logger    *slog.Logger
}

func newRenderer(logger *slog.Logger) renderer {
	return renderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
		logger:    defaultLogger(logger),
	}
}

// messageData feeds the generic message page: a sentence plus an optional link.
type messageData struct {
	Message  string
	LinkHref string
	LinkText string
}

func (r renderer) render(ctx context.Context, w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to render template", "template", name, "error", err)
	}
}

func (r renderer) message(ctx context.Context, w http.ResponseWriter, status int, data messageData) {
	r.render(ctx, w, status, "message.html", data)
}

func (r renderer) loggerFor(ctx context.Context) *slog.Logger {
	if logger := logging.FromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}
