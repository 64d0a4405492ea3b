package http

import (
	"context"
	"log/slog"

	"github.com/example/booking-portal/internal/logging"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

func handlerLogger(ctx context.Context, handlerName, operation string) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = slog.Default()
	}

	pairs := []any{"handler", handlerName}
	if operation != "" {
		pairs = append(pairs, "operation", operation)
	}
	return logger.With(pairs...)
}
