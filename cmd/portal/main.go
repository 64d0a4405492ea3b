package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/booking-portal/internal/application"
	"github.com/example/booking-portal/internal/config"
	httptransport "github.com/example/booking-portal/internal/http"
	"github.com/example/booking-portal/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	handler, cleanup, err := buildHandler(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize portal", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("booking portal listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// buildHandler opens and migrates storage, wires the services and handlers,
// and returns the root HTTP handler plus a cleanup callback that closes the
// storage pool.
func buildHandler(ctx context.Context, cfg config.Config, logger *slog.Logger) (http.Handler, func(), error) {
	pool, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	cleanup := func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}

	if err := pool.Migrate(ctx, logger); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("apply migrations: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("storage not reachable after migration: %w", err)
	}
	logger.Info("storage ready", "dsn", cfg.SQLiteDSN)

	userRepo := sqlite.NewUserRepository(pool)
	reservationRepo := sqlite.NewReservationRepository(pool)
	sessionRepo := sqlite.NewSessionRepository(pool)

	hasher := application.NewPasswordHasher(cfg.BcryptCost)
	tokenGenerator := uuid.NewString
	now := time.Now

	accountService := application.NewAccountServiceWithLogger(userRepo, hasher, now, logger)
	authService := application.NewAuthServiceWithLogger(userRepo, sessionRepo, hasher, tokenGenerator, now, cfg.SessionTTL, logger)
	reservationService := application.NewReservationServiceWithLogger(reservationRepo, now, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:         httptransport.NewAuthHandler(accountService, authService, logger),
		Dashboard:    httptransport.NewDashboardHandler(accountService, reservationService, logger),
		Reservations: httptransport.NewReservationHandler(reservationService, logger),
		Middleware: []httptransport.Middleware{
			httptransport.RequestLogger(logger),
			httptransport.WithSession(authService),
		},
	})

	return router, cleanup, nil
}
