package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config captures environment driven configuration values for the booking portal.
type Config struct {
	HTTPPort   int           `env:"PORTAL_HTTP_PORT,   default=3000"`
	SQLiteDSN  string        `env:"PORTAL_SQLITE_DSN,  default=file:portal.db"`
	SessionTTL time.Duration `env:"PORTAL_SESSION_TTL, default=24h"`
	BcryptCost int           `env:"PORTAL_BCRYPT_COST, default=10"`
}

// Load parses configuration values from the current process environment.
//
// Defaults cover every field so a bare environment yields a working local
// setup; explicit values are validated and reported with the offending
// variable name.
func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if cfg.HTTPPort <= 0 {
		return Config{}, fmt.Errorf("config: PORTAL_HTTP_PORT must be positive, got %d", cfg.HTTPPort)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("config: PORTAL_SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return Config{}, fmt.Errorf("config: PORTAL_BCRYPT_COST must be within [4, 31], got %d", cfg.BcryptCost)
	}

	return cfg, nil
}
