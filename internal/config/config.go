package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:"../web/dist"`

	// ContentPath points at a YAML content table. Empty uses the built-in one.
	ContentPath string `env:"CONTENT_PATH"`

	SessionBackend string        `env:"SESSION_BACKEND" envDefault:"memory"`
	DBPath         string        `env:"DB_PATH" envDefault:"data/hunt.db"`
	RedisURL       string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	NoticeTTL time.Duration `env:"NOTICE_TTL" envDefault:"5s"`

	// AdminPasswordHash is a bcrypt hash. Empty disables the admin routes.
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	// Seed makes map filler deterministic when non-zero.
	Seed uint64 `env:"SEED"`
}

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	switch cfg.SessionBackend {
	case BackendMemory, BackendSQLite, BackendRedis:
	default:
		return nil, fmt.Errorf("unknown SESSION_BACKEND %q", cfg.SessionBackend)
	}
	if cfg.NoticeTTL <= 0 {
		return nil, fmt.Errorf("NOTICE_TTL must be positive, got %s", cfg.NoticeTTL)
	}
	return &cfg, nil
}
