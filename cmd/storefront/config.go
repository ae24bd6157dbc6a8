package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/storefront/pkg/db"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/redis"
)

// Session store backends.
const (
	storeMemory   = "memory"
	storeRedis    = "redis"
	storePostgres = "postgres"
)

type config struct {
	Address         string        `env:"ADDRESS" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// Public catalog and detail pages.
	APIURL string `env:"API_URL,required,notEmpty"`
	// CRUD grid; never falls back to APIURL.
	AdminAPIURL string        `env:"ADMIN_API_URL" envDefault:"http://localhost:3000/api"`
	APITimeout  time.Duration `env:"API_TIMEOUT" envDefault:"0"`

	CookieSecret    string `env:"COOKIE_SECRET"`
	CookieSecure    bool   `env:"COOKIE_SECURE" envDefault:"true"`
	TokenCookieName string `env:"TOKEN_COOKIE_NAME" envDefault:"token"`

	SessionStore         string `env:"SESSION_STORE" envDefault:"memory"`
	SessionSweepSchedule string `env:"SESSION_SWEEP_SCHEDULE" envDefault:"@every 10m"`

	GridStateTTL          time.Duration `env:"GRID_STATE_TTL" envDefault:"30m"`
	SurfaceMutationErrors bool          `env:"SURFACE_MUTATION_ERRORS" envDefault:"false"`

	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"es"`

	Log      logger.Config
	Redis    redis.Config
	Database db.Config
}

func loadConfig() (config, error) {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		return config{}, fmt.Errorf("parse config: %w", err)
	}

	switch cfg.SessionStore {
	case storeMemory:
	case storeRedis:
		if cfg.Redis.URL == "" {
			return config{}, errors.New("SESSION_STORE=redis requires REDIS_URL")
		}
	case storePostgres:
		if cfg.Database.ConnectionString == "" {
			return config{}, errors.New("SESSION_STORE=postgres requires DATABASE_URL")
		}
	default:
		return config{}, fmt.Errorf("unknown SESSION_STORE %q", cfg.SessionStore)
	}
	return cfg, nil
}
