// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"vdcode/internal/db"
	"vdcode/internal/service"
)

// Storage back-ends.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

var (
	ErrParsingConfig = errors.New("failed to parse environment variables into config")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds every setting of the service.
type Config struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	BaseURL         string        `env:"BASE_URL"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	AppEnv    string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT"`

	Storage       string        `env:"STORAGE" envDefault:"memory"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`

	Code CodeConfig `envPrefix:"CODE_"`

	Redis    db.RedisConfig    `envPrefix:"REDIS_"`
	Postgres db.PostgresConfig `envPrefix:"PG_"`
}

// CodeConfig holds the defaults applied to issued codes.
type CodeConfig struct {
	Length            int           `env:"LENGTH" envDefault:"6"`
	NoRepeats         bool          `env:"NO_REPEATS" envDefault:"false"`
	NoAdjacentRepeats bool          `env:"NO_ADJACENT_REPEATS" envDefault:"false"`
	TTL               time.Duration `env:"TTL" envDefault:"24h"`
}

// Defaults returns the service defaults described by c.
func (c CodeConfig) Defaults() service.Defaults {
	return service.Defaults{
		Length:            c.Length,
		NoRepeats:         c.NoRepeats,
		NoAdjacentRepeats: c.NoAdjacentRepeats,
		TTL:               c.TTL,
	}
}

// Load reads a .env file when present, then the environment.
func Load() (Config, error) {
	// a missing .env file is fine
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that the environment parser cannot.
func (c Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StorageRedis:
	case StoragePostgres:
		if c.Postgres.ConnectionString == "" {
			return fmt.Errorf("%w: PG_CONN_URL is required for postgres storage", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage %q", ErrInvalidConfig, c.Storage)
	}

	switch c.LogFormat {
	case "", "json", "text":
	default:
		return fmt.Errorf("%w: LOG_FORMAT must be json or text, got %q", ErrInvalidConfig, c.LogFormat)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if err := c.Code.Defaults().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
