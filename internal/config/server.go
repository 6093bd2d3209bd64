package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ServerConfig holds configuration for the book API server, read from the environment
type ServerConfig struct {
	Env      string `envconfig:"ENV" default:"dev"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Storage
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"memory"`
	DatabaseURL   string `envconfig:"DATABASE_URL"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"data/books.db"`
	Seed          bool   `envconfig:"SEED" default:"true"`

	// Browser origins allowed to call the API
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`

	// Token bucket applied to mutating routes, per client IP
	RateLimitWindowSeconds int `envconfig:"RATE_LIMIT_WINDOW_SECONDS" default:"60"`
	RateLimitMaxRequests   int `envconfig:"RATE_LIMIT_MAX_REQUESTS" default:"600"`
	RateLimitBurst         int `envconfig:"RATE_LIMIT_BURST" default:"120"`
}

// LoadServerConfig reads an optional .env file and then the process environment
func LoadServerConfig() (*ServerConfig, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg ServerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks driver-specific requirements and rate limit bounds
func (c *ServerConfig) Validate() error {
	switch c.StorageDriver {
	case "memory", "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			return ErrMissingDatabaseURL
		}
	default:
		return ErrUnknownStorageDriver
	}

	if c.RateLimitWindowSeconds <= 0 || c.RateLimitMaxRequests <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit settings must be positive")
	}

	return nil
}

// IsDev reports whether the server runs in local development mode
func (c *ServerConfig) IsDev() bool {
	return c.Env == "dev"
}
