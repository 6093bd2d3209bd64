package config

import (
	"net/url"
	"time"
)

// Config holds all configuration for the bookctl client
type Config struct {
	APIBaseURL     string `json:"apiBaseUrl"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
	AssumeYes      bool   `json:"assumeYes"` // skip delete confirmation
	Debug          bool   `json:"debug"`
	LogLevel       string `json:"logLevel"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return ErrMissingAPIBaseURL
	}

	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidAPIBaseURL
	}

	if c.TimeoutSeconds <= 0 {
		return ErrInvalidTimeout
	}

	return nil
}

// Timeout returns the per-request HTTP timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:     "http://localhost:8080",
		TimeoutSeconds: 30,
		AssumeYes:      false,
		Debug:          false,
		LogLevel:       "info",
	}
}
