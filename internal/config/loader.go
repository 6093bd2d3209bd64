package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Load loads configuration from a file path and applies environment variable overrides
// Validation is deferred to allow CLI flag overrides to be applied first
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadFromFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	applyEnvironmentOverrides(cfg)

	return cfg, nil
}

// loadFromFile overlays the JSON file at path onto cfg; absent keys keep their defaults
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrConfigFileNotFound
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfigFormat, err)
	}

	return nil
}

// applyEnvironmentOverrides applies configuration from environment variables
func applyEnvironmentOverrides(cfg *Config) {
	if apiURL := os.Getenv("BOOKCTL_API_BASE_URL"); apiURL != "" {
		cfg.APIBaseURL = apiURL
	}

	if timeout := os.Getenv("BOOKCTL_TIMEOUT_SECONDS"); timeout != "" {
		if n, err := strconv.Atoi(timeout); err == nil {
			cfg.TimeoutSeconds = n
		}
	}

	if yes := os.Getenv("BOOKCTL_ASSUME_YES"); yes == "true" || yes == "1" {
		cfg.AssumeYes = true
	}

	if debug := os.Getenv("BOOKCTL_DEBUG"); debug == "true" || debug == "1" {
		cfg.Debug = true
	}

	if logLevel := os.Getenv("BOOKCTL_LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}
}
