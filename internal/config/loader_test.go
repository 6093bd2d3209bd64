package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearClientEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BOOKCTL_API_BASE_URL", "BOOKCTL_TIMEOUT_SECONDS", "BOOKCTL_ASSUME_YES",
		"BOOKCTL_DEBUG", "BOOKCTL_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		envVars map[string]string
		checks  func(*testing.T, *Config)
	}{
		{
			name: "defaults when nothing set",
			checks: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
				assert.Equal(t, 30, cfg.TimeoutSeconds)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.False(t, cfg.AssumeYes)
			},
		},
		{
			name: "file overlays defaults",
			file: `{"apiBaseUrl": "http://books.internal:9000", "assumeYes": true}`,
			checks: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://books.internal:9000", cfg.APIBaseURL)
				assert.True(t, cfg.AssumeYes)
				assert.Equal(t, 30, cfg.TimeoutSeconds, "absent keys keep defaults")
			},
		},
		{
			name: "environment overrides file",
			file: `{"apiBaseUrl": "http://from-file:9000", "logLevel": "warn"}`,
			envVars: map[string]string{
				"BOOKCTL_API_BASE_URL":    "http://from-env:9001",
				"BOOKCTL_TIMEOUT_SECONDS": "5",
				"BOOKCTL_DEBUG":           "1",
			},
			checks: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://from-env:9001", cfg.APIBaseURL)
				assert.Equal(t, 5, cfg.TimeoutSeconds)
				assert.True(t, cfg.Debug)
				assert.Equal(t, "warn", cfg.LogLevel)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearClientEnv(t)
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			path := ""
			if tt.file != "" {
				path = filepath.Join(t.TempDir(), "bookctl.json")
				require.NoError(t, os.WriteFile(path, []byte(tt.file), 0o600))
			}

			cfg, err := Load(path)
			require.NoError(t, err)
			tt.checks(t, cfg)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	clearClientEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrConfigFileNotFound)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfigFormat)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "default is valid", mutate: func(*Config) {}},
		{name: "missing base url", mutate: func(c *Config) { c.APIBaseURL = "" }, wantErr: ErrMissingAPIBaseURL},
		{name: "relative base url", mutate: func(c *Config) { c.APIBaseURL = "/books" }, wantErr: ErrInvalidAPIBaseURL},
		{name: "zero timeout", mutate: func(c *Config) { c.TimeoutSeconds = 0 }, wantErr: ErrInvalidTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadServerConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"ENV", "HTTP_ADDR", "STORAGE_DRIVER", "DATABASE_URL", "ALLOWED_ORIGINS", "SEED"} {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}

		cfg, err := LoadServerConfig()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, "memory", cfg.StorageDriver)
		assert.True(t, cfg.Seed)
		assert.True(t, cfg.IsDev())
		assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
		assert.Equal(t, 120, cfg.RateLimitBurst)
	})

	t.Run("postgres requires database url", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "postgres")
		t.Setenv("DATABASE_URL", "")
		os.Unsetenv("DATABASE_URL")

		_, err := LoadServerConfig()
		assert.ErrorIs(t, err, ErrMissingDatabaseURL)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "mongo")

		_, err := LoadServerConfig()
		assert.ErrorIs(t, err, ErrUnknownStorageDriver)
	})

	t.Run("origins from environment", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "memory")
		t.Setenv("ALLOWED_ORIGINS", "https://books.example.com,https://admin.example.com")

		cfg, err := LoadServerConfig()
		require.NoError(t, err)
		assert.Equal(t, []string{"https://books.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
	})
}
