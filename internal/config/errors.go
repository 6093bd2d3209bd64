package config

import "errors"

var (
	// ErrMissingAPIBaseURL indicates that the API base URL is not configured
	ErrMissingAPIBaseURL = errors.New("apiBaseUrl is required in configuration")

	// ErrInvalidAPIBaseURL indicates that the API base URL is not an absolute URL
	ErrInvalidAPIBaseURL = errors.New("apiBaseUrl must be an absolute http(s) URL")

	// ErrInvalidTimeout indicates a non-positive request timeout
	ErrInvalidTimeout = errors.New("timeoutSeconds must be positive")

	// ErrConfigFileNotFound indicates that the config file was not found
	ErrConfigFileNotFound = errors.New("configuration file not found")

	// ErrInvalidConfigFormat indicates that the config file has invalid JSON
	ErrInvalidConfigFormat = errors.New("invalid configuration file format")

	// ErrUnknownStorageDriver indicates an unsupported STORAGE_DRIVER value
	ErrUnknownStorageDriver = errors.New("STORAGE_DRIVER must be one of memory, postgres, sqlite")

	// ErrMissingDatabaseURL indicates the postgres driver was selected without DATABASE_URL
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required when STORAGE_DRIVER is postgres")
)
