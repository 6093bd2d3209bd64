package storage

import (
	"context"
	"fmt"

	"github.com/erauner12/bookcatalog/internal/books"
	"github.com/erauner12/bookcatalog/internal/config"
	"github.com/erauner12/bookcatalog/internal/db"
	"github.com/rs/zerolog/log"
)

// Storage drivers accepted by Open
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open builds the repository selected by cfg.StorageDriver.
// The returned close function releases the underlying connection and is never nil.
func Open(ctx context.Context, cfg *config.ServerConfig) (books.Repository, func(), error) {
	var seed []books.Draft
	if cfg.Seed {
		seed = books.SeedData()
	}

	switch cfg.StorageDriver {
	case DriverMemory:
		log.Info().Int("seeded", len(seed)).Msg("using in-memory book store")
		return NewMemory(seed), func() {}, nil

	case DriverPostgres:
		pool, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := db.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		repo := NewPostgres(pool)
		if err := seedIfEmpty(ctx, repo, seed); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, pool.Close, nil

	case DriverSQLite:
		conn, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo := NewSQLite(conn)
		if err := seedIfEmpty(ctx, repo, seed); err != nil {
			_ = repo.Close()
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("%w: got %q", config.ErrUnknownStorageDriver, cfg.StorageDriver)
	}
}

func seedIfEmpty(ctx context.Context, repo books.Repository, seed []books.Draft) error {
	if len(seed) == 0 {
		return nil
	}

	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("check existing books: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, d := range seed {
		if _, err := repo.Create(ctx, d); err != nil {
			return fmt.Errorf("seed book %q: %w", d.Title, err)
		}
	}
	log.Info().Int("count", len(seed)).Msg("seeded empty book store")
	return nil
}
