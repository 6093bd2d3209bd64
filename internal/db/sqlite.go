package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const sqliteBookSchema = `
CREATE TABLE IF NOT EXISTS book (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	title          TEXT    NOT NULL,
	author         TEXT    NOT NULL,
	published_year INTEGER NOT NULL CHECK (published_year BETWEEN 1000 AND 2100),
	created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// OpenSQLite opens (or creates) the SQLite database at path and applies the book schema
func OpenSQLite(path string) (*sql.DB, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// single writer
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(sqliteBookSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create book table: %w", err)
	}

	log.Info().Str("path", path).Msg("sqlite database opened")
	return conn, nil
}
