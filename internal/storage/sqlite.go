package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erauner12/bookcatalog/internal/books"
)

// SQLite is a books.Repository backed by a local SQLite file
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an open connection; the schema must already be applied (see db.OpenSQLite)
func NewSQLite(conn *sql.DB) *SQLite {
	return &SQLite{db: conn}
}

// Close closes the underlying connection
func (s *SQLite) Close() error {
	return s.db.Close()
}

// List returns all books in ascending ID order
func (s *SQLite) List(ctx context.Context) ([]books.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, author, published_year FROM book ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	result := make([]books.Book, 0)
	for rows.Next() {
		var b books.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.PublishedYear); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

// Get retrieves a book by its ID
func (s *SQLite) Get(ctx context.Context, id int64) (books.Book, error) {
	var b books.Book
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, author, published_year FROM book WHERE id = ?`, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.PublishedYear)
	if errors.Is(err, sql.ErrNoRows) {
		return books.Book{}, books.ErrNotFound
	}
	return b, err
}

// Create inserts a book and returns it with its new ID
func (s *SQLite) Create(ctx context.Context, d books.Draft) (books.Book, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO book (title, author, published_year) VALUES (?, ?, ?)`,
		d.Title, d.Author, d.PublishedYear)
	if err != nil {
		return books.Book{}, fmt.Errorf("insert book: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return books.Book{}, fmt.Errorf("last insert id: %w", err)
	}
	return books.Book{
		ID:            id,
		Title:         d.Title,
		Author:        d.Author,
		PublishedYear: d.PublishedYear,
	}, nil
}

// Update replaces the fields of book id
func (s *SQLite) Update(ctx context.Context, id int64, d books.Draft) (books.Book, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE book
		SET title = ?, author = ?, published_year = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		d.Title, d.Author, d.PublishedYear, id)
	if err != nil {
		return books.Book{}, fmt.Errorf("update book: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return books.Book{}, books.ErrNotFound
	}
	return books.Book{
		ID:            id,
		Title:         d.Title,
		Author:        d.Author,
		PublishedYear: d.PublishedYear,
	}, nil
}

// Delete removes book id
func (s *SQLite) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM book WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return books.ErrNotFound
	}
	return nil
}
