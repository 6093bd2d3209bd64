package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/erauner12/bookcatalog/internal/books"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Postgres is a books.Repository backed by the book table
type Postgres struct {
	DB *pgxpool.Pool
}

// NewPostgres creates a new Postgres store
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{DB: pool}
}

// List returns all books ordered by id
func (s *Postgres) List(ctx context.Context) ([]books.Book, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, title, author, published_year
		FROM book
		ORDER BY id
	`)
	if err != nil {
		log.Error().Err(err).Msg("failed to query books")
		return nil, err
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

// Get retrieves a single book
func (s *Postgres) Get(ctx context.Context, id int64) (books.Book, error) {
	var b books.Book
	err := s.DB.QueryRow(ctx,
		`SELECT id, title, author, published_year FROM book WHERE id = $1`, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.PublishedYear)
	return b, notFound(err)
}

// Create inserts a book and returns it with the database-assigned id
func (s *Postgres) Create(ctx context.Context, d books.Draft) (books.Book, error) {
	var b books.Book
	err := s.DB.QueryRow(ctx, `
		INSERT INTO book (title, author, published_year)
		VALUES ($1, $2, $3)
		RETURNING id, title, author, published_year
	`, d.Title, d.Author, d.PublishedYear).
		Scan(&b.ID, &b.Title, &b.Author, &b.PublishedYear)
	if err != nil {
		log.Error().Err(err).Msg("failed to insert book")
		return books.Book{}, err
	}
	return b, nil
}

// Update replaces all editable fields of the identified book
func (s *Postgres) Update(ctx context.Context, id int64, d books.Draft) (books.Book, error) {
	var b books.Book
	err := s.DB.QueryRow(ctx, `
		UPDATE book
		SET title = $2, author = $3, published_year = $4, updated_at = now()
		WHERE id = $1
		RETURNING id, title, author, published_year
	`, id, d.Title, d.Author, d.PublishedYear).
		Scan(&b.ID, &b.Title, &b.Author, &b.PublishedYear)
	return b, notFound(err)
}

// Delete removes the identified book
func (s *Postgres) Delete(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM book WHERE id = $1`, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete book")
		return err
	}
	if tag.RowsAffected() == 0 {
		return books.ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return books.ErrNotFound
	}
	return err
}
