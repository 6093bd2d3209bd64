package books

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Repository when no book has the requested ID
var ErrNotFound = errors.New("book not found")

// Published year bounds (inclusive)
const (
	MinPublishedYear = 1000
	MaxPublishedYear = 2100
)

// Book is a single catalog entry. ID is assigned by the server and never changes.
type Book struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedYear int    `json:"published_year"`
}

// Draft holds the editable fields of a book. A zero PublishedYear means the year is absent.
type Draft struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedYear int    `json:"published_year"`
}

// Draft returns the editable fields of b
func (b Book) Draft() Draft {
	return Draft{
		Title:         b.Title,
		Author:        b.Author,
		PublishedYear: b.PublishedYear,
	}
}

// Repository describes the storage behaviour the HTTP API needs.
// Get, Update and Delete return ErrNotFound for unknown IDs.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id int64) (Book, error)
	Create(ctx context.Context, d Draft) (Book, error)
	Update(ctx context.Context, id int64, d Draft) (Book, error)
	Delete(ctx context.Context, id int64) error
}
