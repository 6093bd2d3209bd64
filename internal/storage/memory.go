package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/erauner12/bookcatalog/internal/books"
)

// Memory is an in-process books.Repository. IDs start at 1 and are never reused.
type Memory struct {
	mu     sync.RWMutex
	books  map[int64]books.Book
	nextID int64
}

// NewMemory constructs a Memory store holding the provided drafts in order
func NewMemory(seed []books.Draft) *Memory {
	m := &Memory{
		books:  make(map[int64]books.Book, len(seed)),
		nextID: 1,
	}
	for _, d := range seed {
		m.insert(d)
	}
	return m
}

func (m *Memory) insert(d books.Draft) books.Book {
	b := books.Book{
		ID:            m.nextID,
		Title:         d.Title,
		Author:        d.Author,
		PublishedYear: d.PublishedYear,
	}
	m.books[b.ID] = b
	m.nextID++
	return b
}

// List returns all books in ascending ID order
func (m *Memory) List(_ context.Context) ([]books.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]books.Book, 0, len(m.books))
	for _, b := range m.books {
		result = append(result, b)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// Get retrieves a book by its ID
func (m *Memory) Get(_ context.Context, id int64) (books.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.books[id]
	if !ok {
		return books.Book{}, books.ErrNotFound
	}
	return b, nil
}

// Create adds a new book, assigning the next ID
func (m *Memory) Create(_ context.Context, d books.Draft) (books.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.insert(d), nil
}

// Update replaces all editable fields of the book with the given ID
func (m *Memory) Update(_ context.Context, id int64, d books.Draft) (books.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.books[id]; !ok {
		return books.Book{}, books.ErrNotFound
	}

	b := books.Book{
		ID:            id,
		Title:         d.Title,
		Author:        d.Author,
		PublishedYear: d.PublishedYear,
	}
	m.books[id] = b
	return b, nil
}

// Delete removes the book with the given ID
func (m *Memory) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.books[id]; !ok {
		return books.ErrNotFound
	}

	delete(m.books, id)
	return nil
}
