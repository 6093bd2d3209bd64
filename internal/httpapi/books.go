package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/erauner12/bookcatalog/internal/books"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// bookID parses the {id} URL parameter
func bookID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decodeDraft reads and validates a book body. It writes the 400 response itself on failure.
func decodeDraft(w http.ResponseWriter, r *http.Request) (books.Draft, bool) {
	var d books.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return d, false
	}
	if err := d.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return d, false
	}
	return d, true
}

// ListBooks handles GET /books
func (s *Server) ListBooks(w http.ResponseWriter, r *http.Request) {
	list, err := s.Books.List(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to list books")
		writeError(w, r, http.StatusInternalServerError, "Failed to retrieve books")
		return
	}
	writeSuccess(w, http.StatusOK, "Books retrieved successfully", list)
}

// GetBook handles GET /books/{id}
func (s *Server) GetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Invalid book ID")
		return
	}

	b, err := s.Books.Get(r.Context(), id)
	if err != nil {
		s.storageError(w, r, err, "failed to get book")
		return
	}
	writeSuccess(w, http.StatusOK, "Book retrieved successfully", b)
}

// CreateBook handles POST /books
func (s *Server) CreateBook(w http.ResponseWriter, r *http.Request) {
	d, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	b, err := s.Books.Create(r.Context(), d)
	if err != nil {
		s.storageError(w, r, err, "failed to create book")
		return
	}

	bookMutationsTotal.WithLabelValues("create").Inc()
	log.Ctx(r.Context()).Info().Int64("id", b.ID).Msg("book created")
	writeSuccess(w, http.StatusCreated, "Book created successfully", b)
}

// UpdateBook handles PUT /books/{id}
func (s *Server) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Invalid book ID")
		return
	}
	d, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	b, err := s.Books.Update(r.Context(), id, d)
	if err != nil {
		s.storageError(w, r, err, "failed to update book")
		return
	}

	bookMutationsTotal.WithLabelValues("update").Inc()
	log.Ctx(r.Context()).Info().Int64("id", id).Msg("book updated")
	writeSuccess(w, http.StatusOK, "Book updated successfully", b)
}

// DeleteBook handles DELETE /books/{id}
func (s *Server) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Invalid book ID")
		return
	}

	if err := s.Books.Delete(r.Context(), id); err != nil {
		s.storageError(w, r, err, "failed to delete book")
		return
	}

	bookMutationsTotal.WithLabelValues("delete").Inc()
	log.Ctx(r.Context()).Info().Int64("id", id).Msg("book deleted")
	writeSuccess(w, http.StatusOK, "Book deleted successfully", nil)
}

// storageError maps repository errors to 404 or 500
func (s *Server) storageError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if errors.Is(err, books.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "Book not found")
		return
	}
	log.Ctx(r.Context()).Error().Err(err).Msg(msg)
	writeError(w, r, http.StatusInternalServerError, "Internal server error")
}
