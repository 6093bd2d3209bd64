package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/erauner12/bookcatalog/internal/books"
)

// Acknowledgement is the server's confirmation of a delete
type Acknowledgement struct {
	Message string `json:"message"`
}

// envelope is the response shape shared by every /books endpoint
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// BookClient provides the CRUD operations of the /books resource
type BookClient struct {
	http     *HTTPClient
	basePath string
}

// NewBookClient creates a client for the /books resource
func NewBookClient(httpClient *HTTPClient) *BookClient {
	return &BookClient{
		http:     httpClient,
		basePath: "/books",
	}
}

// ListBooks fetches the full collection
func (c *BookClient) ListBooks(ctx context.Context) ([]books.Book, error) {
	var list []books.Book
	if _, err := c.do(ctx, http.MethodGet, c.basePath, nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []books.Book{}
	}
	return list, nil
}

// GetBook fetches a single book
func (c *BookClient) GetBook(ctx context.Context, id int64) (books.Book, error) {
	var b books.Book
	_, err := c.do(ctx, http.MethodGet, c.itemPath(id), nil, &b)
	return b, err
}

// CreateBook sends the draft fields and returns the stored record with its new ID
func (c *BookClient) CreateBook(ctx context.Context, d books.Draft) (books.Book, error) {
	var b books.Book
	_, err := c.do(ctx, http.MethodPost, c.basePath, d, &b)
	return b, err
}

// UpdateBook replaces all editable fields of the identified book.
// An unknown ID yields a *ServerError with status 404.
func (c *BookClient) UpdateBook(ctx context.Context, id int64, d books.Draft) (books.Book, error) {
	var b books.Book
	_, err := c.do(ctx, http.MethodPut, c.itemPath(id), d, &b)
	return b, err
}

// DeleteBook removes the identified book
func (c *BookClient) DeleteBook(ctx context.Context, id int64) (Acknowledgement, error) {
	env, err := c.do(ctx, http.MethodDelete, c.itemPath(id), nil, nil)
	if err != nil {
		return Acknowledgement{}, err
	}
	return Acknowledgement{Message: env.Message}, nil
}

func (c *BookClient) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", c.basePath, id)
}

// do performs one request and normalizes the response.
// body is JSON-encoded when non-nil; the envelope's data is decoded into out when non-nil.
func (c *BookClient) do(ctx context.Context, method, path string, body, out any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.http.BaseURL()+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return handleResponse(resp, out)
}

// handleResponse parses the body as an envelope. A non-2xx status becomes a *ServerError
// carrying the body's error text, or FallbackErrorMessage when there is none.
func handleResponse(resp *http.Response, out any) (*envelope, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read response", Err: err}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Error
		if decodeErr != nil || msg == "" {
			msg = FallbackErrorMessage
		}
		return nil, &ServerError{Status: resp.StatusCode, Message: msg}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return &env, nil
}
