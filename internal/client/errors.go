package client

import (
	"errors"
	"fmt"
	"net/http"
)

// FallbackErrorMessage is used when a failed response carries no error text
const FallbackErrorMessage = "something went wrong"

// TransportError means the request never produced an HTTP response
// (connection refused, DNS failure, timeout, cancelled context).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerError is a non-2xx response. Message is the server-supplied error text.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a 404 from the server
func IsNotFound(err error) bool {
	var se *ServerError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}

// Message extracts the user-facing text of err, or fallback when err has none
func Message(err error, fallback string) string {
	var se *ServerError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
