package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erauner12/bookcatalog/internal/books"
	"github.com/erauner12/bookcatalog/internal/storage"
)

// newTestServer returns a router backed by a memory store holding seed
func newTestServer(t *testing.T, rl RateLimitInfo, seed ...books.Draft) (http.Handler, *storage.Memory) {
	t.Helper()

	store := storage.NewMemory(seed)
	srv := &Server{
		Books:           store,
		RateLimitConfig: rl,
		AllowedOrigins:  []string{"http://localhost:5173"},
	}
	return srv.Routes(), store
}

// defaultRateLimit is generous enough that tests never hit it by accident
var defaultRateLimit = RateLimitInfo{WindowSeconds: 60, MaxRequests: 6000, Burst: 1000}

// makeRequest sends body as JSON (if non-nil) through router
func makeRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var bodyReader *bytes.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader([]byte{})
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

// testEnvelope decodes the response envelope with data left raw
type testEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) testEnvelope {
	t.Helper()

	var env testEnvelope
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatalf("Failed to decode response: %v (body: %s)", err, w.Body.String())
	}
	return env
}
