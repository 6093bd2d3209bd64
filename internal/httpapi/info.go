package httpapi

import (
	"net/http"
	"time"

	"github.com/erauner12/bookcatalog/internal/books"
)

// APIVersion is reported by GET /info
const APIVersion = "1.0"

// ServerInfo represents the server's capabilities and configuration
type ServerInfo struct {
	APIVersion string         `json:"apiVersion"`
	ServerTime string         `json:"serverTime"`
	Validation ValidationInfo `json:"validation"`
	RateLimit  *RateLimitInfo `json:"rateLimit,omitempty"`
}

// ValidationInfo describes the bounds enforced on book fields
type ValidationInfo struct {
	MinPublishedYear int      `json:"minPublishedYear"`
	MaxPublishedYear int      `json:"maxPublishedYear"`
	RequiredFields   []string `json:"requiredFields"`
}

// Info handles GET /info
// Lets clients discover the server's validation rules and write rate limit
func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	required := make([]string, 0, len(books.Fields))
	for _, f := range books.Fields {
		required = append(required, string(f))
	}

	info := ServerInfo{
		APIVersion: APIVersion,
		ServerTime: time.Now().UTC().Format(time.RFC3339Nano),
		Validation: ValidationInfo{
			MinPublishedYear: books.MinPublishedYear,
			MaxPublishedYear: books.MaxPublishedYear,
			RequiredFields:   required,
		},
		RateLimit: &s.RateLimitConfig,
	}

	writeJSON(w, http.StatusOK, info)
}
