package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/erauner12/bookcatalog/internal/books"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Server holds dependencies for HTTP handlers
type Server struct {
	Books           books.Repository
	RateLimitConfig RateLimitInfo
	AllowedOrigins  []string
}

// response is the envelope every endpoint answers with
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode json response")
	}
}

func writeSuccess(w http.ResponseWriter, code int, message string, data any) {
	writeJSON(w, code, response{Success: true, Message: message, Data: data})
}

// writeError writes the failure envelope and logs server-side errors with the request's logger
func writeError(w http.ResponseWriter, r *http.Request, code int, message string) {
	if code >= http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Int("status", code).Str("path", r.URL.Path).Msg(message)
	}
	writeJSON(w, code, response{Success: false, Error: message})
}

// Routes creates the HTTP router with all book endpoints
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(CorrelationMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Correlation-ID"},
		ExposedHeaders:   []string{"Link", "X-Correlation-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(MetricsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/info", s.Info)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/books", func(r chi.Router) {
		r.Get("/", s.ListBooks)
		r.Get("/{id}", s.GetBook)

		// Writes are rate limited per client address
		r.Group(func(r chi.Router) {
			r.Use(RateLimitMiddleware(s.RateLimitConfig))
			r.Post("/", s.CreateBook)
			r.Put("/{id}", s.UpdateBook)
			r.Delete("/{id}", s.DeleteBook)
		})
	})

	log.Info().Msg("HTTP routes registered")
	return r
}
