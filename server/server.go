// Package server exposes the generation pipeline over HTTP: POST
// /api/generate and /api/refine, plus health endpoints. Without a
// configured client it serves deterministic placeholder results, which is
// how the frontend is developed against it.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gogpu/studio/generate"
)

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	client *generate.Client
	logger *slog.Logger
}

// Option configures a server.
type Option func(*Server)

// WithClient wires a real generation client. Without one the server
// responds with placeholder images.
func WithClient(c *generate.Client) Option {
	return func(s *Server) { s.client = c }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New builds a server.
func New(opts ...Option) *Server {
	s := &Server{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes assembles the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK\n"))
	})
	r.Get("/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK\n"))
	})

	r.Post("/api/generate", s.handleGenerate)
	r.Post("/api/refine", s.handleRefine)
	return r
}

// decodeBody parses a JSON request body, rejecting unparseable input but
// tolerating unknown fields.
func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encoding failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg, details string) {
	body := map[string]string{"error": msg}
	if details != "" {
		body["details"] = details
	}
	s.writeJSON(w, status, body)
}
