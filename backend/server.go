// Package backend is a development server that accepts session summaries
// and keeps them in memory.
package backend

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/ayoisaiah/pagetime/internal/apperr"
	"github.com/ayoisaiah/pagetime/internal/session"
)

const maxBodyBytes = 1 << 16

var (
	errMalformedBody = &apperr.Error{Message: "malformed request body"}
	errInvalidBody   = &apperr.Error{Message: "summary failed validation"}
)

// Received is a summary as recorded by the server.
type Received struct {
	ClientID string          `json:"clientId"`
	Summary  session.Summary `json:"summary"`
}

// Server records every summary it accepts.
type Server struct {
	logger   *slog.Logger
	received []Received
	mu       sync.Mutex
}

// New returns a Server. A nil logger discards output.
func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{logger: logger}
}

type errorHandler func(w http.ResponseWriter, r *http.Request) error

func (s *Server) handle(h errorHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		status := http.StatusInternalServerError

		if errors.Is(err, errMalformedBody) || errors.Is(err, errInvalidBody) {
			status = http.StatusBadRequest
		}

		s.logger.Warn(
			"request rejected",
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Any("error", err),
		)

		writeJSON(w, status, map[string]string{"error": err.Error()})
	}
}

// Router mounts the API under /api.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", s.handle(s.createSession))
		r.Get("/sessions", s.handle(s.listSessions))
	})

	return r
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errMalformedBody.Wrap(err)
	}

	var summary session.Summary

	if err := json.Unmarshal(body, &summary); err != nil {
		return errMalformedBody.Wrap(err)
	}

	if err := summary.Validate(); err != nil {
		return errInvalidBody.Wrap(err)
	}

	rec := Received{
		ClientID: r.Header.Get("X-Client-Id"),
		Summary:  summary,
	}

	s.mu.Lock()
	s.received = append(s.received, rec)
	s.mu.Unlock()

	s.logger.Info(
		"session recorded",
		slog.String("client_id", rec.ClientID),
		slog.Any("summary", summary),
	)

	writeJSON(w, http.StatusCreated, rec)

	return nil
}

func (s *Server) listSessions(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, s.Received())

	return nil
}

// Received returns a copy of the recorded summaries in arrival order.
func (s *Server) Received() []Received {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Received, len(s.received))
	copy(out, s.received)

	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}
