// Package status exposes a read-only, off-by-default HTTP server for
// inspecting a running script: its compiled instruction table, the
// schedulers ticking over it, and a snapshot of recent events. There is
// no authentication; it is meant for local debugging only.
package status

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/beanscript-lang/beanscript/internal/events"
	"github.com/beanscript-lang/beanscript/internal/inspect"
	"github.com/beanscript-lang/beanscript/internal/instr"
)

// Config holds status server configuration.
type Config struct {
	Listen string
}

// Server serves a snapshot of a compiled script and its live events.
type Server struct {
	config     Config
	table      *instr.Table
	schedulers []*instr.Instruction
	hub        *events.Hub
	logger     *slog.Logger
	server     *http.Server
	startedAt  time.Time
}

// New creates a status server over an already-resolved script.
func New(config Config, table *instr.Table, schedulers []*instr.Instruction, hub *events.Hub, logger *slog.Logger) *Server {
	return &Server{
		config:     config,
		table:      table,
		schedulers: schedulers,
		hub:        hub,
		logger:     logger,
		startedAt:  time.Now(),
	}
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	r := s.setupRoutes()

	s.server = &http.Server{
		Addr:         s.config.Listen,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("status server starting", "listen", s.config.Listen)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("status server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
}

func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/table", s.handleTable)
	r.Get("/schedulers", s.handleSchedulers)
	r.Get("/events", s.handleEvents)

	return r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startedAt).String(),
	})
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	dump, err := inspect.Build(s.table, s.schedulers)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, dump)
}

func (s *Server) handleSchedulers(w http.ResponseWriter, r *http.Request) {
	ids := make([]string, 0, len(s.schedulers))
	for _, sc := range s.schedulers {
		ids = append(ids, sc.ID)
	}
	writeJSON(w, http.StatusOK, map[string]any{"schedulers": ids})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	snap := s.hub.SnapshotSince(0)
	writeJSON(w, http.StatusOK, map[string]any{"events": snap})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
