// Package server previews a parsed bookmarks page over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/salmonumbrella/menav-bookmarks/internal/bookmarks"
	"github.com/salmonumbrella/menav-bookmarks/internal/netscape"
	"github.com/salmonumbrella/menav-bookmarks/internal/render"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

// Snapshot is one parse of a bookmark export.
type Snapshot struct {
	File     string          `json:"file"`
	Source   netscape.Source `json:"source"`
	Stats    netscape.Stats  `json:"stats"`
	Page     bookmarks.Page  `json:"-"`
	LoadedAt time.Time       `json:"loaded_at"`
}

// Loader produces a fresh snapshot. It is called once by New and again on
// every reload.
type Loader func(ctx context.Context) (Snapshot, error)

// Server serves the current snapshot.
type Server struct {
	router chi.Router
	load   Loader
	log    *slog.Logger

	mu   sync.RWMutex
	snap Snapshot
}

// New loads the first snapshot and sets up the routes.
func New(ctx context.Context, load Loader, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{load: load, log: log}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)

	r.Route("/api", func(r chi.Router) {
		r.Get("/page", s.handlePage)
		r.Get("/stats", s.handleStats)
		r.Post("/reload", s.handleReload)
	})

	s.router = r
}

// Reload replaces the current snapshot. On error the previous one is kept.
func (s *Server) Reload(ctx context.Context) error {
	snap, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("loading bookmarks: %w", err)
	}
	if snap.LoadedAt.IsZero() {
		snap.LoadedAt = time.Now().UTC()
	}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	s.log.Info("bookmarks loaded",
		"file", snap.File,
		"categories", snap.Stats.Categories,
		"sites", snap.Stats.Sites,
	)
	return nil
}

// Snapshot returns the snapshot currently served.
func (s *Server) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting preview server", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.Document(w, snap.Page); err != nil {
		s.log.Error("render failed", "error", err)
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Snapshot().Page)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Snapshot())
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reload(r.Context()); err != nil {
		s.log.Warn("reload failed", "error", err)
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
