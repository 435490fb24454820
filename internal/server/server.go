// Package server exposes a telemetry provider over HTTP: a single snapshot
// endpoint, detail projections, a health check and a websocket stream.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Guliveer/vitalis/monitor/internal/detail"
	"github.com/Guliveer/vitalis/monitor/internal/provider"
)

const (
	// HealthPath answers liveness probes.
	HealthPath = "/healthz"
	// StreamPath upgrades to a websocket carrying snapshot updates.
	StreamPath = "/api/stream"

	shutdownTimeout = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	// StreamInterval is the cadence of the shared stream poller.
	StreamInterval time.Duration
	// Timeout bounds each provider call.
	Timeout time.Duration
}

// Server serves snapshots from a provider.
type Server struct {
	r        *chi.Mux
	provider provider.Provider
	stream   *Stream
	logger   *zap.Logger
	timeout  time.Duration
}

// New creates a Server with all routes registered.
func New(p provider.Provider, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	s := &Server{
		r:        chi.NewRouter(),
		provider: provider.Validated(p),
		logger:   logger,
		timeout:  opts.Timeout,
	}
	s.stream = NewStream(s.provider, opts.StreamInterval, logger)

	s.r.Use(middleware.RequestID)
	s.r.Use(middleware.RealIP)
	s.r.Use(newRequestLogger(logger, HealthPath))
	s.r.Use(middleware.Recoverer)

	s.r.Get(HealthPath, s.handleHealth)
	s.r.Get(StreamPath, s.stream.ServeHTTP)
	s.r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(opts.Timeout + time.Second))
		r.Get(provider.StatsPath, s.handleStats)
		r.Get("/api/detail/{category}", s.handleDetail)
	})
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.r }

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Provider listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.stream.Close()
		return err
	case <-ctx.Done():
	}

	s.stream.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	snap, err := s.provider.GetSystemStats(ctx)
	if err != nil {
		s.logger.Warn("Snapshot failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type detailResponse struct {
	Category    string       `json:"category"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Rows        []detail.Row `json:"rows"`
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	category := detail.ParseCategory(chi.URLParam(r, "category"))
	if category == detail.None {
		writeError(w, http.StatusNotFound, errors.New("unknown category"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	snap, err := s.provider.GetSystemStats(ctx)
	if err != nil {
		s.logger.Warn("Snapshot failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	title, description := detail.Title(category)
	writeJSON(w, http.StatusOK, detailResponse{
		Category:    category.String(),
		Title:       title,
		Description: description,
		Rows:        detail.Project(snap, category),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
