// Package server provides the HTTP page and API for the internet usage map.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/rs/zerolog"

	"github.com/agentstation/inetmap/cmd/application"
	"github.com/agentstation/inetmap/internal/cache"
	"github.com/agentstation/inetmap/internal/server/handlers"
)

// cacheReporter is implemented by preparers that memoize results.
type cacheReporter interface {
	Stats() cache.Stats
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	app       application.Application
	logger    *zerolog.Logger
	config    Config
	metrics   *metrics.Set
	startTime time.Time
}

// New creates a new server instance with the given configuration.
func New(app application.Application, cfg Config) (*Server, error) {
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = DefaultConfig().PathPrefix
	}
	s := &Server{
		app:       app,
		logger:    app.Logger(),
		config:    cfg,
		metrics:   metrics.NewSet(),
		startTime: time.Now(),
	}
	if reporter, ok := app.Preparer().(cacheReporter); ok {
		s.registerCacheGauges(reporter)
	}
	return s, nil
}

// registerCacheGauges exposes the preparer cache counters.
func (s *Server) registerCacheGauges(r cacheReporter) {
	s.metrics.NewGauge("inetmap_prepare_cache_hits", func() float64 {
		return float64(r.Stats().Hits)
	})
	s.metrics.NewGauge("inetmap_prepare_cache_misses", func() float64 {
		return float64(r.Stats().Misses)
	})
	s.metrics.NewGauge("inetmap_prepare_cache_items", func() float64 {
		return float64(r.Stats().ItemCount)
	})
}

// Metrics returns the server's metric set.
func (s *Server) Metrics() *metrics.Set {
	return s.metrics
}

// handleMetrics writes server and process metrics in Prometheus text format.
func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	s.metrics.WritePrometheus(w)
	metrics.WriteProcessMetrics(w)
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// HTTPServer returns an http.Server bound to the configured address.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Host, s.config.Port),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down within
// shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, shutdownTimeout time.Duration) error {
	srv := s.HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}

// newHandlers creates the route handlers.
func (s *Server) newHandlers() *handlers.Handlers {
	return handlers.New(s.app, s.logger, s.startTime)
}
