// Package server exposes the beam analysis over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/alexiusacademia/eurobeam/internal/beam"
)

// ShutdownTimeout bounds the graceful shutdown of ListenAndServe
const ShutdownTimeout = 5 * time.Second

// Config holds the server settings
type Config struct {
	Defaults     beam.BeamInput // fills fields missing from request bodies
	Limits       beam.Limits
	Lang         string
	Rate         float64
	Burst        int
	MaxBodyBytes int64
	ClientTTL    time.Duration // idle time before a client's bucket is dropped
}

// Server routes the HTTP API
type Server struct {
	cfg     Config
	logger  *slog.Logger
	limiter *RateLimiter
	router  *mux.Router
}

// New builds a server and its routes
func New(cfg Config, logger *slog.Logger) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		limiter: NewRateLimiter(rate.Limit(cfg.Rate), cfg.Burst, cfg.ClientTTL),
		router:  mux.NewRouter(),
	}
	s.routes()
	return s
}

// routes registers full paths on the root router. Routes on a PathPrefix
// subrouter answer 404 instead of 405 on a method mismatch.
func (s *Server) routes() {
	s.router.Use(withRequestID, accessLog(s.logger))
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "not found")
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	limited := func(h http.HandlerFunc) http.Handler {
		return s.limiter.Middleware(h)
	}
	s.router.Handle("/api/beam/analyze", limited(s.handleAnalyze)).Methods(http.MethodPost)
	s.router.Handle("/api/beam/report.pdf", limited(s.handleReport)).Methods(http.MethodPost)
	s.router.Handle("/api/beam/summary.xlsx", limited(s.handleSummary)).Methods(http.MethodPost)
	s.router.Handle("/api/locales", limited(s.handleLocales)).Methods(http.MethodGet)
	s.router.Handle("/api/limits", limited(s.handleLimits)).Methods(http.MethodGet)
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests for up to ShutdownTimeout. Idle rate-limit buckets
// are swept while the server runs.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.limiter.Run(sweepCtx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
