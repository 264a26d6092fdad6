// Package server exposes workbook tables over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ukaji3/xltables-go/internal/logging"
	"github.com/ukaji3/xltables-go/pkg/xltables"
)

const shutdownTimeout = 10 * time.Second

// Server represents the HTTP API
type Server struct {
	router *chi.Mux
	opts   xltables.Options
	logger *logging.Logger
}

// New creates a server answering from the workbook described by opts.
func New(opts xltables.Options, logger *logging.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		opts:   opts,
		logger: logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures HTTP middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/list_tables", s.handleListTables)
	s.router.Get("/get_table_details", s.handleTableDetails)
	s.router.Get("/row_sum", s.handleRowSum)
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening on %s, workbook source %s", addr, s.opts.Source)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
