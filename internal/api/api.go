// Package api implements the plateforge HTTP API.
//
// The server exposes plan generation and rendering over JSON: clients
// post a plate document and receive either rendered artifact bytes or
// a plan summary. A design library can be attached to serve stored
// plates. All errors are returned as JSON with machine-readable codes
// from the errors package.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/plateforge/plateforge/pkg/errors"
	"github.com/plateforge/plateforge/pkg/library"
	"github.com/plateforge/plateforge/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// maxBodyBytes caps plate document uploads.
	maxBodyBytes = 1 << 20

	// shutdownTimeout bounds graceful shutdown on SIGINT.
	shutdownTimeout = 10 * time.Second

	// readHeaderTimeout guards against slow-header clients.
	readHeaderTimeout = 10 * time.Second
)

// WarningsHeader carries density-reduction warnings on render
// responses, one header value per warning.
const WarningsHeader = "X-Plateforge-Warnings"

// =============================================================================
// Server
// =============================================================================

// Config collects the server's dependencies. Zero values select
// defaults: an uncached runner and the standard logger. A nil Store
// disables the library endpoints.
type Config struct {
	Runner *pipeline.Runner
	Store  library.Store
	Logger *log.Logger
}

// Server is the plateforge HTTP API. It implements http.Handler.
type Server struct {
	runner *pipeline.Runner
	store  library.Store
	logger *log.Logger
	router chi.Router
}

// NewServer creates a server with its routes registered.
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}

	s := &Server{
		runner: cfg.Runner,
		store:  cfg.Store,
		logger: cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/patterns", s.handlePatterns)
		r.Post("/plates/render", s.handleRender)
		r.Post("/plates/inspect", s.handleInspect)
		r.Get("/library", s.handleLibraryList)
		r.Get("/library/{name}", s.handleLibraryGet)
	})
	s.router = r

	return s
}

// ServeHTTP dispatches to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start serves on addr until ctx is cancelled, then shuts down
// gracefully, draining in-flight requests.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("api listening", "addr", addr)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(errors.ErrCodeInternal, err, "serve on %s", addr)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down api")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "shutdown")
		}
		return nil
	}
}
