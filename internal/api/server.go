// Package api provides the genomap HTTP API: a thin JSON wrapper around the
// rendering pipeline for deployments that serve maps instead of writing
// files.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/genomap/genomap/pkg/pipeline"
)

// Server hosts the API over a shared pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	addr   string
}

// NewServer creates a server. The runner owns the cache; the server never
// touches it directly.
func NewServer(addr string, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		logger: logger,
		addr:   addr,
	}
}

// Routes builds the router with middleware and all endpoints.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Get("/enzymes", s.handleEnzymes)
	r.Post("/render", s.handleRender)

	return r
}

// Serve runs the server until the context is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
