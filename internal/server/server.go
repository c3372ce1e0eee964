// Package server provides the HTTP dashboard and API for Shirabe.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/shirabe/internal/charts"
	"github.com/hyperjump/shirabe/internal/config"
	"github.com/hyperjump/shirabe/internal/dataset"
	"go.uber.org/zap"
)

// Server is the HTTP server for the Shirabe dashboard and API.
type Server struct {
	store  *dataset.Store
	charts *charts.Builder
	config *config.Config
	logger *zap.Logger
	server *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	store *dataset.Store,
	builder *charts.Builder,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		store:  store,
		charts: builder,
		config: cfg,
		logger: logger,
	}
}

// Handler builds the router. Exposed so tests can drive the full HTTP
// surface without binding a port.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Get("/", s.handleDashboard)
	r.Get("/charts", s.handleCharts)
	r.Get("/api/v1/summary", s.handleSummary)
	r.Get("/api/v1/papers", s.handlePapers)
	r.Get("/api/v1/years", s.handleYears)
	r.Get("/api/v1/journals", s.handleJournals)
	r.Get("/api/v1/export", s.handleExport)
	r.Get("/api/v1/status", s.handleStatus)
	r.Post("/api/v1/reload", s.handleReload)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
