// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and the
per-kind catalogue handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tamsinleach/dramatis/internal/catalogue"
	"github.com/tamsinleach/dramatis/internal/graph"
	"github.com/tamsinleach/dramatis/internal/platform/config"
	"github.com/tamsinleach/dramatis/internal/platform/constants"
	"github.com/tamsinleach/dramatis/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Probes groups the infrastructure health endpoints.
type Probes struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// mounts every catalogue kind under its plural path. The entity surface is
// driven entirely by [catalogue.Definitions]; adding a kind there adds its
// routes here.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, counter middleware.Counter, store graph.Store, probes Probes) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, counter))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", probes.Liveness)
	r.Get("/ready", probes.Readiness)

	// # Application API
	// One uniform handler set per entity kind, mounted under its plural path.
	r.Route("/api/v1", func(api chi.Router) {
		for _, def := range catalogue.Definitions() {
			handler := catalogue.NewHandler(catalogue.NewService(def, store))
			api.Mount("/"+def.Plural, handler.Routes())
		}
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
