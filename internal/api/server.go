// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

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

	"github.com/taibuivan/navaadmin/internal/core/category"
	"github.com/taibuivan/navaadmin/internal/core/chapter"
	"github.com/taibuivan/navaadmin/internal/core/content"
	"github.com/taibuivan/navaadmin/internal/core/creator"
	"github.com/taibuivan/navaadmin/internal/core/review"
	"github.com/taibuivan/navaadmin/internal/dashboard"
	"github.com/taibuivan/navaadmin/internal/platform/config"
	"github.com/taibuivan/navaadmin/internal/platform/constants"
	"github.com/taibuivan/navaadmin/internal/platform/middleware"
	"github.com/taibuivan/navaadmin/internal/support/ticket"
	"github.com/taibuivan/navaadmin/internal/users/narrator"
	"github.com/taibuivan/navaadmin/internal/users/profile"
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

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Dashboard       *dashboard.Handler
	Categories      *category.Handler
	MusicCategories *category.Handler
	Creators        *creator.Handler
	Profiles        *profile.Handler
	Content         *content.Handler
	Chapters        *chapter.Handler
	Tickets         *ticket.Handler
	Reviews         *review.Handler
	Narrators       *narrator.Handler
}

// Guards holds what the authentication middleware needs.
type Guards struct {
	Verifier middleware.TokenVerifier
	Keys     middleware.KeyChecker
	Roles    middleware.RoleResolver
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, guards Guards, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.Timeout(constants.GlobalRequestTimeout, constants.UploadRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Authenticate(guards.Verifier, guards.Keys))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Admin API
	// Every route below requires an enabled admin.
	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.RequireAdmin(guards.Roles))

		api.Route("/dashboard", h.Dashboard.RegisterRoutes)
		api.Route("/categories", h.Categories.RegisterRoutes)
		api.Route("/music-categories", h.MusicCategories.RegisterRoutes)
		api.Route("/creators", h.Creators.RegisterRoutes)
		api.Route("/users", h.Profiles.RegisterRoutes)

		api.Route("/audiobooks", func(audiobooks chi.Router) {
			h.Content.RegisterRoutes(audiobooks)
			audiobooks.Route("/{id}/chapters", h.Chapters.RegisterAudiobookRoutes)
		})
		api.Route("/chapters", h.Chapters.RegisterRoutes)

		api.Route("/tickets", h.Tickets.RegisterRoutes)
		api.Route("/reviews", h.Reviews.RegisterRoutes)
		api.Route("/narrator-requests", h.Narrators.RegisterRoutes)
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

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
