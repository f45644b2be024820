// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the composition root: New builds every dependency from the
// config and setupRoutes wires handlers and middleware to URL patterns.
//
// DEPENDENCY INJECTION FLOW:
//
//	config.Config → Server.New() creates:
//	  catalog.Catalog (YAML fixture)
//	  sqlite.DB → session.Manager → SessionService ─┐
//	  CatalogService, GeneratorService ─────────────┴→ handlers
//	  auth.TokenService → auth.Sessions middleware
//	  metrics.Metrics → metrics middleware, /metrics
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/prompt-library/internal/auth"
	"github.com/sakif/prompt-library/internal/catalog"
	"github.com/sakif/prompt-library/internal/config"
	"github.com/sakif/prompt-library/internal/handler"
	"github.com/sakif/prompt-library/internal/metrics"
	"github.com/sakif/prompt-library/internal/middleware"
	"github.com/sakif/prompt-library/internal/model"
	sqliteRepo "github.com/sakif/prompt-library/internal/repository/sqlite"
	"github.com/sakif/prompt-library/internal/service"
	"github.com/sakif/prompt-library/internal/session"
)

// Server represents the HTTP server and all its dependencies.
//
// The Server owns the database connection and closes it on shutdown.
type Server struct {
	router   *chi.Mux
	config   config.Config
	logger   *slog.Logger
	db       *sqliteRepo.DB
	catalog  *catalog.Catalog
	sessions *session.Manager
	tokens   *auth.TokenService
	metrics  *metrics.Metrics
}

// New creates a Server from cfg.
//
// IMPORT ALIAS:
// repository/sqlite is imported as `sqliteRepo` so it does not read like the
// sqlite driver package.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	for _, issue := range cat.Lint() {
		logger.Warn("catalog issue",
			slog.String("promptID", issue.PromptID),
			slog.String("issue", issue.Message),
		)
	}

	secret := cfg.SessionSecret
	if secret == "" {
		secret, err = auth.RandomSecret()
		if err != nil {
			return nil, err
		}
		logger.Warn("SESSION_SECRET not set, using a random per-process secret; session cookies will not survive a restart")
	}
	tokens, err := auth.NewTokenService(secret, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	users := func(id string) (model.User, bool) {
		u := cat.MockUser()
		return u, u.ID == id
	}

	// A session in use is stamped at least every tenth of the ttl, so it is
	// swept no earlier than 90% of the ttl after its last request.
	sessions := session.NewManager(db, users, logger)
	sessions.SetTouchInterval(cfg.SessionTTL / 10)

	s := &Server{
		router:   chi.NewRouter(),
		config:   cfg,
		logger:   logger,
		db:       db,
		catalog:  cat,
		sessions: sessions,
		tokens:   tokens,
		metrics:  metrics.New(),
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler returns the fully wired router. Tests drive it with httptest.
func (s *Server) Handler() http.Handler { return s.router }

// Close releases the database.
func (s *Server) Close() error { return s.db.Close() }

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET    /                                → library page (HTML)
// GET    /metrics                         → Prometheus (no session)
// GET    /api/prompts                     → search
// GET    /api/prompts/featured            → top prompts
// GET    /api/prompts/{id}                → prompt detail
// POST   /api/prompts/{id}/fill           → template substitution
// GET    /api/categories                  → categories
// GET    /api/categories/{id}             → category + prompts
// GET    /api/models                      → AI model names
// POST   /api/generate                    → prompt generator
// GET    /api/generate/options            → generator models and tones
// GET    /api/session                     → session snapshot
// POST   /api/session/login               → mock login
// POST   /api/session/logout              → logout
// GET    /api/session/favorites           → favorite prompts
// POST   /api/session/favorites/{id}      → toggle favorite
// GET    /api/session/collections         → user's collections
// POST   /api/session/dark-mode           → toggle dark mode
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID: assigns a unique ID to each request (for tracing)
// 2. RealIP: extracts real client IP from proxy headers
// 3. Logger: logs each request with timing info
// 4. Metrics: counts requests by route pattern
// 5. Recoverer: catches panics and returns 500 instead of crashing
// 6. Sessions (page and /api only): resolves or opens the browser session
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics(s.metrics))
	s.router.Use(chimiddleware.Recoverer)

	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	catalogService := service.NewCatalogService(s.catalog, s.metrics, s.logger)
	sessionService := service.NewSessionService(s.sessions, s.catalog, s.metrics, s.logger)
	generatorService := service.NewGeneratorService(s.metrics, s.logger)
	validator := handler.NewValidator()

	libraryHandler, err := handler.NewLibraryHandler(catalogService, sessionService, s.logger)
	if err != nil {
		return fmt.Errorf("creating library handler: %w", err)
	}
	catalogHandler := handler.NewCatalogHandler(catalogService, sessionService, validator, s.logger)
	sessionHandler := handler.NewSessionHandler(sessionService, validator, s.logger)
	generatorHandler := handler.NewGeneratorHandler(generatorService, validator, s.logger)

	cookies := auth.CookieOptions{Secure: s.config.CookieSecure}

	s.router.Group(func(r chi.Router) {
		r.Use(auth.Sessions(s.tokens, s.sessions, cookies, s.logger))

		r.Get("/", libraryHandler.HandleLibrary)

		r.Route("/api", func(r chi.Router) {
			r.Get("/prompts", catalogHandler.HandleList)
			r.Get("/prompts/featured", catalogHandler.HandleFeatured)
			r.Get("/prompts/{id}", catalogHandler.HandleGet)
			r.Post("/prompts/{id}/fill", catalogHandler.HandleFill)

			r.Get("/categories", catalogHandler.HandleCategories)
			r.Get("/categories/{id}", catalogHandler.HandleCategory)
			r.Get("/models", catalogHandler.HandleModels)

			r.Post("/generate", generatorHandler.HandleGenerate)
			r.Get("/generate/options", generatorHandler.HandleOptions)

			r.Route("/session", func(r chi.Router) {
				r.Get("/", sessionHandler.HandleGet)
				r.Post("/login", sessionHandler.HandleLogin)
				r.Post("/logout", sessionHandler.HandleLogout)
				r.Get("/favorites", sessionHandler.HandleFavorites)
				r.Post("/favorites/{id}", sessionHandler.HandleToggleFavorite)
				r.Get("/collections", sessionHandler.HandleCollections)
				r.Post("/dark-mode", sessionHandler.HandleToggleDarkMode)
			})
		})
	})

	return nil
}

// Start starts the HTTP server and the idle-session sweeper, and handles
// graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Stop the sweeper
// 4. Close the database connection (flushes WAL, releases file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go s.sessions.RunSweeper(sweepCtx, s.config.SweepInterval, s.config.SessionTTL)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
			slog.Int("prompts", len(s.catalog.Prompts())),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
