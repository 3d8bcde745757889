// Package api provides the HTTP API server and handlers for the Tsundoku application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tsundoku-app/tsundoku-server/internal/config"
	"github.com/tsundoku-app/tsundoku-server/internal/query"
	"github.com/tsundoku-app/tsundoku-server/internal/search"
	"github.com/tsundoku-app/tsundoku-server/internal/sse"
	"github.com/tsundoku-app/tsundoku-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	services   *Services
	engine     *query.Engine
	search     *search.Index
	sseHandler *sse.Handler
	validator  *validation.Validator
	router     *chi.Mux
	api        huma.API
	logger     *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, services *Services, engine *query.Engine, searchIndex *search.Index, sseHandler *sse.Handler, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		services:   services,
		engine:     engine,
		search:     searchIndex,
		sseHandler: sseHandler,
		validator:  validation.New(),
		router:     router,
		logger:     logger,
	}

	s.setupMiddleware(cfg)

	humaConfig := huma.DefaultConfig("Tsundoku API", "1.0.0")
	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(cfg *config.Config) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	origins := cfg.Server.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Plain chi routes: health probe and the SSE stream. Everything else
	// goes through huma so it lands in the OpenAPI document.
	s.router.Get("/health", s.handleHealthCheck)
	s.router.Get("/api/v1/events", s.sseHandler.ServeHTTP)

	s.registerCatalogRoutes()
	s.registerBookRoutes()
	s.registerViewRoutes()
	s.registerShelfRoutes()
	s.registerMemoRoutes()
	s.registerKnowledgeRoutes()
	s.registerSearchRoutes()
	s.registerBackupRoutes()
	s.registerSessionRoutes()
}
