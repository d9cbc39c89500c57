// Package api provides the HTTP API server and handlers for the wardrobe application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/wardrobeapp/wardrobe-server/internal/ratelimit"
	"github.com/wardrobeapp/wardrobe-server/internal/service"
)

// Per-user request budget. Generous for a personal app; the limiter
// mainly guards against runaway clients.
const (
	requestsPerSecond = 25
	requestBurst      = 50
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	auth              Authenticator
	garmentService    *service.GarmentService
	tagService        *service.TagService
	collectionService *service.CollectionService
	limiter           *ratelimit.KeyedRateLimiter
	router            *chi.Mux
	logger            *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(auth Authenticator, garmentService *service.GarmentService, tagService *service.TagService, collectionService *service.CollectionService, logger *slog.Logger) *Server {
	s := &Server{
		auth:              auth,
		garmentService:    garmentService,
		tagService:        tagService,
		collectionService: collectionService,
		limiter:           ratelimit.New(requestsPerSecond, requestBurst),
		router:            chi.NewRouter(),
		logger:            logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-owned resources.
func (s *Server) Close() {
	s.limiter.Stop()
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Garments (require auth).
		r.Route("/garments", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Use(s.rateLimit)
			r.Post("/", s.handleCreateGarment)
			r.Get("/", s.handleListGarments)
			r.Get("/{id}", s.handleGetGarment)
			r.Patch("/{id}", s.handleUpdateGarment)
			r.Delete("/{id}", s.handleDeleteGarment)
			r.Patch("/{id}/status", s.handleUpdateGarmentStatus)
			r.Put("/{id}/tags", s.handleSetGarmentTags)
		})

		// Tags (require auth).
		r.Route("/tags", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Use(s.rateLimit)
			r.Post("/", s.handleCreateTag)
			r.Get("/", s.handleListTags)
			r.Get("/{id}", s.handleGetTag)
			r.Patch("/{id}", s.handleUpdateTag)
			r.Delete("/{id}", s.handleDeleteTag)
		})

		// Collections (require auth).
		r.Route("/collections", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Use(s.rateLimit)
			r.Post("/", s.handleCreateCollection)
			r.Get("/", s.handleListCollections)
			r.Get("/{id}", s.handleGetCollection)
			r.Patch("/{id}", s.handleUpdateCollection)
			r.Delete("/{id}", s.handleDeleteCollection)
			r.Get("/{id}/garments", s.handleGetCollectionGarments)
			r.Post("/{id}/garments", s.handleAddCollectionGarments)
			r.Delete("/{id}/garments/{garmentID}", s.handleRemoveCollectionGarment)
			r.Put("/{id}/rules", s.handleSetCollectionRules)
			r.Post("/{id}/refresh", s.handleRefreshCollection)
		})
	})
}
