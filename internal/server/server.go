package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"studypal/internal/auth"
	"studypal/internal/config"
	"studypal/internal/llm"
	"studypal/internal/logger"
	"studypal/internal/rank"
	"studypal/internal/search"
	"studypal/internal/store"
)

// Tutor generates AI tutoring responses.
type Tutor interface {
	Explain(ctx context.Context, query, difficulty string) (string, error)
	Chat(ctx context.Context, message, topic string, history []llm.Message) (string, error)
	StudyNotes(ctx context.Context, topic, subject, noteType string) (string, error)
}

// VideoDetailer fetches metadata for a single video.
type VideoDetailer interface {
	Details(ctx context.Context, videoID string) (*search.VideoDetails, error)
}

// Deps bundles the services the server exposes over HTTP. Tutor,
// Documents, Videos and VideoDetails may be nil when the matching API
// keys are not configured; their endpoints then return 503.
type Deps struct {
	Store        *store.Store
	Documents    search.Provider
	Videos       search.Provider
	VideoDetails VideoDetailer
	Tutor        Tutor
	Verifier     *auth.Verifier
}

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	deps       Deps
	reranker   *rank.Reranker
	config     config.Server
	searchCfg  config.Search
}

// New creates a new HTTP server instance
func New(deps Deps, cfg config.Server, searchCfg config.Search) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		deps:      deps,
		reranker:  rank.New(),
		config:    cfg,
		searchCfg: searchCfg,
	}

	// Setup middleware
	s.setupMiddleware()

	// Setup routes
	s.setupRoutes()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// setupMiddleware configures middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.router.Use(securityHeaders)
}

// setupRoutes configures routes for the server
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.Get("/health", s.handleHealth)

	// Status endpoint
	s.router.Get("/api/status", s.handleStatus)

	// Authenticated API routes
	s.router.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(s.deps.Verifier, s.handleAuthError))

		// Reranking and recommendation API
		r.Post("/rerank", s.handleRerank)
		r.Post("/recommendations", s.handleRecommendations)
		r.Post("/quality", s.handleQuality)

		// Search API
		r.Route("/search", func(r chi.Router) {
			r.Post("/documents", s.handleSearchDocuments)
			r.Post("/videos", s.handleSearchVideos)
		})
		r.Get("/videos/{id}/details", s.handleVideoDetails)

		// AI tutoring API
		r.Route("/ai", func(r chi.Router) {
			r.Post("/explain", s.handleExplain)
			r.Post("/chat", s.handleChat)
			r.Post("/notes", s.handleStudyNotes)
		})

		// Schedules API
		r.Route("/schedules", func(r chi.Router) {
			r.Get("/upcoming", s.handleUpcomingTasks)
			r.Get("/stats", s.handleScheduleStats)
			r.Get("/", s.handleListSchedules)
			r.Post("/", s.handleCreateSchedule)
			r.Put("/{id}", s.handleUpdateSchedule)
			r.Delete("/{id}", s.handleDeleteSchedule)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	logger.Info("Starting HTTP server",
		"addr", s.httpServer.Addr,
		"read_timeout", s.config.ReadTimeout,
		"write_timeout", s.config.WriteTimeout,
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down HTTP server gracefully...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("HTTP server stopped")
	return nil
}

// Router returns the chi router instance (useful for testing)
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "DENY")

		// Referrer policy
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}
