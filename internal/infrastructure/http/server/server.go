// Package server provides the JSON API HTTP server
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/denizsemerci/egeli-betty/internal/infrastructure/config"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/http/handlers"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/http/middleware"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/monitoring"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/security"
	"github.com/denizsemerci/egeli-betty/internal/ports/inbound"
	"github.com/denizsemerci/egeli-betty/pkg/healthcheck"
)

// Server represents the HTTP server
type Server struct {
	config        *config.Config
	logger        *zap.Logger
	router        *chi.Mux
	server        *http.Server
	metrics       *monitoring.Metrics
	health        *healthcheck.HealthCheck
	tokens        *security.TokenService
	loginLimiter  *middleware.LoginRateLimiter
	recipeService inbound.RecipeService
	draftService  inbound.DraftService
	userService   inbound.UserService
	uploadService inbound.UploadService
}

// New creates a new HTTP server instance
func New(
	cfg *config.Config,
	logger *zap.Logger,
	metrics *monitoring.Metrics,
	health *healthcheck.HealthCheck,
	tokens *security.TokenService,
	recipeService inbound.RecipeService,
	draftService inbound.DraftService,
	userService inbound.UserService,
	uploadService inbound.UploadService,
) *Server {
	s := &Server{
		config:        cfg,
		logger:        logger,
		metrics:       metrics,
		health:        health,
		tokens:        tokens,
		recipeService: recipeService,
		draftService:  draftService,
		userService:   userService,
		uploadService: uploadService,
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return s
}

func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics(s.metrics))
	r.Use(middleware.Security())
	r.Use(middleware.CORS())
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.JSONOnly())

	recipeH := handlers.NewRecipeHandlers(s.recipeService, s.logger)
	authH := handlers.NewAuthHandlers(s.userService, s.logger)
	adminH := handlers.NewAdminHandlers(
		s.recipeService,
		s.draftService,
		s.uploadService,
		s.metrics,
		s.config.Upload.MaxFileSize,
		s.logger,
	)
	sitemapH := handlers.NewSitemapHandlers(s.recipeService, s.config.App.BaseURL, s.logger)

	if s.loginLimiter != nil {
		s.loginLimiter.Stop()
	}
	loginLimiter := middleware.NewLoginRateLimiter(s.config)
	s.loginLimiter = loginLimiter

	r.Get("/health", s.health.Handler())
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Get("/sitemap.xml", sitemapH.Sitemap)
	r.Get("/robots.txt", sitemapH.Robots)

	r.Route("/api/v1", func(r chi.Router) {
		// Public catalog
		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipeH.ListRecipes)
			r.Get("/{slug}", recipeH.GetRecipe)
			r.Get("/{slug}/related", recipeH.GetRelatedRecipes)
			r.Get("/{slug}/ingredients", recipeH.GetScaledIngredients)
		})

		// Session
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Middleware()).Post("/login", authH.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(s.tokens))
				r.Get("/profile", authH.GetProfile)
				r.Put("/profile", authH.UpdateProfile)
				r.Post("/change-password", authH.ChangePassword)
			})
		})

		// Panel
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Authenticate(s.tokens))

			r.Route("/recipes", func(r chi.Router) {
				r.Get("/", adminH.ListRecipes)
				r.Post("/", adminH.CreateRecipe)
				r.Get("/{id}", adminH.GetRecipe)
				r.Put("/{id}", adminH.UpdateRecipe)
				r.Delete("/{id}", adminH.DeleteRecipe)
			})

			r.Route("/drafts", func(r chi.Router) {
				r.Post("/", adminH.SaveDraft)
				r.Get("/", adminH.ListDrafts)
				r.Get("/{id}", adminH.GetDraft)
				r.Delete("/{id}", adminH.DeleteDraft)
				r.Post("/{id}/publish", adminH.PublishDraft)
			})

			r.Post("/uploads", adminH.UploadImage)
		})
	})

	return r
}

// Router exposes the handler tree for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting API server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	s.loginLimiter.Stop()
	return s.server.Shutdown(ctx)
}
