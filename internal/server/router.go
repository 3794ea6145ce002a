package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/sevigo/code-lens/internal/config"
	"github.com/sevigo/code-lens/internal/core"
	"github.com/sevigo/code-lens/internal/server/handler"
	"github.com/sevigo/code-lens/internal/session"
)

// NewRouter creates and configures a new HTTP router with middleware and API routes.
func NewRouter(cfg *config.Config, service core.ReviewService, guard *session.Guard, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Configure middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", handler.SessionHeader},
		ExposedHeaders: []string{handler.PrecheckHeader, "Retry-After"},
		MaxAge:         300,
	}).Handler)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/", handler.Index)

	reviewHandler := handler.NewReviewHandler(service, guard, cfg.Server.MaxCodeBytes, logger)
	renderHandler := handler.NewRenderHandler(cfg.Server.MaxCodeBytes, logger)
	limiter := newRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, logger)

	r.With(limiter.Handler).Post("/ai/get-review", reviewHandler.HandleMarkdown)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.With(limiter.Handler).Post("/review", reviewHandler.HandleJSON)
		r.Post("/render", renderHandler.Handle)
	})

	return r
}
