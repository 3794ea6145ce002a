// Package app holds the running Code Lens server and its long-lived
// dependencies.
package app

import (
	"log/slog"

	"github.com/sevigo/code-lens/internal/config"
	"github.com/sevigo/code-lens/internal/core"
	"github.com/sevigo/code-lens/internal/llm"
	"github.com/sevigo/code-lens/internal/server"
)

// App holds the main application components.
type App struct {
	cfg     *config.Config
	server  *server.Server
	service core.ReviewService
	profile *llm.Profile
	logger  *slog.Logger
}

// NewApp assembles the application from its already constructed parts.
func NewApp(cfg *config.Config, srv *server.Server, service core.ReviewService, profile *llm.Profile, logger *slog.Logger) *App {
	return &App{
		cfg:     cfg,
		server:  srv,
		service: service,
		profile: profile,
		logger:  logger,
	}
}

// Service returns the review service shared by all requests.
func (a *App) Service() core.ReviewService {
	return a.service
}

// Start runs the HTTP server and blocks until it stops.
func (a *App) Start() error {
	a.logger.Info("starting Code Lens",
		"server_port", a.cfg.Server.Port,
		"provider", a.cfg.AI.LLMProvider,
		"model", a.cfg.AI.GeneratorModel,
		"profile", a.profile.Name,
		"line_numbers", a.cfg.AI.LineNumbers,
	)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.logger.Info("shutting down Code Lens services")

	if err := a.server.Stop(); err != nil {
		a.logger.Error("Code Lens stopped with errors", "error", err)
		return err
	}

	a.logger.Info("Code Lens stopped successfully")
	return nil
}
