package wire

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/wire"

	"github.com/sevigo/code-lens/internal/app"
	"github.com/sevigo/code-lens/internal/config"
	"github.com/sevigo/code-lens/internal/core"
	"github.com/sevigo/code-lens/internal/llm"
	"github.com/sevigo/code-lens/internal/logger"
	"github.com/sevigo/code-lens/internal/server"
	"github.com/sevigo/code-lens/internal/session"
)

// guardSlack keeps a session slot alive a little past the request timeout.
const guardSlack = 15

// ReviewSet builds a review service from a loaded config and logger.
var ReviewSet = wire.NewSet(
	provideProfileRegistry,
	provideProfile,
	provideGenerator,
	provideReviewService,
)

var AppSet = wire.NewSet(
	config.LoadConfig,
	provideLoggerConfig,
	provideLogWriter,
	provideSlogLogger,
	ReviewSet,
	provideGuard,
	server.NewServer,
	app.NewApp,
)

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

func provideLogWriter(cfg logger.Config) (io.Writer, func(), error) {
	return logger.OpenOutput(cfg)
}

func provideSlogLogger(loggerConfig logger.Config, writer io.Writer) *slog.Logger {
	return logger.NewLogger(loggerConfig, writer)
}

func provideProfileRegistry(cfg *config.Config) (*llm.ProfileRegistry, error) {
	return llm.NewProfileRegistry(cfg.AI.ProfilesDir)
}

func provideProfile(cfg *config.Config, registry *llm.ProfileRegistry) (*llm.Profile, error) {
	return registry.Get(cfg.AI.Profile)
}

func provideGenerator(ctx context.Context, cfg *config.Config, profile *llm.Profile, logger *slog.Logger) (core.Generator, error) {
	switch cfg.AI.LLMProvider {
	case config.ProviderGemini:
		return llm.NewGeminiGenerator(ctx, llm.GeminiOptions{
			APIKey:            cfg.AI.GeminiAPIKey,
			Model:             cfg.AI.GeneratorModel,
			SystemInstruction: profile.SystemInstruction,
			Temperature:       cfg.AI.Temperature,
			MaxOutputTokens:   cfg.AI.MaxOutputTokens,
		})
	case config.ProviderOllama:
		return llm.NewOllamaGenerator(llm.OllamaOptions{
			Host:              cfg.AI.OllamaHost,
			Model:             cfg.AI.GeneratorModel,
			SystemInstruction: profile.SystemInstruction,
			Timeout:           cfg.Server.RequestTimeout,
		}, logger)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.AI.LLMProvider)
	}
}

func provideReviewService(cfg *config.Config, gen core.Generator, profile *llm.Profile, logger *slog.Logger) core.ReviewService {
	return llm.NewReviewService(gen, profile, llm.ReviewOptions{LineNumbers: cfg.AI.LineNumbers}, logger)
}

func provideGuard(cfg *config.Config) *session.Guard {
	return session.NewGuard(cfg.Server.RequestTimeout + guardSlack*time.Second)
}
