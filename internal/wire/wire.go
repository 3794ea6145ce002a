//go:build wireinject
// +build wireinject

package wire

import (
	"context"
	"log/slog"

	"github.com/google/wire"

	"github.com/sevigo/code-lens/internal/app"
	"github.com/sevigo/code-lens/internal/config"
	"github.com/sevigo/code-lens/internal/core"
)

// InitializeApp creates and wires all server dependencies.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(AppSet)
	return &app.App{}, nil, nil
}

// InitializeReviewService builds an in-process review service for the CLI.
func InitializeReviewService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (core.ReviewService, error) {
	wire.Build(ReviewSet)
	return nil, nil
}
