package app

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/code-lens/internal/config"
	"github.com/sevigo/code-lens/internal/llm"
	"github.com/sevigo/code-lens/internal/server"
	"github.com/sevigo/code-lens/internal/session"
	"github.com/sevigo/code-lens/mocks"
)

func TestApp_StartStop(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "0",
			AllowedOrigins: []string{"*"},
			RequestTimeout: time.Second,
			MaxCodeBytes:   1024,
			RateLimitRPS:   1,
			RateLimitBurst: 1,
		},
		AI: config.AIConfig{LLMProvider: config.ProviderGemini, GeneratorModel: "m"},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := mocks.NewMockReviewService(gomock.NewController(t))
	profiles, err := llm.NewProfileRegistry("")
	require.NoError(t, err)
	profile, err := profiles.Get(llm.DefaultProfile)
	require.NoError(t, err)

	a := NewApp(cfg, server.NewServer(cfg, svc, session.NewGuard(time.Second), logger), svc, profile, logger)
	assert.Equal(t, svc, a.Service())

	errCh := make(chan error, 1)
	go func() { errCh <- a.Start() }()

	// Give the listener a moment so Stop exercises a running server.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, a.Stop())

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
