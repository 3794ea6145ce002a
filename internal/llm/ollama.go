package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sevigo/goframe/llms/ollama"

	"github.com/sevigo/code-lens/internal/core"
)

const (
	DefaultOllamaModel = "gemma3:latest"
	DefaultOllamaHost  = "http://localhost:11434"
)

// OllamaOptions configures an Ollama generator.
type OllamaOptions struct {
	Host              string
	Model             string
	SystemInstruction string
	Timeout           time.Duration
}

type ollamaGenerator struct {
	call   func(ctx context.Context, prompt string) (string, error)
	model  string
	system string
}

// NewOllamaGenerator creates a generator backed by a local Ollama server.
func NewOllamaGenerator(opts OllamaOptions, logger *slog.Logger) (core.Generator, error) {
	model := opts.Model
	if model == "" {
		model = DefaultOllamaModel
	}
	host := opts.Host
	if host == "" {
		host = DefaultOllamaHost
	}
	llm, err := ollama.New(
		ollama.WithServerURL(host),
		ollama.WithModel(model),
		ollama.WithHTTPClient(newOllamaHTTPClient(opts.Timeout)),
		ollama.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama model: %w", err)
	}
	return &ollamaGenerator{
		call: func(ctx context.Context, prompt string) (string, error) {
			return llm.Call(ctx, prompt)
		},
		model:  model,
		system: opts.SystemInstruction,
	}, nil
}

func newOllamaHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		Timeout: timeout,
	}
}

// Generate prepends the system instruction to the prompt, since the
// single-prompt call has no separate system slot.
func (g *ollamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.system != "" {
		prompt = g.system + "\n\n" + prompt
	}
	resp, err := g.call(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: ollama call: %w", core.ErrTransport, err)
	}
	if strings.TrimSpace(resp) == "" {
		return "", core.ErrEmptyResponse
	}
	return resp, nil
}

func (g *ollamaGenerator) Name() string  { return "ollama" }
func (g *ollamaGenerator) Model() string { return g.model }
