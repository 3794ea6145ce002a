package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/sevigo/code-lens/internal/core"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// contentGenerator is the part of the genai client the generator needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiOptions configures a Gemini generator.
type GeminiOptions struct {
	APIKey            string
	Model             string
	SystemInstruction string
	Temperature       float32
	MaxOutputTokens   int32
}

type geminiGenerator struct {
	models contentGenerator
	model  string
	config *genai.GenerateContentConfig
}

// NewGeminiGenerator creates a generator backed by the Gemini API. The system
// instruction is bound once here and sent with every request.
func NewGeminiGenerator(ctx context.Context, opts GeminiOptions) (core.Generator, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set in environment for gemini provider")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return newGeminiGenerator(client.Models, opts), nil
}

func newGeminiGenerator(models contentGenerator, opts GeminiOptions) *geminiGenerator {
	model := opts.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(opts.Temperature),
		MaxOutputTokens: opts.MaxOutputTokens,
	}
	if opts.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(opts.SystemInstruction, genai.RoleUser)
	}
	return &geminiGenerator{models: models, model: model, config: cfg}
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config)
	if err != nil {
		return "", fmt.Errorf("%w: gemini generate content: %w", core.ErrTransport, err)
	}
	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", core.ErrEmptyResponse
	}
	return text, nil
}

func (g *geminiGenerator) Name() string  { return "gemini" }
func (g *geminiGenerator) Model() string { return g.model }

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range c.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}
