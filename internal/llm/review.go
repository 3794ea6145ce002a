// Package llm sends code to a text-generation model for review. It owns the
// review profiles, line numbering and the provider-specific generators.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sevigo/code-lens/internal/core"
)

// ReviewOptions controls how code is prepared before it is sent.
type ReviewOptions struct {
	// LineNumbers numbers unnumbered input before sending. When false,
	// unnumbered input is rejected with a precheck message.
	LineNumbers bool
}

type reviewService struct {
	generator core.Generator
	profile   *Profile
	opts      ReviewOptions
	logger    *slog.Logger
	now       func() time.Time
}

// NewReviewService creates the review service. The generator must already be
// bound to the profile's system instruction.
func NewReviewService(gen core.Generator, profile *Profile, opts ReviewOptions, logger *slog.Logger) core.ReviewService {
	return &reviewService{
		generator: gen,
		profile:   profile,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// Review sends the code to the model once and returns the text unchanged.
func (s *reviewService) Review(ctx context.Context, req core.ReviewRequest) (*core.ReviewResponse, error) {
	code := req.SourceText
	if strings.TrimSpace(code) == "" {
		s.logger.Info("rejecting review request", "reason", "empty input")
		return s.precheck(core.NoCodeMessage), nil
	}

	if !HasLineNumbers(code) {
		if !s.opts.LineNumbers {
			s.logger.Info("rejecting review request", "reason", "missing line numbers")
			return s.precheck(core.MissingLineNumbersMessage), nil
		}
		code = NumberLines(code)
	}

	prompt, err := s.profile.RenderRequest(code)
	if err != nil {
		return nil, err
	}

	s.logger.Info("requesting review",
		"provider", s.generator.Name(),
		"model", s.generator.Model(),
		"profile", s.profile.Name,
		"code_bytes", len(req.SourceText),
	)

	start := s.now()
	text, err := s.generator.Generate(ctx, prompt)
	elapsed := s.now().Sub(start)
	if err != nil {
		s.logger.Error("review generation failed", "provider", s.generator.Name(), "duration", elapsed, "error", err)
		return nil, fmt.Errorf("failed to generate review: %w", err)
	}

	s.logger.Info("review generated", "provider", s.generator.Name(), "bytes", len(text), "duration", elapsed)
	s.logger.Debug("raw model response", "text", text)

	return &core.ReviewResponse{
		MarkdownText: text,
		Provider:     s.generator.Name(),
		Model:        s.generator.Model(),
		Duration:     elapsed,
	}, nil
}

func (s *reviewService) precheck(msg string) *core.ReviewResponse {
	return &core.ReviewResponse{
		MarkdownText: msg,
		Precheck:     true,
		Provider:     s.generator.Name(),
		Model:        s.generator.Model(),
	}
}
