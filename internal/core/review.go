// Package core defines the essential interfaces and data structures shared by
// the review service, its transports and its display layers.
package core

import (
	"context"
	"time"
)

// ReviewRequest carries the raw source text a user submitted for review.
type ReviewRequest struct {
	SourceText string
}

// ReviewResponse is the text returned for a review request. MarkdownText is
// opaque to the service and is passed to the renderer as-is.
type ReviewResponse struct {
	MarkdownText string
	// Precheck is set when the text is a fixed precondition message produced
	// locally, without calling the model.
	Precheck bool
	Provider string
	Model    string
	Duration time.Duration
}

// ReviewService turns source code into a Markdown review.
//
//go:generate mockgen -destination=../../mocks/mock_review_service.go -package=mocks . ReviewService
type ReviewService interface {
	// Review performs at most one outbound model call. Transport failures are
	// reported as errors wrapping ErrTransport; they are never replaced with
	// placeholder content.
	Review(ctx context.Context, req ReviewRequest) (*ReviewResponse, error)
}

// Generator is a long-lived client for an external text-generation model.
// The system instruction and generation parameters are bound when the
// generator is constructed, so Generate only carries the per-request prompt.
//
//go:generate mockgen -destination=../../mocks/mock_generator.go -package=mocks . Generator
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
	Model() string
}
