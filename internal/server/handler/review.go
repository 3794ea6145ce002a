package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/sevigo/code-lens/internal/core"
	"github.com/sevigo/code-lens/internal/display"
	"github.com/sevigo/code-lens/internal/markdown"
	"github.com/sevigo/code-lens/internal/session"
)

const (
	// SessionHeader carries the caller's session ID.
	SessionHeader = "X-Session-ID"
	// PrecheckHeader is set on markdown responses produced without a model call.
	PrecheckHeader = "X-Review-Precheck"
)

type reviewRequest struct {
	Code string `json:"code"`
}

// ReviewResponse is the body of POST /api/v1/review.
type ReviewResponse struct {
	Markdown   string          `json:"markdown"`
	HTML       string          `json:"html"`
	Nodes      []markdown.Node `json:"nodes"`
	Precheck   bool            `json:"precheck"`
	Provider   string          `json:"provider"`
	Model      string          `json:"model"`
	DurationMS int64           `json:"duration_ms"`
}

// ReviewHandler runs code reviews for HTTP callers.
type ReviewHandler struct {
	service  core.ReviewService
	guard    *session.Guard
	maxBytes int64
	logger   *slog.Logger
}

// NewReviewHandler creates a review handler. Request bodies larger than
// maxBytes are rejected.
func NewReviewHandler(service core.ReviewService, guard *session.Guard, maxBytes int64, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		guard:    guard,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// HandleMarkdown returns the review as text/markdown.
func (h *ReviewHandler) HandleMarkdown(w http.ResponseWriter, r *http.Request) {
	resp, ok := h.review(w, r)
	if !ok {
		return
	}
	if resp.Precheck {
		w.Header().Set(PrecheckHeader, "true")
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(resp.MarkdownText))
}

// HandleJSON returns the review together with its parsed and rendered forms.
func (h *ReviewHandler) HandleJSON(w http.ResponseWriter, r *http.Request) {
	resp, ok := h.review(w, r)
	if !ok {
		return
	}
	nodes := markdown.Parse(resp.MarkdownText)
	if nodes == nil {
		nodes = []markdown.Node{}
	}
	html, err := display.HTML(nodes)
	if err != nil {
		h.logger.Error("failed to render review", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render review")
		return
	}
	writeJSON(w, http.StatusOK, ReviewResponse{
		Markdown:   resp.MarkdownText,
		HTML:       html,
		Nodes:      nodes,
		Precheck:   resp.Precheck,
		Provider:   resp.Provider,
		Model:      resp.Model,
		DurationMS: resp.Duration.Milliseconds(),
	})
}

func (h *ReviewHandler) review(w http.ResponseWriter, r *http.Request) (*core.ReviewResponse, bool) {
	var req reviewRequest
	if err := decodeBody(w, r, h.maxBytes, &req); err != nil {
		writeBodyError(w, h.logger, err, h.maxBytes)
		return nil, false
	}

	key := clientKey(r)
	release, err := h.guard.Acquire(key)
	if err != nil {
		h.logger.Warn("rejecting concurrent review", "client", key, "request_id", middleware.GetReqID(r.Context()))
		writeError(w, http.StatusConflict, err.Error())
		return nil, false
	}
	defer release()

	resp, err := h.service.Review(r.Context(), core.ReviewRequest{SourceText: req.Code})
	if err != nil {
		h.logger.Error("review failed", "client", key, "request_id", middleware.GetReqID(r.Context()), "error", err)
		if errors.Is(r.Context().Err(), context.DeadlineExceeded) {
			// middleware.Timeout answers 504 once the handler returns.
			return nil, false
		}
		status := http.StatusInternalServerError
		msg := "internal error"
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			status = http.StatusGatewayTimeout
			msg = "the review timed out"
		case core.IsTransportFailure(err):
			status = http.StatusBadGateway
			msg = "the review service is unavailable, please try again"
		}
		writeError(w, status, msg)
		return nil, false
	}
	return resp, true
}
