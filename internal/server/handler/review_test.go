package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/code-lens/internal/core"
	"github.com/sevigo/code-lens/internal/session"
	"github.com/sevigo/code-lens/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newReviewRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/ai/get-review", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SessionHeader, "session-1")
	return req
}

func TestReviewHandler_HandleMarkdown(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		mockSetup    func(svc *mocks.MockReviewService)
		wantStatus   int
		wantBody     string
		wantPrecheck bool
	}{
		{
			name: "returns markdown",
			body: `{"code":"x := 1"}`,
			mockSetup: func(svc *mocks.MockReviewService) {
				svc.EXPECT().Review(gomock.Any(), core.ReviewRequest{SourceText: "x := 1"}).
					Return(&core.ReviewResponse{MarkdownText: "## Review"}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "## Review",
		},
		{
			name: "precheck header",
			body: `{"code":""}`,
			mockSetup: func(svc *mocks.MockReviewService) {
				svc.EXPECT().Review(gomock.Any(), gomock.Any()).
					Return(&core.ReviewResponse{MarkdownText: core.NoCodeMessage, Precheck: true}, nil)
			},
			wantStatus:   http.StatusOK,
			wantBody:     core.NoCodeMessage,
			wantPrecheck: true,
		},
		{
			name:       "malformed json",
			body:       `{"code":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "malformed JSON",
		},
		{
			name:       "empty body",
			body:       ``,
			wantStatus: http.StatusBadRequest,
			wantBody:   "request body is empty",
		},
		{
			name:       "too large",
			body:       `{"code":"` + strings.Repeat("a", 200) + `"}`,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantBody:   "must not exceed",
		},
		{
			name: "transport failure",
			body: `{"code":"x"}`,
			mockSetup: func(svc *mocks.MockReviewService) {
				svc.EXPECT().Review(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("failed to generate review: %w", core.ErrTransport))
			},
			wantStatus: http.StatusBadGateway,
			wantBody:   "unavailable",
		},
		{
			name: "timeout",
			body: `{"code":"x"}`,
			mockSetup: func(svc *mocks.MockReviewService) {
				svc.EXPECT().Review(gomock.Any(), gomock.Any()).Return(nil, context.DeadlineExceeded)
			},
			wantStatus: http.StatusGatewayTimeout,
			wantBody:   "timed out",
		},
		{
			name: "unexpected error",
			body: `{"code":"x"}`,
			mockSetup: func(svc *mocks.MockReviewService) {
				svc.EXPECT().Review(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("template broke"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockReviewService(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(svc)
			}
			h := NewReviewHandler(svc, session.NewGuard(time.Minute), 100, testLogger())

			rec := httptest.NewRecorder()
			h.HandleMarkdown(rec, newReviewRequest(tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
			} else {
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			}
			if tt.wantPrecheck {
				assert.Equal(t, "true", rec.Header().Get(PrecheckHeader))
			} else {
				assert.Empty(t, rec.Header().Get(PrecheckHeader))
			}
		})
	}
}

func TestReviewHandler_HandleJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockReviewService(ctrl)
	svc.EXPECT().Review(gomock.Any(), gomock.Any()).Return(&core.ReviewResponse{
		MarkdownText: "## Bugs\n* `x` is **unused**",
		Provider:     "gemini",
		Model:        "gemini-2.0-flash",
		Duration:     1500 * time.Millisecond,
	}, nil)

	h := NewReviewHandler(svc, session.NewGuard(time.Minute), 1024, testLogger())
	rec := httptest.NewRecorder()
	h.HandleJSON(rec, newReviewRequest(`{"code":"x"}`))

	require.Equal(t, http.StatusOK, rec.Code)

	var got ReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "## Bugs\n* `x` is **unused**", got.Markdown)
	assert.Contains(t, got.HTML, `<h2 class="md-heading">Bugs</h2>`)
	assert.Contains(t, got.HTML, `<strong class="md-bold">unused</strong>`)
	require.Len(t, got.Nodes, 2)
	assert.Equal(t, "gemini", got.Provider)
	assert.Equal(t, "gemini-2.0-flash", got.Model)
	assert.Equal(t, int64(1500), got.DurationMS)
	assert.False(t, got.Precheck)
}

func TestReviewHandler_RejectsConcurrentSessionRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockReviewService(ctrl)
	guard := session.NewGuard(time.Minute)
	h := NewReviewHandler(svc, guard, 1024, testLogger())

	release, err := guard.Acquire("session:session-1")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.HandleMarkdown(rec, newReviewRequest(`{"code":"x"}`))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already in progress")

	release()
	svc.EXPECT().Review(gomock.Any(), gomock.Any()).Return(&core.ReviewResponse{MarkdownText: "ok"}, nil)
	rec = httptest.NewRecorder()
	h.HandleMarkdown(rec, newReviewRequest(`{"code":"x"}`))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, guard.InFlight("session:session-1"), "slot is released after the review")
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	assert.Equal(t, "ip:10.0.0.7", clientKey(req))

	req.Header.Set(SessionHeader, " abc ")
	assert.Equal(t, "session:abc", clientKey(req))
}

type headerCounter struct {
	*httptest.ResponseRecorder
	writes int
}

func (c *headerCounter) WriteHeader(code int) {
	c.writes++
	c.ResponseRecorder.WriteHeader(code)
}

func TestReviewHandler_RequestTimeoutWritesHeaderOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockReviewService(ctrl)
	svc.EXPECT().Review(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ core.ReviewRequest) (*core.ReviewResponse, error) {
			<-ctx.Done()
			return nil, fmt.Errorf("failed to generate review: %w: %w", core.ErrTransport, ctx.Err())
		})

	h := NewReviewHandler(svc, session.NewGuard(time.Minute), 100, testLogger())
	timed := middleware.Timeout(20 * time.Millisecond)(http.HandlerFunc(h.HandleMarkdown))

	rec := &headerCounter{ResponseRecorder: httptest.NewRecorder()}
	timed.ServeHTTP(rec, newReviewRequest(`{"code":"x"}`))

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, 1, rec.writes)
}
