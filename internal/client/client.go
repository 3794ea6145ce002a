// Package client talks to a running review server over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sevigo/code-lens/internal/core"
)

const (
	reviewPath     = "/ai/get-review"
	sessionHeader  = "X-Session-ID"
	precheckHeader = "X-Review-Precheck"
	maxErrorBody   = 4096
)

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("review server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("review server returned %d: %s", e.StatusCode, e.Message)
}

// Unwrap lets callers treat any non-2xx answer as a transport failure.
func (e *StatusError) Unwrap() error { return core.ErrTransport }

// Client posts code to the review endpoint. It is safe for concurrent use and
// sends the same session ID with every request.
type Client struct {
	baseURL    string
	sessionID  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSessionID fixes the session ID instead of generating one.
func WithSessionID(id string) Option {
	return func(c *Client) { c.sessionID = id }
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		sessionID:  uuid.NewString(),
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SessionID returns the ID sent in the X-Session-ID header.
func (c *Client) SessionID() string { return c.sessionID }

// Review sends code for review and returns the markdown text.
func (c *Client) Review(ctx context.Context, code string) (*core.ReviewResponse, error) {
	body, err := json.Marshal(map[string]string{"code": code})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+reviewPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/markdown")
	req.Header.Set(sessionHeader, c.sessionID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", core.ErrTransport, err)
	}
	return &core.ReviewResponse{
		MarkdownText: string(text),
		Precheck:     resp.Header.Get(precheckHeader) == "true",
		Duration:     time.Since(start),
	}, nil
}

func errorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(data))
}

// IsConflict reports whether err means another review is still running for
// this session.
func IsConflict(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusConflict
}
