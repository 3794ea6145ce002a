// Package handler provides the HTTP handlers for the review service.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// errBodyTooLarge is returned by decodeBody when the request exceeds the limit.
var errBodyTooLarge = errors.New("request body too large")

// decodeBody reads a JSON object of at most limit bytes into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errBodyTooLarge
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is empty")
		}
		return fmt.Errorf("malformed JSON: %w", err)
	}
	return nil
}

// writeBodyError maps a decodeBody failure to a response.
func writeBodyError(w http.ResponseWriter, logger *slog.Logger, err error, limit int64) {
	if errors.Is(err, errBodyTooLarge) {
		logger.Warn("rejecting oversized request", "limit_bytes", limit)
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("code must not exceed %d bytes", limit))
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

// clientKey identifies the caller for per-session bookkeeping. RealIP has
// already replaced RemoteAddr when a proxy header was present.
func clientKey(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(SessionHeader)); id != "" {
		return "session:" + id
	}
	return "ip:" + remoteHost(r.RemoteAddr)
}

func remoteHost(addr string) string {
	if i := strings.LastIndex(addr, ":"); i > 0 && !strings.HasSuffix(addr, "]") {
		return addr[:i]
	}
	return addr
}
