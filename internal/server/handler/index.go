package handler

import (
	_ "embed"
	"net/http"
)

//go:embed web/index.html
var indexHTML []byte

// Index serves the single-page review UI.
func Index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexHTML)
}
