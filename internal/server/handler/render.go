package handler

import (
	"log/slog"
	"net/http"

	"github.com/sevigo/code-lens/internal/display"
	"github.com/sevigo/code-lens/internal/markdown"
)

type renderRequest struct {
	Markdown string `json:"markdown"`
}

type renderResponse struct {
	Nodes []markdown.Node `json:"nodes"`
}

// RenderHandler parses markdown without calling the model.
type RenderHandler struct {
	maxBytes int64
	logger   *slog.Logger
}

func NewRenderHandler(maxBytes int64, logger *slog.Logger) *RenderHandler {
	return &RenderHandler{maxBytes: maxBytes, logger: logger}
}

// Handle responds with the node list, or an HTML fragment for ?format=html.
func (h *RenderHandler) Handle(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "html" {
		writeError(w, http.StatusBadRequest, "format must be json or html")
		return
	}

	var req renderRequest
	if err := decodeBody(w, r, h.maxBytes, &req); err != nil {
		writeBodyError(w, h.logger, err, h.maxBytes)
		return
	}

	nodes := markdown.Parse(req.Markdown)
	if format != "html" {
		if nodes == nil {
			nodes = []markdown.Node{}
		}
		writeJSON(w, http.StatusOK, renderResponse{Nodes: nodes})
		return
	}

	html, err := display.HTML(nodes)
	if err != nil {
		h.logger.Error("failed to render markdown", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render markdown")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}
