package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/code-lens/internal/markdown"
)

func TestRenderHandler_Handle(t *testing.T) {
	h := NewRenderHandler(1024, testLogger())

	t.Run("json nodes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/render", strings.NewReader(`{"markdown":"## Title\n* a"}`))
		h.Handle(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got struct {
			Nodes []markdown.Node `json:"nodes"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got.Nodes, 2)
		assert.Equal(t, markdown.KindHeading, got.Nodes[0].Kind)
		assert.Equal(t, 2, got.Nodes[0].Level)
		assert.Equal(t, markdown.KindListItem, got.Nodes[1].Kind)
	})

	t.Run("empty markdown gives empty list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/render", strings.NewReader(`{"markdown":""}`)))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"nodes":[]}`, rec.Body.String())
	})

	t.Run("html fragment", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/render?format=html", strings.NewReader(`{"markdown":"**hi**"}`))
		h.Handle(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "<p class=\"md-paragraph\"><strong class=\"md-bold\">hi</strong></p>\n", rec.Body.String())
	})

	t.Run("unknown format", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/render?format=pdf", strings.NewReader(`{}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="review"`)
	assert.Contains(t, rec.Body.String(), "X-Session-ID")
}
