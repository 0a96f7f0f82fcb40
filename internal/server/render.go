package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// markdown renders record text for the dashboard detail pane. RAG chunks
// are very often markdown fragments with fenced code blocks.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
)

// renderRequest is the JSON body for /api/render.
type renderRequest struct {
	Text string `json:"text"`
}

// renderResponse is the JSON response for /api/render.
type renderResponse struct {
	HTML string `json:"html"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(req.Text), &buf); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, renderResponse{HTML: buf.String()})
}
