package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vecscope/vecscope/internal/detect"
	"github.com/vecscope/vecscope/internal/vectordata"
)

// handleDetectDatabase classifies a path without loading it.
func (s *Server) handleDetectDatabase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}

	det, err := detect.DetectWithOptions(path, s.loader.DetectOptions)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("type: %s\nresolved path: %s", det.Type, det.Path)), nil
}

// handleLoadDatabase loads a database and returns a compact record listing.
func (s *Server) handleLoadDatabase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}

	limit := request.GetInt("limit", 25)
	if limit <= 0 {
		limit = 25
	}
	includeVectors := request.GetBool("include_vectors", false)

	data, err := s.loader.LoadPath(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	records := data.Vectors
	if len(records) > limit {
		records = records[:limit]
	}

	type recordOut struct {
		ID       string         `json:"id"`
		Text     string         `json:"text"`
		Source   string         `json:"source,omitempty"`
		Dim      int            `json:"dim"`
		Vector   []float64      `json:"vector,omitempty"`
		Metadata map[string]any `json:"metadata,omitempty"`
	}

	out := struct {
		Type       vectordata.DBType `json:"type"`
		Count      int               `json:"count"`
		Dimension  int               `json:"dimension"`
		Collection string            `json:"collection_name,omitempty"`
		Shown      int               `json:"shown"`
		Records    []recordOut       `json:"records"`
	}{
		Type:       data.Type,
		Count:      data.Count,
		Dimension:  data.Dimension,
		Collection: data.CollectionName,
		Shown:      len(records),
	}
	for _, rec := range records {
		r := recordOut{
			ID:       rec.ID,
			Text:     rec.Text,
			Source:   rec.Source,
			Dim:      len(rec.Vector),
			Metadata: rec.Metadata,
		}
		if includeVectors {
			r.Vector = rec.Vector
		}
		out.Records = append(out.Records, r)
	}

	payload, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(payload)), nil
}

// handleListRecent returns the recent load history.
func (s *Server) handleListRecent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.hist == nil {
		return mcp.NewToolResultText("Load history is not enabled."), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	entries, err := s.hist.Recent(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading history: %v", err)), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("No databases have been inspected yet."), nil
	}

	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(payload)), nil
}
