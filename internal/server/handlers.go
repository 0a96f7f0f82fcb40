package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vecscope/vecscope/internal/adapter"
	"github.com/vecscope/vecscope/internal/detect"
	"github.com/vecscope/vecscope/internal/export"
	"github.com/vecscope/vecscope/internal/history"
	"github.com/vecscope/vecscope/internal/vectordata"
)

// detectResponse is the JSON response for /api/detect.
type detectResponse struct {
	Type         vectordata.DBType `json:"type"`
	ResolvedPath string            `json:"resolved_path"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

// statusFor maps the load failure taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, detect.ErrPathNotFound):
		return http.StatusNotFound
	case errors.Is(err, detect.ErrDetectionFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, adapter.ErrAdapterMissing),
		errors.Is(err, adapter.ErrSpawnFailed):
		return http.StatusInternalServerError
	case errors.Is(err, adapter.ErrExitNonzero),
		errors.Is(err, adapter.ErrOutputParse),
		errors.Is(err, adapter.ErrAdapterReported):
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

func requirePath(w http.ResponseWriter, r *http.Request) (string, bool) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing required query parameter: path"})
		return "", false
	}
	return path, true
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	path, ok := requirePath(w, r)
	if !ok {
		return
	}

	det, err := detect.DetectWithOptions(path, s.loader.DetectOptions)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, detectResponse{Type: det.Type, ResolvedPath: det.Path})
}

// load runs detection plus the adapter and records the attempt in history.
func (s *Server) load(r *http.Request, path string) (*vectordata.VectorData, detect.Detection, error) {
	ctx := r.Context()
	started := time.Now()

	det, err := detect.DetectWithOptions(path, s.loader.DetectOptions)
	var data *vectordata.VectorData
	if err == nil {
		data, err = s.loader.Load(ctx, det)
	}

	if s.hist != nil {
		entry := history.Entry{
			Path:         path,
			ResolvedPath: det.Path,
			DBType:       string(det.Type),
			DurationMS:   time.Since(started).Milliseconds(),
			Status:       "ok",
		}
		if err != nil {
			entry.Status = "error"
			entry.Error = err.Error()
		} else {
			entry.RecordCount = data.Count
			entry.Dimension = data.Dimension
		}
		// History is best-effort; a full disk must not fail the load.
		_ = s.hist.Record(ctx, entry)
	}

	return data, det, err
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	path, ok := requirePath(w, r)
	if !ok {
		return
	}

	data, _, err := s.load(r, path)
	if err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("strict") == "1" {
		if err := data.Validate(); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error": fmt.Sprintf("validation failed: %v", err),
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	path, ok := requirePath(w, r)
	if !ok {
		return
	}

	data, det, err := s.load(r, path)
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := export.NewCSV().Format(data)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	name := strings.TrimSuffix(filepath.Base(det.Path), filepath.Ext(det.Path))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
	w.Write(out)
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	entries := []history.Entry{}
	if s.hist != nil {
		var err error
		entries, err = s.hist.Recent(r.Context(), limit)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if entries == nil {
			entries = []history.Entry{}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"loads": entries})
}
