// Package adapter runs external Python adapter scripts that read vector
// database files and emit a single JSON document on stdout. The binary
// formats themselves (FAISS, Chroma) are never parsed in Go; this package
// owns the subprocess lifecycle and the JSON contract only.
package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/vecscope/vecscope/internal/config"
	"github.com/vecscope/vecscope/internal/detect"
	"github.com/vecscope/vecscope/internal/vectordata"
)

// previewLimit caps how much malformed output a parse failure quotes.
const previewLimit = 500

// Loader spawns one adapter subprocess per load request. Loaders are
// stateless and safe for concurrent use; concurrent loads simply run
// independent subprocesses.
type Loader struct {
	// Python is the interpreter executable. Empty means the platform default.
	Python string
	// AdapterDir overrides where adapter scripts are read from.
	AdapterDir string
	// Timeout bounds a single adapter run. 0 disables the timeout.
	Timeout time.Duration
	// Strict enables shape validation of the parsed output.
	Strict bool
	// DetectOptions tunes path classification in LoadPath.
	DetectOptions detect.Options
}

// NewLoader builds a Loader from configuration.
func NewLoader(cfg *config.Config) *Loader {
	return &Loader{
		Python:     cfg.Python(),
		AdapterDir: cfg.AdapterDir,
		Timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
		Strict:     cfg.Strict,
		DetectOptions: detect.Options{
			MaxDepth: cfg.MaxDepth,
			Exclude:  cfg.Exclude,
		},
	}
}

// LoadPath classifies the given path and loads it. This is the single
// operation the presentation layer consumes.
func (l *Loader) LoadPath(ctx context.Context, path string) (*vectordata.VectorData, error) {
	det, err := detect.DetectWithOptions(path, l.DetectOptions)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, det)
}

// Load runs the adapter for an already-classified database and parses its
// output. The resolved path is passed as the subprocess's sole positional
// argument via the argv vector, so paths containing spaces or quotes need
// no escaping.
func (l *Loader) Load(ctx context.Context, det detect.Detection) (*vectordata.VectorData, error) {
	if _, err := os.Stat(det.Path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", detect.ErrPathNotFound, det.Path)
		}
		return nil, fmt.Errorf("inspecting %s: %w", det.Path, err)
	}

	script, err := resolveScript(det.Type, l.AdapterDir)
	if err != nil {
		return nil, err
	}

	python := l.Python
	if python == "" {
		python = config.DefaultPython()
	}

	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	// stdout carries the JSON payload, stderr is diagnostics only; the
	// two must never share a buffer or a logging adapter would corrupt
	// the payload.
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, python, script, det.Path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	cmdline := strings.Join(cmd.Args, " ")

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("adapter timed out after %s: %s", l.Timeout, cmdline)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ExitError{
				Cmd:    cmdline,
				Code:   exitErr.ExitCode(),
				Stdout: stdout.String(),
				Stderr: stderr.String(),
			}
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrSpawnFailed, python, err)
	}

	return l.parse(stdout.Bytes(), cmdline)
}

// parse interprets the adapter's stdout. A JSON document with an "error"
// field is a logical failure even on exit code zero; adapters use this to
// report missing Python dependencies and unreadable databases.
func (l *Loader) parse(output []byte, cmdline string) (*vectordata.VectorData, error) {
	var probe struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(output, &probe); err != nil {
		return nil, fmt.Errorf("%w (from %s): %v\noutput preview: %s",
			ErrOutputParse, cmdline, err, preview(output))
	}
	if probe.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrAdapterReported, probe.Error)
	}

	var data vectordata.VectorData
	if err := json.Unmarshal(output, &data); err != nil {
		return nil, fmt.Errorf("%w (from %s): %v\noutput preview: %s",
			ErrOutputParse, cmdline, err, preview(output))
	}

	if l.Strict {
		if err := data.Validate(); err != nil {
			return nil, fmt.Errorf("adapter output failed validation: %w", err)
		}
	}

	return &data, nil
}

// preview returns the first previewLimit characters of malformed output.
func preview(output []byte) string {
	s := strings.TrimSpace(string(output))
	if s == "" {
		return "(empty)"
	}
	if len(s) > previewLimit {
		return s[:previewLimit] + "..."
	}
	return s
}
