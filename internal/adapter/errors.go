package adapter

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the load failure taxonomy. Use errors.Is to branch;
// the wrapped messages carry the raw context (command line, exit code,
// captured streams) so users can self-diagnose without re-running.
var (
	// ErrAdapterMissing means the adapter script for the database type
	// does not exist at its resolved location.
	ErrAdapterMissing = errors.New("adapter script not found")
	// ErrSpawnFailed means the interpreter process could not be started.
	ErrSpawnFailed = errors.New("could not start interpreter")
	// ErrExitNonzero means the adapter ran but exited with failure status.
	ErrExitNonzero = errors.New("adapter exited with error")
	// ErrOutputParse means the adapter's stdout was not valid JSON.
	ErrOutputParse = errors.New("adapter output is not valid JSON")
	// ErrAdapterReported means the adapter returned a well-formed JSON
	// document carrying an "error" field. The exit code is irrelevant.
	ErrAdapterReported = errors.New("adapter reported an error")
)

// ExitError carries the full context of a non-zero adapter exit. Malformed
// stdout is included because it is often the most useful diagnostic.
type ExitError struct {
	Cmd    string
	Code   int
	Stdout string
	Stderr string
}

func (e *ExitError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "adapter exited with code %d\ncommand: %s", e.Code, e.Cmd)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		fmt.Fprintf(&b, "\nstderr: %s", s)
	}
	if s := strings.TrimSpace(e.Stdout); s != "" {
		fmt.Fprintf(&b, "\nstdout: %s", s)
	}
	return b.String()
}

// Is makes errors.Is(err, ErrExitNonzero) match an *ExitError.
func (e *ExitError) Is(target error) bool { return target == ErrExitNonzero }
