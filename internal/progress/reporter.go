package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter shows feedback while an adapter subprocess runs. Loads have no
// measurable progress, so this is an indeterminate spinner.
type Reporter interface {
	Start(message string)
	Finish()
}

// NewReporter returns a spinner for interactive terminals or a plain
// line-based reporter when running under CI.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{}
	}
	return &SpinnerReporter{}
}

// SpinnerReporter displays an indeterminate spinner on stderr.
type SpinnerReporter struct {
	bar  *progressbar.ProgressBar
	done chan struct{}
}

func (r *SpinnerReporter) Start(message string) {
	r.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(message),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	r.done = make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-r.done:
				return
			case <-ticker.C:
				_ = r.bar.Add(1)
			}
		}
	}()
}

func (r *SpinnerReporter) Finish() {
	if r.done != nil {
		close(r.done)
		r.done = nil
	}
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints single lines suitable for CI logs.
type CIReporter struct{}

func (r *CIReporter) Start(message string) {
	fmt.Fprintf(os.Stderr, "%s...\n", message)
}

func (r *CIReporter) Finish() {}
