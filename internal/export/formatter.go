// Package export renders a loaded record set for files and pipes.
package export

import (
	"fmt"

	"github.com/vecscope/vecscope/internal/vectordata"
)

// Formatter renders a VectorData snapshot into bytes.
type Formatter interface {
	Format(data *vectordata.VectorData) ([]byte, error)
}

// New returns the formatter for the given format name.
func New(format string) (Formatter, error) {
	switch format {
	case "csv":
		return NewCSV(), nil
	case "json":
		return NewJSON(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want csv or json)", format)
	}
}
