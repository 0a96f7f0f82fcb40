package export

import (
	"encoding/json"
	"fmt"

	"github.com/vecscope/vecscope/internal/vectordata"
)

// jsonFormatter renders the snapshot as indented JSON, matching the
// adapter contract shape.
type jsonFormatter struct{}

// NewJSON creates a JSON formatter.
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(data *vectordata.VectorData) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return append(out, '\n'), nil
}
