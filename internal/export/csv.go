package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/vecscope/vecscope/internal/vectordata"
)

// Header is the column layout of CSV exports. The vector and metadata
// columns hold JSON-encoded values so the export round-trips.
var Header = []string{"id", "text", "source", "vector", "metadata"}

// csvFormatter renders records as CSV.
type csvFormatter struct{}

// NewCSV creates a CSV formatter.
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(data *vectordata.VectorData) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	if err := writer.Write(Header); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}

	for _, rec := range data.Vectors {
		vector, err := json.Marshal(rec.Vector)
		if err != nil {
			return nil, fmt.Errorf("encoding vector for %s: %w", rec.ID, err)
		}

		metadata := []byte("{}")
		if rec.Metadata != nil {
			metadata, err = json.Marshal(rec.Metadata)
			if err != nil {
				return nil, fmt.Errorf("encoding metadata for %s: %w", rec.ID, err)
			}
		}

		row := []string{rec.ID, rec.Text, rec.Source, string(vector), string(metadata)}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("writing CSV record %s: %w", rec.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer: %w", err)
	}

	return b.Bytes(), nil
}
