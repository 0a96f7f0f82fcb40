// Package vectordata defines the record set produced by database adapters.
// The shapes mirror the adapter JSON contract one to one; the core never
// synthesizes these values itself, it only deserializes them.
package vectordata

import "fmt"

// DBType identifies a supported vector database format.
type DBType string

const (
	TypeFAISS  DBType = "faiss"
	TypeChroma DBType = "chroma"
)

// Record is a single vector entry: the embedding plus the text chunk and
// provenance it was generated from.
type Record struct {
	ID       string         `json:"id"`
	Vector   []float64      `json:"vector"`
	Text     string         `json:"text"`
	Source   string         `json:"source"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// VectorData is one loaded database snapshot. It lives in memory for the
// duration of a viewing session and is discarded on reload.
type VectorData struct {
	Type      DBType   `json:"type"`
	Count     int      `json:"count"`
	Dimension int      `json:"dimension"`
	// TotalVectors is the size of the underlying index, which may exceed
	// Count when the adapter truncated its output.
	TotalVectors int `json:"total_vectors,omitempty"`
	// CollectionName is set for Chroma databases.
	CollectionName string   `json:"collection_name,omitempty"`
	Vectors        []Record `json:"vectors"`
}

// Validate checks that the declared shape agrees with the records:
// Count must equal len(Vectors) and every vector must have Dimension
// elements. Adapters are not required to satisfy this, so validation is
// opt-in; loaders call it only in strict mode.
func (d *VectorData) Validate() error {
	if d.Count != len(d.Vectors) {
		return fmt.Errorf("declared count %d does not match %d records", d.Count, len(d.Vectors))
	}
	for i, rec := range d.Vectors {
		if len(rec.Vector) != d.Dimension {
			return fmt.Errorf("record %d (%s): vector has %d dimensions, expected %d",
				i, rec.ID, len(rec.Vector), d.Dimension)
		}
	}
	return nil
}
