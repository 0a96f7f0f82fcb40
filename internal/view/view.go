// Package view is the presentation model for record tables: filtering,
// sorting, and pagination over an in-memory snapshot. It renders nothing
// itself; the terminal UI and tests consume it.
package view

import (
	"sort"
	"strings"

	"github.com/vecscope/vecscope/internal/vectordata"
)

// SortKey names a sortable column.
type SortKey string

const (
	SortByID     SortKey = "id"
	SortBySource SortKey = "source"
	SortByText   SortKey = "text"
	SortByDim    SortKey = "dim"
)

// SortKeys lists the sortable columns in display order.
var SortKeys = []SortKey{SortByID, SortBySource, SortByText, SortByDim}

// Query describes one table view: an optional case-insensitive filter over
// id/text/source, a sort order, and a page window.
type Query struct {
	Filter   string
	Sort     SortKey
	Desc     bool
	Page     int // zero-based
	PageSize int
}

// Page is the visible slice of records after filtering, sorting, and
// pagination, plus the bookkeeping the UI needs.
type Page struct {
	Records    []vectordata.Record
	Total      int // records after filtering
	TotalPages int
	Page       int
}

// DefaultPageSize is used when a query does not set one.
const DefaultPageSize = 50

// Apply evaluates the query against the snapshot. It never mutates the
// snapshot's record order.
func Apply(data *vectordata.VectorData, q Query) Page {
	records := filter(data.Vectors, q.Filter)
	sortRecords(records, q.Sort, q.Desc)

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(records)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	page := q.Page
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}

	start := page * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Records:    records[start:end],
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
	}
}

// filter returns the records whose id, text, or source contains the query
// string, case-insensitively. An empty query matches everything.
func filter(records []vectordata.Record, query string) []vectordata.Record {
	out := make([]vectordata.Record, 0, len(records))
	if query == "" {
		return append(out, records...)
	}
	needle := strings.ToLower(query)
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.ID), needle) ||
			strings.Contains(strings.ToLower(rec.Text), needle) ||
			strings.Contains(strings.ToLower(rec.Source), needle) {
			out = append(out, rec)
		}
	}
	return out
}

func sortRecords(records []vectordata.Record, key SortKey, desc bool) {
	var less func(a, b vectordata.Record) bool
	switch key {
	case SortBySource:
		less = func(a, b vectordata.Record) bool { return a.Source < b.Source }
	case SortByText:
		less = func(a, b vectordata.Record) bool { return a.Text < b.Text }
	case SortByDim:
		less = func(a, b vectordata.Record) bool { return len(a.Vector) < len(b.Vector) }
	case SortByID:
		less = func(a, b vectordata.Record) bool { return a.ID < b.ID }
	default:
		return // preserve adapter order
	}

	sort.SliceStable(records, func(i, j int) bool {
		if desc {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}
