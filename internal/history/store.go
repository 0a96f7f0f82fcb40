package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded load attempt, successful or not.
type Entry struct {
	ID           string    `json:"id"`
	Path         string    `json:"path"`
	ResolvedPath string    `json:"resolved_path,omitempty"`
	DBType       string    `json:"db_type,omitempty"`
	RecordCount  int       `json:"record_count"`
	Dimension    int       `json:"dimension"`
	DurationMS   int64     `json:"duration_ms"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	LoadedAt     time.Time `json:"loaded_at"`
}

// Store provides access to the load history.
type Store struct {
	db *DB
}

// NewStore creates a Store backed by the given database.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Record inserts an entry. If entry.ID is empty a UUID is generated.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO loads (
			id, path, resolved_path, db_type, record_count,
			dimension, duration_ms, status, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Path,
		entry.ResolvedPath,
		entry.DBType,
		entry.RecordCount,
		entry.Dimension,
		entry.DurationMS,
		entry.Status,
		entry.Error,
	)
	if err != nil {
		return fmt.Errorf("recording load: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, resolved_path, db_type, record_count,
		       dimension, duration_ms, status, error, loaded_at
		FROM loads
		ORDER BY loaded_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var loadedAt string
		if err := rows.Scan(&e.ID, &e.Path, &e.ResolvedPath, &e.DBType,
			&e.RecordCount, &e.Dimension, &e.DurationMS,
			&e.Status, &e.Error, &loadedAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		if t, err := time.Parse("2006-01-02 15:04:05", loadedAt); err == nil {
			e.LoadedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}

	return entries, nil
}

// Prune deletes all but the newest keep entries.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM loads WHERE id NOT IN (
			SELECT id FROM loads ORDER BY loaded_at DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("pruning history: %w", err)
	}
	return nil
}
