// Package history persists build batch records to SQLite so watch-mode
// failures can be inspected after the fact.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// BatchRecord is one build batch outcome.
type BatchRecord struct {
	ID         string
	Trigger    string // "full", "watch" or "scheduled"
	Components int
	Outcome    string // "success" or "failed"
	Error      string
	Duration   time.Duration
	RecordedAt time.Time
}

// Store is a SQLite-backed batch history.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the history database. Use ":memory:" for an
// in-memory store.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS batches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch_id TEXT NOT NULL,
		trigger_kind TEXT NOT NULL,
		components INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		error TEXT,
		duration_ms INTEGER NOT NULL,
		recorded_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_batches_recorded_at ON batches(recorded_at);
	CREATE INDEX IF NOT EXISTS idx_batches_outcome ON batches(outcome);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records one batch outcome.
func (s *Store) Append(ctx context.Context, rec BatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recordedAt := rec.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO batches (batch_id, trigger_kind, components, outcome, error, duration_ms, recorded_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		rec.ID, rec.Trigger, rec.Components, rec.Outcome, rec.Error,
		rec.Duration.Milliseconds(), recordedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert batch record: %w", err)
	}
	return nil
}

// Recent returns the most recent n batch records, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]BatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT batch_id, trigger_kind, components, outcome, error, duration_ms, recorded_at FROM batches ORDER BY id DESC LIMIT ?",
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("query batch records: %w", err)
	}
	defer rows.Close()

	var records []BatchRecord
	for rows.Next() {
		var rec BatchRecord
		var durationMS, recordedAt int64
		var errStr sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Trigger, &rec.Components, &rec.Outcome, &errStr, &durationMS, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan batch record: %w", err)
		}
		rec.Error = errStr.String
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		rec.RecordedAt = time.Unix(recordedAt, 0)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
