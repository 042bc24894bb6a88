package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store keeps a history of runs in a local SQLite database.
type Store struct {
	db *sql.DB
}

// RunSummary is one row of the run history.
type RunSummary struct {
	RunID     string
	CreatedAt time.Time
	Input     string
	ClipCount int
}

// OpenStore opens (or creates) the history database at path.
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("history: mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		run_id     TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		input      TEXT NOT NULL,
		clip_count INTEGER NOT NULL,
		clips_json TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveRun inserts a run record, replacing any previous row with the same run
// ID so a retried run keeps a single history entry.
func (s *Store) SaveRun(ctx context.Context, rec Record) error {
	clips, err := json.Marshal(rec.Clips)
	if err != nil {
		return fmt.Errorf("history: marshal clips: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (run_id, created_at, input, clip_count, clips_json)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.RunID, rec.CreatedAt.UTC().Format(time.RFC3339), rec.Input, len(rec.Clips), string(clips),
	)
	if err != nil {
		return fmt.Errorf("history: insert run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, created_at, input, clip_count
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var created string
		if err := rows.Scan(&r.RunID, &created, &r.Input, &r.ClipCount); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			r.CreatedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Close() error { return s.db.Close() }
