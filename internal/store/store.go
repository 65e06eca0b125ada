// Package store persists an append-only audit log of allow-list rules
// applied through autoflow.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS applied_rules (
	id         TEXT PRIMARY KEY,
	pattern    TEXT NOT NULL,
	source     TEXT NOT NULL,
	applied_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_applied_rules_applied_at ON applied_rules(applied_at);
`

// Store is the SQLite-backed audit log.
type Store struct {
	db *sql.DB
}

// AppliedRule is one audit entry.
type AppliedRule struct {
	ID        string    `json:"id"`
	Pattern   string    `json:"pattern"`
	Source    string    `json:"source"`
	AppliedAt time.Time `json:"applied_at"`
}

// DefaultPath is the conventional audit database location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".autoflow", "audit.db")
}

// Open opens (creating if needed) the audit database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating audit directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing audit schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordApplied appends one audit entry. source names the path the rule
// came in by: analyze, quick, review, or manual.
func (s *Store) RecordApplied(pattern, source string) error {
	_, err := s.db.Exec(
		`INSERT INTO applied_rules (id, pattern, source, applied_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), pattern, source, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording applied rule: %w", err)
	}
	return nil
}

// ListApplied returns the most recent audit entries, newest first.
func (s *Store) ListApplied(limit int) ([]AppliedRule, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, pattern, source, applied_at FROM applied_rules ORDER BY applied_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing applied rules: %w", err)
	}
	defer rows.Close()

	var out []AppliedRule
	for rows.Next() {
		var r AppliedRule
		var appliedAt string
		if err := rows.Scan(&r.ID, &r.Pattern, &r.Source, &appliedAt); err != nil {
			return nil, fmt.Errorf("scanning applied rule: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, appliedAt); err == nil {
			r.AppliedAt = ts
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
