// Package history records extract runs in a workspace-local SQLite store.
package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mgrove/cohort/internal/extract"
)

const schemaVersion = 1

// ErrNoRuns indicates the store has no recorded runs yet.
var ErrNoRuns = errors.New("no extract runs recorded")

// Store is the run-history database handle.
type Store struct {
	db *sql.DB
}

// Run is one recorded extract submission.
type Run struct {
	ID           int64                        `json:"id"`
	Name         string                       `json:"name"`
	SubmittedAt  time.Time                    `json:"submitted_at"`
	Criteria     []extract.FinalizedCriterion `json:"criteria"`
	EpisodeCount int                          `json:"episode_count"`
	ArchivePath  string                       `json:"archive_path,omitempty"`
}

// Open opens or creates the history database under the workspace's .cohort
// directory.
func Open(workspacePath string) (*Store, error) {
	dir := filepath.Join(workspacePath, ".cohort")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .cohort directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "history.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initialize() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			submitted_at TEXT NOT NULL,
			criteria TEXT NOT NULL,
			episode_count INTEGER NOT NULL,
			archive_path TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_submitted_at ON runs(submitted_at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize history database: %w", err)
		}
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&count); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if count == 0 {
		if _, err := s.db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, schemaVersion); err != nil {
			return fmt.Errorf("failed to write schema version: %w", err)
		}
	}
	return nil
}

// Record stores a run and fills in its assigned ID.
func (s *Store) Record(run *Run) error {
	criteria, err := json.Marshal(run.Criteria)
	if err != nil {
		return fmt.Errorf("failed to encode criteria: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (name, submitted_at, criteria, episode_count, archive_path)
		 VALUES (?, ?, ?, ?, ?)`,
		run.Name,
		run.SubmittedAt.UTC().Format(time.RFC3339),
		string(criteria),
		run.EpisodeCount,
		run.ArchivePath,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	run.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read run id: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, name, submitted_at, criteria, episode_count, archive_path
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// Last returns the most recent run, or ErrNoRuns.
func (s *Store) Last() (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, name, submitted_at, criteria, episode_count, archive_path
		 FROM runs ORDER BY id DESC LIMIT 1`)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoRuns
		}
		return nil, err
	}
	return run, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var submittedAt, criteria string

	if err := row.Scan(&run.ID, &run.Name, &submittedAt, &criteria, &run.EpisodeCount, &run.ArchivePath); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, submittedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
	}
	run.SubmittedAt = ts

	if err := json.Unmarshal([]byte(criteria), &run.Criteria); err != nil {
		return nil, fmt.Errorf("failed to decode run criteria: %w", err)
	}
	return &run, nil
}
