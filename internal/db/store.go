package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded diagram generation.
type Run struct {
	ID            string
	CreatedAt     string
	RootModule    string
	PackageDir    string
	OutputPath    string
	ClassCount    int
	RelationCount int
	ErrorCount    int
	Errors        []string
}

// Store persists diagram runs.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database.
func NewStore(d *sql.DB) *Store {
	return &Store{db: d}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts a run and its errors. A missing id is assigned.
func (s *Store) RecordRun(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt == "" {
		run.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`
		INSERT INTO runs (id, created_at, root_module, package_dir, output_path, class_count, relation_count, error_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt, run.RootModule, run.PackageDir, run.OutputPath,
		run.ClassCount, run.RelationCount, len(run.Errors),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	for _, message := range run.Errors {
		if _, err := tx.Exec(
			`INSERT INTO run_errors (run_id, message) VALUES (?, ?)`,
			run.ID, message,
		); err != nil {
			return fmt.Errorf("insert run error: %w", err)
		}
	}
	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, created_at, root_module, package_dir, output_path, class_count, relation_count, error_count
		FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.CreatedAt, &run.RootModule, &run.PackageDir,
			&run.OutputPath, &run.ClassCount, &run.RelationCount, &run.ErrorCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunErrors returns the error messages recorded for one run.
func (s *Store) RunErrors(runID string) ([]string, error) {
	rows, err := s.db.Query(`SELECT message FROM run_errors WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run errors: %w", err)
	}
	defer rows.Close()

	var messages []string
	for rows.Next() {
		var message string
		if err := rows.Scan(&message); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}
