package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const dbFileName = "runs.db"

// DatabasePath returns the path to the run database inside the pyplant
// directory.
func DatabasePath(pyplantDir string) string {
	return filepath.Join(pyplantDir, dbFileName)
}

// Initialize creates the database file and brings its schema up to
// date.
func Initialize(dbPath string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}
	d, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer d.Close()
	if err := Migrate(d); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Open opens the database file, creating it when missing.
func Open(dbPath string) (*sql.DB, error) {
	d, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return d, nil
}
