package db

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	if err := Initialize(dbPath); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	d, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	store := NewStore(d)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestMigrateCreatesAllTables(t *testing.T) {
	store := openTestStore(t)
	for _, table := range []string{"schema_migrations", "meta", "runs", "run_errors"} {
		var name string
		err := store.db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found: %v", table, err)
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	if err := Migrate(store.db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	v, err := CurrentVersion(store.db)
	if err != nil {
		t.Fatalf("CurrentVersion: %v", err)
	}
	if v != LatestVersion() {
		t.Errorf("version = %d, want %d", v, LatestVersion())
	}
}

func TestRecordAndListRuns(t *testing.T) {
	store := openTestStore(t)

	run := &Run{
		RootModule:    "orchard",
		PackageDir:    "src/orchard",
		OutputPath:    "orchard.puml",
		ClassCount:    5,
		RelationCount: 5,
		Errors:        []string{"module orchard.x imports y at level 4: relative import walks past the root package"},
	}
	if err := store.RecordRun(run); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if run.ID == "" {
		t.Fatal("RecordRun must assign an id")
	}

	runs, err := store.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %+v, want 1", runs)
	}
	got := runs[0]
	if got.ID != run.ID || got.RootModule != "orchard" || got.ClassCount != 5 {
		t.Errorf("listed run = %+v", got)
	}

	messages, err := store.RunErrors(run.ID)
	if err != nil {
		t.Fatalf("RunErrors: %v", err)
	}
	if len(messages) != 1 {
		t.Errorf("messages = %v, want 1", messages)
	}
}
