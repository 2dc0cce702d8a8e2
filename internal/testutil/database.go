// Package testutil provides shared helpers for spamsift tests: an isolated
// history database and stub statistical models.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/spamsift/internal/model"
	"github.com/Veraticus/spamsift/internal/service"
	"github.com/Veraticus/spamsift/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a new in-memory history database.
// It automatically handles migrations and cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// MustSave stores verdict for message or fails the test.
func (db *TestDB) MustSave(message string, verdict *model.Verdict) *model.VerdictRecord {
	db.t.Helper()

	rec, err := db.Storage.SaveVerdict(context.Background(), message, verdict)
	if err != nil {
		db.t.Fatalf("failed to save verdict for %q: %v", message, err)
	}
	return rec
}
