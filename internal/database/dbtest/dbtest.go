// Package dbtest provides a migrated in-memory database for tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/iliyamo/screenscout/internal/database"
)

// New returns an in-memory sqlite database carrying the production schema.
// It is closed when the test finishes.
func New(t testing.TB) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.Migrate(context.Background(), db, "sqlite3", nil); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
