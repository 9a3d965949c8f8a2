package db

import (
	"database/sql"
	"testing"
)

// NewTestDB creates an in-memory catalog with the schema applied, then runs
// each seed statement against it. Seeding with raw SQL lets tests store rows
// that the import path would never write.
func NewTestDB(t *testing.T, seed ...string) *sql.DB {
	t.Helper()

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test catalog: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("creating test catalog schema: %v", err)
	}
	for _, stmt := range seed {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seeding test catalog with %q: %v", stmt, err)
		}
	}

	return db
}
