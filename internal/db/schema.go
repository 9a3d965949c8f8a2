package db

import (
	"database/sql"
	"fmt"
)

// schema is the catalog schema. Items reference suppliers loosely, so there
// is no foreign key on supplier_id.
const schema = `
CREATE TABLE IF NOT EXISTS suppliers (
    id      INTEGER PRIMARY KEY,
    name    TEXT NOT NULL,
    address TEXT NOT NULL DEFAULT '',
    contact TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS items (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    quantity    INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    price       TEXT NOT NULL DEFAULT '0',
    supplier_id INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_items_supplier ON items(supplier_id);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
