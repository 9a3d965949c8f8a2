package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/shopfloor/internal/model"
)

// ListSuppliers returns every catalog supplier ordered by id.
func ListSuppliers(ctx context.Context, db *sql.DB) ([]*model.Supplier, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, address, contact FROM suppliers ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []*model.Supplier
	for rows.Next() {
		var (
			id                     int
			name, address, contact string
		)
		if err := rows.Scan(&id, &name, &address, &contact); err != nil {
			return nil, fmt.Errorf("scanning supplier: %w", err)
		}
		suppliers = append(suppliers, model.NewSupplier(id, name, address, contact))
	}
	return suppliers, rows.Err()
}

// ImportSuppliers upserts suppliers into the catalog in a single transaction.
func ImportSuppliers(ctx context.Context, db *sql.DB, suppliers []*model.Supplier) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, s := range suppliers {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO suppliers (id, name, address, contact) VALUES (?, ?, ?, ?)
			 ON CONFLICT (id) DO UPDATE SET name = excluded.name, address = excluded.address,
			     contact = excluded.contact`,
			s.ID(), s.Name(), s.Address(), s.Contact(),
		)
		if err != nil {
			return fmt.Errorf("importing supplier %d: %w", s.ID(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing supplier import: %w", err)
	}
	return nil
}
