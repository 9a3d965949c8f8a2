package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/erazemk/shopfloor/internal/model"
)

// ListItems returns every catalog item ordered by id.
func ListItems(ctx context.Context, db *sql.DB) ([]*model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, quantity, price, supplier_id FROM items ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []*model.Item
	for rows.Next() {
		var (
			id, qty, supplierID int
			name, price         string
		)
		if err := rows.Scan(&id, &name, &qty, &price, &supplierID); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		p, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("item %d: parsing price %q: %w", id, price, err)
		}
		items = append(items, model.NewItem(id, name, qty, p, supplierID))
	}
	return items, rows.Err()
}

// ImportItems upserts items into the catalog in a single transaction.
func ImportItems(ctx context.Context, db *sql.DB, items []*model.Item) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO items (id, name, quantity, price, supplier_id) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT (id) DO UPDATE SET name = excluded.name, quantity = excluded.quantity,
			     price = excluded.price, supplier_id = excluded.supplier_id`,
			item.ID, item.Name, item.Qty, item.Price.String(), item.SupplierID,
		)
		if err != nil {
			return fmt.Errorf("importing item %d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item import: %w", err)
	}
	return nil
}
