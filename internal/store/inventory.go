package store

import (
	"context"
	"database/sql"

	"github.com/erazemk/shopfloor/internal/inventory"
	"github.com/erazemk/shopfloor/internal/model"
)

// LoadInventory reads the whole catalog: items into a new inventory, and the
// supplier list.
func LoadInventory(ctx context.Context, db *sql.DB) (*inventory.Inventory, []*model.Supplier, error) {
	items, err := ListItems(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	suppliers, err := ListSuppliers(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	return inventory.New(items), suppliers, nil
}
