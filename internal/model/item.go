package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Reorder rule constants.
const (
	// ReorderThreshold is the stock level below which a reorder line is raised.
	ReorderThreshold = 40
	// ReplenishmentTarget is the stock level a reorder line tops the item up to.
	ReplenishmentTarget = 50
)

// Item is a stock record held by the inventory.
type Item struct {
	ID   int
	Name string
	// Qty is never negative. Change it through SetQty or ReduceQty; both
	// keep that rule, direct writes do not.
	Qty        int
	Price      decimal.Decimal
	SupplierID int

	orderActive bool
}

// NewItem builds an item. A negative quantity is ignored and leaves it at 0.
func NewItem(id int, name string, qty int, price decimal.Decimal, supplierID int) *Item {
	item := &Item{ID: id, Name: name, Price: price, SupplierID: supplierID}
	item.SetQty(qty)
	return item
}

// SetQty sets the quantity. Negative values are ignored.
func (i *Item) SetQty(qty int) {
	if qty >= 0 {
		i.Qty = qty
	}
}

// OrderActive reports whether a reorder line was raised and not yet cleared.
func (i *Item) OrderActive() bool {
	return i.orderActive
}

// ClearOrderFlag allows the next below-threshold reduction to raise a new line.
func (i *Item) ClearOrderFlag() {
	i.orderActive = false
}

// ReduceQty removes amount from stock. Requests that are not positive or
// exceed the current stock leave the quantity unchanged.
//
// If the resulting quantity is below ReorderThreshold and no order is active
// for the item, the item is flagged and a reorder line for the difference up
// to ReplenishmentTarget is returned. Otherwise ReduceQty returns nil.
func (i *Item) ReduceQty(amount int) *OrderLine {
	if amount > 0 && i.Qty >= amount {
		i.Qty -= amount
	}

	if i.Qty >= ReorderThreshold || i.orderActive {
		return nil
	}

	i.orderActive = true
	return &OrderLine{
		ID:         i.ID,
		Name:       i.Name,
		Qty:        ReplenishmentTarget - i.Qty,
		SupplierID: i.SupplierID,
	}
}

func (i *Item) String() string {
	return fmt.Sprintf("ID: %d Name: %s Qty: %d Unit $: %s", i.ID, i.Name, i.Qty, i.Price.StringFixed(2))
}
