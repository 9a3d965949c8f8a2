package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erazemk/shopfloor/internal/model"
)

// Inventory owns the shop's items and the order lines raised since the last
// submitted order.
type Inventory struct {
	items      []*model.Item
	orderLines []model.OrderLine
}

// New creates an inventory holding items.
func New(items []*model.Item) *Inventory {
	return &Inventory{items: items}
}

// SearchByName returns the first item whose name matches, ignoring case, or nil.
func (inv *Inventory) SearchByName(name string) *model.Item {
	for _, item := range inv.items {
		if model.SameName(name, item.Name) {
			return item
		}
	}
	return nil
}

// SearchByID returns the item with the given id, or nil.
func (inv *Inventory) SearchByID(id int) *model.Item {
	for _, item := range inv.items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// Contains reports whether an item with the given id exists.
func (inv *Inventory) Contains(id int) bool {
	return inv.SearchByID(id) != nil
}

// CheckQty returns the stock of an item. Unknown items report 0, the same
// as an item that is out of stock; use Contains to tell them apart.
func (inv *Inventory) CheckQty(id int) int {
	if item := inv.SearchByID(id); item != nil {
		return item.Qty
	}
	return 0
}

// AddItem adds a new item, or when the id already exists, adds qty to the
// existing item's stock. Name, price and supplier of an existing item are
// never changed.
func (inv *Inventory) AddItem(id int, name string, qty int, price decimal.Decimal, supplierID int) {
	if item := inv.SearchByID(id); item != nil {
		item.SetQty(item.Qty + qty)
		return
	}
	inv.items = append(inv.items, model.NewItem(id, name, qty, price, supplierID))
}

// RemoveItem reduces an item's stock and records any resulting order line.
// Unknown ids are ignored.
func (inv *Inventory) RemoveItem(id, qty int) {
	item := inv.SearchByID(id)
	if item == nil {
		return
	}
	if line := item.ReduceQty(qty); line != nil {
		inv.orderLines = append(inv.orderLines, *line)
	}
}

// OrderLines returns a copy of the pending order lines.
func (inv *Inventory) OrderLines() []model.OrderLine {
	return append([]model.OrderLine(nil), inv.orderLines...)
}

// SetSupplierName fills in the supplier name of the pending line at index i.
func (inv *Inventory) SetSupplierName(i int, name string) {
	inv.orderLines[i].SupplierName = name
}

// ClearOrderLines drops all pending order lines and clears the order flag on
// every item.
func (inv *Inventory) ClearOrderLines() {
	inv.orderLines = nil
	for _, item := range inv.items {
		item.ClearOrderFlag()
	}
}

// Items returns the inventory's items.
func (inv *Inventory) Items() []*model.Item {
	return inv.items
}

// Len returns the number of items.
func (inv *Inventory) Len() int {
	return len(inv.items)
}

func (inv *Inventory) String() string {
	var b strings.Builder
	for _, item := range inv.items {
		b.WriteString(item.String())
		b.WriteString("\n")
	}
	return b.String()
}
