package inventory

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"

	"github.com/erazemk/shopfloor/internal/model"
)

func newTestInventory() *Inventory {
	return New([]*model.Item{
		model.NewItem(1, "Hammer", 45, decimal.RequireFromString("9.99"), 7),
		model.NewItem(2, "Saw", 60, decimal.RequireFromString("24.50"), 8),
		model.NewItem(3, "Nails", 0, decimal.RequireFromString("0.05"), 7),
	})
}

func TestSearchByName(t *testing.T) {
	inv := newTestInventory()

	tests := []struct {
		query  string
		wantID int
	}{
		{"Hammer", 1},
		{"hammer", 1},
		{"SAW", 2},
		{"Screwdriver", 0},
		{"", 0},
	}

	for _, tt := range tests {
		got := inv.SearchByName(tt.query)
		if tt.wantID == 0 {
			if got != nil {
				t.Errorf("SearchByName(%q) = %v, want nil", tt.query, got)
			}
			continue
		}
		if got == nil || got.ID != tt.wantID {
			t.Errorf("SearchByName(%q) = %v, want id %d", tt.query, got, tt.wantID)
		}
	}
}

func TestSearchByID(t *testing.T) {
	inv := newTestInventory()

	if got := inv.SearchByID(2); got == nil || got.Name != "Saw" {
		t.Errorf("expected Saw, got %v", got)
	}
	if got := inv.SearchByID(42); got != nil {
		t.Errorf("expected nil for unknown id, got %v", got)
	}
}

func TestCheckQty(t *testing.T) {
	inv := newTestInventory()

	if got := inv.CheckQty(1); got != 45 {
		t.Errorf("expected 45, got %d", got)
	}

	// Known item out of stock.
	if got := inv.CheckQty(3); got != 0 {
		t.Errorf("expected 0 for empty item, got %d", got)
	}
	if !inv.Contains(3) {
		t.Error("expected item 3 to exist")
	}

	// Unknown item reports the same 0.
	if got := inv.CheckQty(99); got != 0 {
		t.Errorf("expected 0 for unknown item, got %d", got)
	}
	if inv.Contains(99) {
		t.Error("expected item 99 not to exist")
	}
}

func TestAddItemNew(t *testing.T) {
	inv := newTestInventory()

	inv.AddItem(4, "Drill", 12, decimal.RequireFromString("89.00"), 9)

	if inv.Len() != 4 {
		t.Fatalf("expected 4 items, got %d", inv.Len())
	}
	item := inv.SearchByID(4)
	if item == nil || item.Name != "Drill" || item.Qty != 12 || item.SupplierID != 9 {
		t.Errorf("unexpected item %v", item)
	}
}

func TestAddItemExistingOnlyAddsQty(t *testing.T) {
	inv := newTestInventory()

	inv.AddItem(1, "Mallet", 5, decimal.RequireFromString("1.00"), 99)

	if inv.Len() != 3 {
		t.Fatalf("expected 3 items, got %d", inv.Len())
	}
	item := inv.SearchByID(1)
	if item.Qty != 50 {
		t.Errorf("expected qty 50, got %d", item.Qty)
	}
	if item.Name != "Hammer" {
		t.Errorf("expected name to stay Hammer, got %q", item.Name)
	}
	if !item.Price.Equal(decimal.RequireFromString("9.99")) {
		t.Errorf("expected price to stay 9.99, got %s", item.Price)
	}
	if item.SupplierID != 7 {
		t.Errorf("expected supplier to stay 7, got %d", item.SupplierID)
	}
}

func TestRemoveItemQueuesOrderLine(t *testing.T) {
	inv := newTestInventory()

	inv.RemoveItem(1, 10)

	if got := inv.CheckQty(1); got != 35 {
		t.Errorf("expected qty 35, got %d", got)
	}
	lines := inv.OrderLines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 order line, got %d", len(lines))
	}
	want := model.OrderLine{ID: 1, Name: "Hammer", Qty: 15, SupplierID: 7}
	if lines[0] != want {
		t.Errorf("expected %+v, got %+v", want, lines[0])
	}

	// Still active: no second line.
	inv.RemoveItem(1, 10)
	if got := len(inv.OrderLines()); got != 1 {
		t.Errorf("expected 1 order line while active, got %d", got)
	}
}

func TestRemoveItemUnknownOrOverdrawn(t *testing.T) {
	inv := newTestInventory()

	inv.RemoveItem(99, 5)
	inv.RemoveItem(2, 61)

	if got := inv.CheckQty(2); got != 60 {
		t.Errorf("expected qty 60, got %d", got)
	}
	if got := len(inv.OrderLines()); got != 0 {
		t.Errorf("expected no order lines, got %d", got)
	}
}

func TestClearOrderLines(t *testing.T) {
	inv := newTestInventory()

	inv.RemoveItem(1, 10)
	inv.RemoveItem(2, 30)
	if got := len(inv.OrderLines()); got != 2 {
		t.Fatalf("expected 2 order lines, got %d", got)
	}

	inv.ClearOrderLines()

	if got := len(inv.OrderLines()); got != 0 {
		t.Errorf("expected 0 order lines after clear, got %d", got)
	}
	for _, item := range inv.Items() {
		if item.OrderActive() {
			t.Errorf("expected order flag cleared for item %d", item.ID)
		}
	}

	inv.RemoveItem(1, 1)
	lines := inv.OrderLines()
	if len(lines) != 1 || lines[0].Qty != 16 {
		t.Errorf("expected new order line for 16, got %+v", lines)
	}
}

func TestOrderLinesReturnsCopy(t *testing.T) {
	inv := newTestInventory()
	inv.RemoveItem(1, 10)

	lines := inv.OrderLines()
	lines[0].Qty = 0

	if got := inv.OrderLines()[0].Qty; got != 15 {
		t.Errorf("expected pending line to keep qty 15, got %d", got)
	}
}

func TestInventoryString(t *testing.T) {
	out := newTestInventory().String()
	if got := strings.Count(out, "\n"); got != 3 {
		t.Errorf("expected 3 lines, got %d", got)
	}
	if !strings.HasPrefix(out, "ID: 1 Name: Hammer Qty: 45 Unit $: 9.99\n") {
		t.Errorf("unexpected listing:\n%s", out)
	}
}

func TestAddItemNeverChangesIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		inv := newTestInventory()
		before := *inv.SearchByID(2)

		qty := rapid.IntRange(0, 1000).Draw(t, "qty")
		name := rapid.String().Draw(t, "name")
		supplier := rapid.IntRange(0, 100).Draw(t, "supplier")

		inv.AddItem(2, name, qty, decimal.NewFromInt(int64(qty)), supplier)

		after := inv.SearchByID(2)
		if after.Qty != before.Qty+qty {
			t.Fatalf("qty = %d, want %d", after.Qty, before.Qty+qty)
		}
		if after.Name != before.Name || after.SupplierID != before.SupplierID || !after.Price.Equal(before.Price) {
			t.Fatalf("item identity changed: %v", after)
		}
	})
}
