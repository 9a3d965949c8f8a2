package model

import (
	"fmt"
	"strings"
	"time"
)

// OrderLine is a reorder request for a single item. SupplierName is empty
// until the shop resolves it when the daily order is created.
type OrderLine struct {
	ID           int
	Name         string
	Qty          int
	SupplierID   int
	SupplierName string
}

// Order is the daily snapshot of pending order lines.
type Order struct {
	ID        string
	CreatedAt time.Time

	lines []OrderLine
}

// NewOrder freezes a copy of lines into an order.
func NewOrder(id string, createdAt time.Time, lines []OrderLine) *Order {
	return &Order{
		ID:        id,
		CreatedAt: createdAt,
		lines:     append([]OrderLine(nil), lines...),
	}
}

// Lines returns a copy of the order lines.
func (o *Order) Lines() []OrderLine {
	return append([]OrderLine(nil), o.lines...)
}

// Len returns the number of order lines.
func (o *Order) Len() int {
	return len(o.lines)
}

// String renders the order report.
func (o *Order) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ORDER ID:\t\t%s\n", o.ID)
	fmt.Fprintf(&b, "Date Ordered:\t\t%s\n", o.CreatedAt.Format("January 2, 2006"))

	if len(o.lines) == 0 {
		b.WriteString("\nNo items to order.\n")
		return b.String()
	}

	for _, l := range o.lines {
		b.WriteString("\n")
		fmt.Fprintf(&b, "Item description:\t%s\n", l.Name)
		fmt.Fprintf(&b, "Amount ordered:\t\t%d\n", l.Qty)
		fmt.Fprintf(&b, "Supplier:\t\t%s\n", l.SupplierName)
	}
	return b.String()
}
