package shop

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/shopfloor/internal/inventory"
	"github.com/erazemk/shopfloor/internal/model"
)

// Shop ties the inventory to its suppliers and holds the day's order.
type Shop struct {
	inventory *inventory.Inventory
	suppliers []*model.Supplier
	order     *model.Order

	resetOnCreate bool
	now           func() time.Time
	newID         func() string
	logger        *slog.Logger
}

// Option configures a Shop.
type Option func(*Shop)

// WithResetOnCreate clears the inventory's pending order lines once they
// have been captured into the daily order.
func WithResetOnCreate(reset bool) Option {
	return func(s *Shop) { s.resetOnCreate = reset }
}

// WithClock sets the time source used to date orders.
func WithClock(now func() time.Time) Option {
	return func(s *Shop) { s.now = now }
}

// WithIDGenerator sets the function used to assign order IDs.
func WithIDGenerator(newID func() string) Option {
	return func(s *Shop) { s.newID = newID }
}

// WithLogger sets the logger used for advisory messages.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Shop) { s.logger = logger }
}

// New creates a shop around an inventory and supplier list.
func New(inv *inventory.Inventory, suppliers []*model.Supplier, opts ...Option) *Shop {
	if inv == nil {
		inv = inventory.New(nil)
	}
	s := &Shop{
		inventory: inv,
		suppliers: suppliers,
		now:       time.Now,
		newID:     uuid.NewString,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Inventory returns the shop's inventory.
func (s *Shop) Inventory() *inventory.Inventory {
	return s.inventory
}

// Suppliers returns the shop's suppliers.
func (s *Shop) Suppliers() []*model.Supplier {
	return s.suppliers
}

// SearchSupplierByName returns the first supplier whose name matches,
// ignoring case, or nil.
func (s *Shop) SearchSupplierByName(name string) *model.Supplier {
	for _, sup := range s.suppliers {
		if model.SameName(name, sup.Name()) {
			return sup
		}
	}
	return nil
}

// SearchSupplierByID returns the supplier with the given id, or nil.
func (s *Shop) SearchSupplierByID(id int) *model.Supplier {
	for _, sup := range s.suppliers {
		if sup.ID() == id {
			return sup
		}
	}
	return nil
}

// AddSupplier adds a supplier unless one with the same id exists. It
// returns false, logging a warning, when the id is taken.
func (s *Shop) AddSupplier(id int, name, address, contact string) bool {
	if s.SearchSupplierByID(id) != nil {
		s.logger.Warn("supplier already exists, cannot add", "supplier_id", id)
		return false
	}
	s.suppliers = append(s.suppliers, model.NewSupplier(id, name, address, contact))
	return true
}

// CreateOrder builds the daily order from the pending order lines the first
// time it is called. Each line gets the name of the first supplier with a
// matching id; lines without one keep an empty supplier name. Once an order
// exists, CreateOrder returns it unchanged.
func (s *Shop) CreateOrder() *model.Order {
	if s.order != nil {
		return s.order
	}

	for i, line := range s.inventory.OrderLines() {
		if sup := s.SearchSupplierByID(line.SupplierID); sup != nil {
			s.inventory.SetSupplierName(i, sup.Name())
		}
	}

	s.order = model.NewOrder(s.newID(), s.now(), s.inventory.OrderLines())
	s.logger.Info("order created", "order_id", s.order.ID, "lines", s.order.Len())

	if s.resetOnCreate {
		s.inventory.ClearOrderLines()
	}
	return s.order
}

// Order returns the daily order, or nil if none was created.
func (s *Shop) Order() *model.Order {
	return s.order
}

// SuppliersString lists suppliers one per line.
func (s *Shop) SuppliersString() string {
	var b strings.Builder
	for _, sup := range s.suppliers {
		b.WriteString(sup.String())
		b.WriteString("\n")
	}
	return b.String()
}
