package model

import "fmt"

// Supplier is a vendor items are reordered from. It is never modified after
// construction.
type Supplier struct {
	id      int
	name    string
	address string
	contact string
}

// NewSupplier creates a supplier record.
func NewSupplier(id int, name, address, contact string) *Supplier {
	return &Supplier{id: id, name: name, address: address, contact: contact}
}

func (s *Supplier) ID() int         { return s.id }
func (s *Supplier) Name() string    { return s.name }
func (s *Supplier) Address() string { return s.address }
func (s *Supplier) Contact() string { return s.contact }

func (s *Supplier) String() string {
	return fmt.Sprintf("ID: %d Name: %s Address: %s Contact: %s", s.id, s.name, s.address, s.contact)
}
