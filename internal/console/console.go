package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/erazemk/shopfloor/internal/shop"
)

const menu = `Please choose one of the following options:
1. List all tools in the inventory.
2. Search for tool by name.
3. Search for tool by id.
4. Check item quantity.
5. Decrease item quantity.
6. Print today's order.
7. List all suppliers.
8. Add stock for an item.
9. Add a supplier.
10. Quit.
`

// Session is one operator's run of the menu against a shop.
type Session struct {
	Shop *shop.Shop

	in    io.Reader
	out   io.Writer
	once  sync.Once
	lines chan inputLine
	done  chan struct{}
}

// inputLine is one line read from the operator, or the error that ended input.
type inputLine struct {
	text string
	err  error
}

// NewSession creates a session reading commands from in and writing to out.
func NewSession(s *shop.Shop, in io.Reader, out io.Writer) *Session {
	return &Session{Shop: s, in: in, out: out, lines: make(chan inputLine), done: make(chan struct{})}
}

// scan feeds input lines to readLine until the input ends. A read blocked in
// the reader cannot be interrupted, so it runs apart from the menu loop.
func (s *Session) scan() {
	send := func(l inputLine) bool {
		select {
		case s.lines <- l:
			return true
		case <-s.done:
			return false
		}
	}

	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		if !send(inputLine{text: scanner.Text()}) {
			return
		}
	}
	err := scanner.Err()
	if err != nil {
		err = fmt.Errorf("reading input: %w", err)
	} else {
		err = io.EOF
	}
	send(inputLine{err: err})
}

// Run shows the menu and dispatches commands until the operator quits, the
// input ends, or ctx is cancelled. A session runs once.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, menu)
		line, err := s.readLine(ctx)
		if err != nil {
			return s.finish(err)
		}

		choice, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(s.out, "Invalid selection.")
			continue
		}

		switch choice {
		case 1:
			fmt.Fprintln(s.out, s.Shop.Inventory().String())
		case 2:
			err = s.searchItemByName(ctx)
		case 3:
			err = s.searchItemByID(ctx)
		case 4:
			err = s.checkItemQty(ctx)
		case 5:
			err = s.decreaseItem(ctx)
		case 6:
			s.printTodaysOrder()
		case 7:
			fmt.Fprintln(s.out, s.Shop.SuppliersString())
		case 8:
			err = s.addStock(ctx)
		case 9:
			err = s.addSupplier(ctx)
		case 10:
			fmt.Fprintln(s.out, "Terminated!")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid selection.")
		}
		if err != nil {
			return s.finish(err)
		}
	}
}

// finish treats the end of input as the operator leaving.
func (s *Session) finish(err error) error {
	if errors.Is(err, io.EOF) {
		slog.Info("console input closed")
		return nil
	}
	return err
}

func (s *Session) searchItemByName(ctx context.Context) error {
	name, err := s.prompt(ctx, "Please enter the name of the item: ")
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Searching for item name: %s...\n", name)
	if item := s.Shop.Inventory().SearchByName(name); item != nil {
		fmt.Fprintln(s.out, item)
	} else {
		fmt.Fprintln(s.out, "No matching item found.")
	}
	return nil
}

func (s *Session) searchItemByID(ctx context.Context) error {
	id, err := s.promptInt(ctx, "Please enter the id number of the item: ")
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Searching for item ID: %d...\n", id)
	if item := s.Shop.Inventory().SearchByID(id); item != nil {
		fmt.Fprintln(s.out, item)
	} else {
		fmt.Fprintln(s.out, "No matching item found.")
	}
	return nil
}

func (s *Session) checkItemQty(ctx context.Context) error {
	id, err := s.promptInt(ctx, "Please enter the id number of the item: ")
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "There is %d of this item.\n\n", s.Shop.Inventory().CheckQty(id))
	return nil
}

func (s *Session) decreaseItem(ctx context.Context) error {
	inv := s.Shop.Inventory()

	id, err := s.promptInt(ctx, "Please enter the id number of the item: ")
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "There is %d of this item.\n", inv.CheckQty(id))

	qty, err := s.promptInt(ctx, "Please enter the quantity to reduce: ")
	if err != nil {
		return err
	}
	inv.RemoveItem(id, qty)
	fmt.Fprintf(s.out, "The quantity is now %d for this item.\n\n", inv.CheckQty(id))
	return nil
}

func (s *Session) printTodaysOrder() {
	fmt.Fprintln(s.out, s.Shop.CreateOrder())
}

func (s *Session) addStock(ctx context.Context) error {
	id, err := s.promptInt(ctx, "Please enter the id number of the item: ")
	if err != nil {
		return err
	}

	inv := s.Shop.Inventory()
	name := ""
	price := decimal.Zero
	supplierID := 0
	if !inv.Contains(id) {
		if name, err = s.prompt(ctx, "Please enter the name of the item: "); err != nil {
			return err
		}
		if price, err = s.promptPrice(ctx, "Please enter the unit price: "); err != nil {
			return err
		}
		if supplierID, err = s.promptInt(ctx, "Please enter the supplier id: "); err != nil {
			return err
		}
	}

	qty, err := s.promptInt(ctx, "Please enter the quantity to add: ")
	if err != nil {
		return err
	}
	inv.AddItem(id, name, qty, price, supplierID)
	fmt.Fprintf(s.out, "The quantity is now %d for this item.\n\n", inv.CheckQty(id))
	return nil
}

func (s *Session) addSupplier(ctx context.Context) error {
	id, err := s.promptInt(ctx, "Please enter the supplier id: ")
	if err != nil {
		return err
	}
	name, err := s.prompt(ctx, "Please enter the supplier name: ")
	if err != nil {
		return err
	}
	address, err := s.prompt(ctx, "Please enter the supplier address: ")
	if err != nil {
		return err
	}
	contact, err := s.prompt(ctx, "Please enter the supplier contact: ")
	if err != nil {
		return err
	}

	if s.Shop.AddSupplier(id, name, address, contact) {
		fmt.Fprintln(s.out, "Supplier added.")
	} else {
		fmt.Fprintln(s.out, "Supplier already exists, cannot add!")
	}
	fmt.Fprintln(s.out)
	return nil
}

func (s *Session) prompt(ctx context.Context, text string) (string, error) {
	fmt.Fprintln(s.out, text)
	return s.readLine(ctx)
}

// promptInt asks until the operator enters a valid integer.
func (s *Session) promptInt(ctx context.Context, text string) (int, error) {
	for {
		line, err := s.prompt(ctx, text)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(s.out, "Invalid number.")
	}
}

// promptPrice asks until the operator enters a non-negative decimal.
func (s *Session) promptPrice(ctx context.Context, text string) (decimal.Decimal, error) {
	for {
		line, err := s.prompt(ctx, text)
		if err != nil {
			return decimal.Zero, err
		}
		p, err := decimal.NewFromString(line)
		if err == nil && !p.IsNegative() {
			return p, nil
		}
		fmt.Fprintln(s.out, "Invalid number.")
	}
}

// readLine waits for the next input line or for ctx to be cancelled.
func (s *Session) readLine(ctx context.Context) (string, error) {
	s.once.Do(func() { go s.scan() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-s.lines:
		if l.err != nil {
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}
