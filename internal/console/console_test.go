package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erazemk/shopfloor/internal/inventory"
	"github.com/erazemk/shopfloor/internal/model"
	"github.com/erazemk/shopfloor/internal/shop"
)

func newTestShop() *shop.Shop {
	inv := inventory.New([]*model.Item{
		model.NewItem(1, "Hammer", 45, decimal.RequireFromString("9.99"), 7),
	})
	suppliers := []*model.Supplier{model.NewSupplier(7, "AceTools", "12 Main St", "Jane")}
	return shop.New(inv, suppliers,
		shop.WithClock(func() time.Time { return time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC) }),
		shop.WithIDGenerator(func() string { return "test-order" }),
		shop.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func run(t *testing.T, s *shop.Shop, input string) string {
	t.Helper()
	var out bytes.Buffer
	session := NewSession(s, strings.NewReader(input), &out)
	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func TestQuit(t *testing.T) {
	out := run(t, newTestShop(), "10\n")
	if !strings.Contains(out, "Terminated!") {
		t.Errorf("expected termination message, got:\n%s", out)
	}
}

func TestMenuEndsWithSingleNewline(t *testing.T) {
	out := run(t, newTestShop(), "10\n")
	if out != menu+"Terminated!\n" {
		t.Errorf("unexpected output:\n%q", out)
	}
}

func TestEndOfInputEndsSession(t *testing.T) {
	out := run(t, newTestShop(), "1\n")
	if !strings.Contains(out, "ID: 1 Name: Hammer Qty: 45 Unit $: 9.99") {
		t.Errorf("expected inventory listing, got:\n%s", out)
	}
}

func TestInvalidSelection(t *testing.T) {
	out := run(t, newTestShop(), "abc\n42\n10\n")
	if got := strings.Count(out, "Invalid selection."); got != 2 {
		t.Errorf("expected 2 invalid selections, got %d:\n%s", got, out)
	}
}

func TestSearchItems(t *testing.T) {
	out := run(t, newTestShop(), "2\nhammer\n3\n99\n10\n")

	if !strings.Contains(out, "Searching for item name: hammer...\nID: 1 Name: Hammer") {
		t.Errorf("expected name search hit, got:\n%s", out)
	}
	if !strings.Contains(out, "Searching for item ID: 99...\nNo matching item found.") {
		t.Errorf("expected id search miss, got:\n%s", out)
	}
}

func TestDecreaseAndPrintOrder(t *testing.T) {
	s := newTestShop()
	out := run(t, s, "5\n1\n10\n4\n1\n6\n10\n")

	if !strings.Contains(out, "The quantity is now 35 for this item.") {
		t.Errorf("expected reduced quantity, got:\n%s", out)
	}
	if !strings.Contains(out, "There is 35 of this item.") {
		t.Errorf("expected quantity check, got:\n%s", out)
	}
	for _, want := range []string{"ORDER ID:\t\ttest-order", "Item description:\tHammer", "Amount ordered:\t\t15", "Supplier:\t\tAceTools"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected order report to contain %q, got:\n%s", want, out)
		}
	}
	if s.Order() == nil {
		t.Error("expected the shop to hold the order")
	}
}

func TestInvalidNumberReprompts(t *testing.T) {
	out := run(t, newTestShop(), "4\none\n1\n10\n")
	if !strings.Contains(out, "Invalid number.") || !strings.Contains(out, "There is 45 of this item.") {
		t.Errorf("expected reprompt then quantity, got:\n%s", out)
	}
}

func TestAddStockExistingAndNew(t *testing.T) {
	s := newTestShop()
	out := run(t, s, "8\n1\n5\n8\n2\nSaw\n24.50\n7\n60\n10\n")

	if !strings.Contains(out, "The quantity is now 50 for this item.") {
		t.Errorf("expected Hammer restocked to 50, got:\n%s", out)
	}
	saw := s.Inventory().SearchByID(2)
	if saw == nil || saw.Name != "Saw" || saw.Qty != 60 || saw.SupplierID != 7 {
		t.Errorf("expected new Saw item, got %v", saw)
	}
}

func TestAddSupplier(t *testing.T) {
	s := newTestShop()
	out := run(t, s, "9\n8\nSaw & Co\n1 Mill Rd\nBob\n9\n7\nX\nY\nZ\n7\n10\n")

	if !strings.Contains(out, "Supplier added.") {
		t.Errorf("expected supplier added, got:\n%s", out)
	}
	if !strings.Contains(out, "Supplier already exists, cannot add!") {
		t.Errorf("expected duplicate rejected, got:\n%s", out)
	}
	if !strings.Contains(out, "ID: 8 Name: Saw & Co Address: 1 Mill Rd Contact: Bob") {
		t.Errorf("expected supplier listing, got:\n%s", out)
	}
	if len(s.Suppliers()) != 2 {
		t.Errorf("expected 2 suppliers, got %d", len(s.Suppliers()))
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := NewSession(newTestShop(), strings.NewReader("1\n"), &out).Run(ctx)
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunStopsWhenCancelledAtPrompt(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	session := NewSession(newTestShop(), pr, &out)

	errc := make(chan error, 1)
	go func() { errc <- session.Run(ctx) }()

	// Answer the menu, then leave the id prompt waiting for input.
	if _, err := io.WriteString(pw, "4\n"); err != nil {
		t.Fatalf("writing input: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run still waiting for input after cancel")
	}
}
