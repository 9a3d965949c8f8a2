package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/erazemk/shopfloor/internal/console"
	"github.com/erazemk/shopfloor/internal/db"
	"github.com/erazemk/shopfloor/internal/inventory"
	"github.com/erazemk/shopfloor/internal/model"
	"github.com/erazemk/shopfloor/internal/records"
	"github.com/erazemk/shopfloor/internal/shop"
	"github.com/erazemk/shopfloor/internal/store"
)

// levelRouter is a slog.Handler that sends INFO/WARN to the info sink and
// ERROR+ to the error sink. While the console runs, the info sink is only the
// log file, so load failures are the one thing that reaches the terminal.
type levelRouter struct {
	info slog.Handler
	errs slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.errs.Handle(ctx, r)
	}
	return lr.info.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		info: lr.info.WithAttrs(attrs),
		errs: lr.errs.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		info: lr.info.WithGroup(name),
		errs: lr.errs.WithGroup(name),
	}
}

// setupLogger configures structured logging. INFO/WARN go to infoW, ERROR
// goes to stderr. If logPath is non-empty, all levels are also written to
// that file. Returns a cleanup function that closes the log file (if opened).
func setupLogger(infoW io.Writer, logPath string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var cleanup func()

	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		infoW = io.MultiWriter(infoW, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		info: slog.NewTextHandler(infoW, opts),
		errs: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

const usage = `Usage: shopfloor [run|import|export] [flags]

Commands:
  run      start the inventory console (default)
  import   load record files into a SQLite catalog
  export   write a SQLite catalog back out as record files

Run flags:
  -i, -items <file>       item records (default: items.txt)
  -s, -suppliers <file>   supplier records (default: suppliers.txt)
  -d, -db <path>          load from a SQLite catalog instead of record files
  -r, -reset-on-create    clear pending order lines once the daily order is created
  -l, -log <path>         log file path (default: no file)

Import flags:
  -d, -db <path>          SQLite catalog path (default: shopfloor.sqlite3)
  -i, -items <file>       item records (default: items.txt)
  -s, -suppliers <file>   supplier records (default: suppliers.txt)

Export flags:
  -d, -db <path>          SQLite catalog path (default: shopfloor.sqlite3)
  -i, -items <file>       item records to write (default: items.txt)
  -s, -suppliers <file>   supplier records to write (default: suppliers.txt)
`

func main() {
	args := os.Args[1:]
	cmd := "run"
	if len(args) > 0 && (args[0] == "run" || args[0] == "import" || args[0] == "export") {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "run":
		err = cmdRun(args)
	case "import":
		err = cmdImport(args)
	case "export":
		err = cmdExport(args)
	}
	if err != nil {
		os.Exit(1)
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stdout, usage) }
	return fs
}

// parseFlags parses args and reports whether the program should stop.
func parseFlags(fs *flag.FlagSet, args []string) (stop bool, err error) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return true, nil
		}
		return true, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		return true, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	return false, nil
}

func cmdRun(args []string) error {
	fs := newFlagSet("run")

	var itemsPath, suppliersPath, dbPath, logPath string
	var resetOnCreate bool
	fs.StringVar(&itemsPath, "items", "items.txt", "")
	fs.StringVar(&itemsPath, "i", "items.txt", "")
	fs.StringVar(&suppliersPath, "suppliers", "suppliers.txt", "")
	fs.StringVar(&suppliersPath, "s", "suppliers.txt", "")
	fs.StringVar(&dbPath, "db", "", "")
	fs.StringVar(&dbPath, "d", "", "")
	fs.BoolVar(&resetOnCreate, "reset-on-create", false, "")
	fs.BoolVar(&resetOnCreate, "r", false, "")
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	if stop, err := parseFlags(fs, args); stop {
		return err
	}

	// The console owns stdout, so INFO/WARN only reach the log file.
	infoW := io.Discard
	closeLog, err := setupLogger(infoW, logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}
	if closeLog != nil {
		defer closeLog()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("Initializing shop application, please wait...")

	inv, suppliers, err := load(ctx, dbPath, itemsPath, suppliersPath)
	if err != nil {
		slog.Error("failed to load shop", "error", err)
		return err
	}
	slog.Info("shop loaded", "items", inv.Len(), "suppliers", len(suppliers))

	s := shop.New(inv, suppliers, shop.WithResetOnCreate(resetOnCreate))

	fmt.Println("Ready")
	session := console.NewSession(s, os.Stdin, os.Stdout)
	if err := session.Run(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nTerminated!")
			return nil
		}
		slog.Error("console error", "error", err)
		return err
	}
	return nil
}

// load reads the shop's starting state from the catalog if dbPath is set,
// otherwise from the record files.
func load(ctx context.Context, dbPath, itemsPath, suppliersPath string) (*inventory.Inventory, []*model.Supplier, error) {
	if dbPath != "" {
		if _, err := os.Stat(dbPath); err != nil {
			return nil, nil, fmt.Errorf("opening catalog: %w", err)
		}
		database, err := db.OpenReadOnly(dbPath)
		if err != nil {
			return nil, nil, err
		}
		defer database.Close()
		return store.LoadInventory(ctx, database)
	}

	fmt.Printf("Reading %s, please wait ...\n", itemsPath)
	items, err := readItems(itemsPath)
	if err != nil {
		return nil, nil, err
	}
	fmt.Printf("Reading %s, please wait ...\n", suppliersPath)
	suppliers, err := readSuppliers(suppliersPath)
	if err != nil {
		return nil, nil, err
	}
	return inventory.New(items), suppliers, nil
}

func readItems(path string) ([]*model.Item, error) {
	if !records.ValidFileName(path) {
		warnFileName(path)
	}
	items, err := records.ReadItems(path)
	if err != nil {
		return nil, fmt.Errorf("reading items from %s: %w", path, err)
	}
	return items, nil
}

func readSuppliers(path string) ([]*model.Supplier, error) {
	if !records.ValidFileName(path) {
		warnFileName(path)
	}
	suppliers, err := records.ReadSuppliers(path)
	if err != nil {
		return nil, fmt.Errorf("reading suppliers from %s: %w", path, err)
	}
	return suppliers, nil
}

func warnFileName(path string) {
	fmt.Printf("File name %q not entered correctly, it must end with %s and must be maximum %d characters long.\n",
		path, records.FileExtension, records.MaxFileNameLength)
}

func cmdImport(args []string) error {
	fs := newFlagSet("import")

	var itemsPath, suppliersPath, dbPath string
	fs.StringVar(&dbPath, "db", "shopfloor.sqlite3", "")
	fs.StringVar(&dbPath, "d", "shopfloor.sqlite3", "")
	fs.StringVar(&itemsPath, "items", "items.txt", "")
	fs.StringVar(&itemsPath, "i", "items.txt", "")
	fs.StringVar(&suppliersPath, "suppliers", "suppliers.txt", "")
	fs.StringVar(&suppliersPath, "s", "suppliers.txt", "")

	if stop, err := parseFlags(fs, args); stop {
		return err
	}

	if _, err := setupLogger(os.Stdout, ""); err != nil {
		return err
	}

	items, err := readItems(itemsPath)
	if err != nil {
		slog.Error("failed to read items", "error", err)
		return err
	}
	suppliers, err := readSuppliers(suppliersPath)
	if err != nil {
		slog.Error("failed to read suppliers", "error", err)
		return err
	}

	database, err := db.Open(dbPath)
	if err != nil {
		slog.Error("failed to open catalog", "error", err)
		return err
	}
	defer database.Close()

	if err := importCatalog(context.Background(), database, items, suppliers); err != nil {
		slog.Error("failed to import catalog", "error", err)
		return err
	}

	slog.Info("catalog imported", "path", dbPath, "items", len(items), "suppliers", len(suppliers))
	return nil
}

func importCatalog(ctx context.Context, database *sql.DB, items []*model.Item, suppliers []*model.Supplier) error {
	if err := db.EnsureSchema(database); err != nil {
		return err
	}
	if err := store.ImportSuppliers(ctx, database, suppliers); err != nil {
		return err
	}
	return store.ImportItems(ctx, database, items)
}

func cmdExport(args []string) error {
	fs := newFlagSet("export")

	var itemsPath, suppliersPath, dbPath string
	fs.StringVar(&dbPath, "db", "shopfloor.sqlite3", "")
	fs.StringVar(&dbPath, "d", "shopfloor.sqlite3", "")
	fs.StringVar(&itemsPath, "items", "items.txt", "")
	fs.StringVar(&itemsPath, "i", "items.txt", "")
	fs.StringVar(&suppliersPath, "suppliers", "suppliers.txt", "")
	fs.StringVar(&suppliersPath, "s", "suppliers.txt", "")

	if stop, err := parseFlags(fs, args); stop {
		return err
	}

	if _, err := setupLogger(os.Stdout, ""); err != nil {
		return err
	}

	if err := exportCatalog(context.Background(), dbPath, itemsPath, suppliersPath); err != nil {
		slog.Error("failed to export catalog", "error", err)
		return err
	}

	slog.Info("catalog exported", "path", dbPath, "items", itemsPath, "suppliers", suppliersPath)
	return nil
}

// exportCatalog writes the catalog at dbPath to item and supplier record
// files that run and import accept.
func exportCatalog(ctx context.Context, dbPath, itemsPath, suppliersPath string) error {
	for _, p := range []string{itemsPath, suppliersPath} {
		if !records.ValidFileName(p) {
			return fmt.Errorf("record file name %q must end with %s and be at most %d characters",
				p, records.FileExtension, records.MaxFileNameLength)
		}
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}

	database, err := db.OpenReadOnly(dbPath)
	if err != nil {
		return err
	}
	defer database.Close()

	items, err := store.ListItems(ctx, database)
	if err != nil {
		return err
	}
	suppliers, err := store.ListSuppliers(ctx, database)
	if err != nil {
		return err
	}

	if err := writeRecordFile(itemsPath, func(w io.Writer) error { return records.WriteItems(w, items) }); err != nil {
		return err
	}
	return writeRecordFile(suppliersPath, func(w io.Writer) error { return records.WriteSuppliers(w, suppliers) })
}

func writeRecordFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(strings.TrimSpace(path))
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
