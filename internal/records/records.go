package records

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erazemk/shopfloor/internal/model"
)

const (
	// Separator delimits fields within a record line.
	Separator = ";"
	// FileExtension is the required suffix of record file names.
	FileExtension = ".txt"
	// MaxFileNameLength is the longest accepted record file name.
	MaxFileNameLength = 24
)

// ErrMalformedRecord is returned when a record line has the wrong number of
// fields or a field of the wrong type.
var ErrMalformedRecord = errors.New("malformed record")

// ValidFileName reports whether name is an acceptable record file name.
func ValidFileName(name string) bool {
	name = strings.TrimSpace(name)
	return strings.HasSuffix(name, FileExtension) && len(name) <= MaxFileNameLength
}

// ParseItem parses an "id;name;qty;price;supplierId" line.
func ParseItem(line string) (*model.Item, error) {
	fields, err := split(line, 5)
	if err != nil {
		return nil, err
	}

	id, err := parseInt("id", fields[0])
	if err != nil {
		return nil, err
	}
	qty, err := parseInt("qty", fields[2])
	if err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(fields[3])
	if err != nil {
		return nil, fmt.Errorf("%w: price %q: %v", ErrMalformedRecord, fields[3], err)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: negative price %s", ErrMalformedRecord, fields[3])
	}
	supplierID, err := parseInt("supplier id", fields[4])
	if err != nil {
		return nil, err
	}

	return model.NewItem(id, fields[1], qty, price, supplierID), nil
}

// ParseSupplier parses an "id;name;address;contact" line.
func ParseSupplier(line string) (*model.Supplier, error) {
	fields, err := split(line, 4)
	if err != nil {
		return nil, err
	}

	id, err := parseInt("id", fields[0])
	if err != nil {
		return nil, err
	}

	return model.NewSupplier(id, fields[1], fields[2], fields[3]), nil
}

// ReadItems reads items from a record file. An unacceptable file name yields
// no records and no error. Any unreadable line aborts the read.
func ReadItems(path string) ([]*model.Item, error) {
	return readFile(path, ParseItem)
}

// ReadSuppliers reads suppliers from a record file. An unacceptable file name
// yields no records and no error. Any unreadable line aborts the read.
func ReadSuppliers(path string) ([]*model.Supplier, error) {
	return readFile(path, ParseSupplier)
}

// WriteItems writes items in record format.
func WriteItems(w io.Writer, items []*model.Item) error {
	for _, item := range items {
		_, err := fmt.Fprintf(w, "%d;%s;%d;%s;%d\n", item.ID, item.Name, item.Qty, item.Price.String(), item.SupplierID)
		if err != nil {
			return fmt.Errorf("writing item %d: %w", item.ID, err)
		}
	}
	return nil
}

// WriteSuppliers writes suppliers in record format.
func WriteSuppliers(w io.Writer, suppliers []*model.Supplier) error {
	for _, s := range suppliers {
		_, err := fmt.Fprintf(w, "%d;%s;%s;%s\n", s.ID(), s.Name(), s.Address(), s.Contact())
		if err != nil {
			return fmt.Errorf("writing supplier %d: %w", s.ID(), err)
		}
	}
	return nil
}

func readFile[T any](path string, parse func(string) (T, error)) ([]T, error) {
	if !ValidFileName(path) {
		return nil, nil
	}

	f, err := os.Open(strings.TrimSpace(path))
	if err != nil {
		return nil, fmt.Errorf("opening record file: %w", err)
	}
	defer f.Close()

	return readRecords(f, parse)
}

func readRecords[T any](r io.Reader, parse func(string) (T, error)) ([]T, error) {
	var out []T
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading record file: %w", err)
	}
	return out, nil
}

// split requires exactly n fields. Empty fields count, including a trailing
// one, so a record written with an empty contact reads back unchanged.
func split(line string, n int) ([]string, error) {
	fields := strings.Split(line, Separator)
	if len(fields) != n {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRecord, n, len(fields))
	}
	return fields, nil
}

func parseInt(field, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrMalformedRecord, field, s)
	}
	return v, nil
}
