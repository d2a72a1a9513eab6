// Package importer brings transactions from CSV files into the store.
// It is decoupled from the CLI and HTTP layers so either can reuse it.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"fintrack/internal/core"
)

var requiredColumns = []string{"date", "category", "amount", "description"}

// Store is the subset of the repository the importer writes through.
type Store interface {
	InsertBatch(ctx context.Context, ts []core.Transaction) (int, error)
}

// Options controls import behaviour.
type Options struct {
	// Strict applies the manual-entry validation rules (date shape,
	// positive amount) to every row. Off by default: historically CSV
	// rows bypassed validation, and existing exports rely on that.
	Strict bool
}

type Importer struct {
	store Store
	opts  Options
}

func New(store Store, opts Options) *Importer {
	return &Importer{store: store, opts: opts}
}

// ImportFile reads the CSV at path and inserts one transaction per data
// row. The header must contain the columns date, category, amount and
// description, in any order; extra columns are ignored. A missing column
// or a malformed row aborts the import before anything is written.
// Returns the number of rows inserted.
func (im *Importer) ImportFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	n, err := im.importReader(ctx, f)
	if err != nil {
		return n, err
	}

	slog.InfoContext(ctx, "CSV import completed", "path", path, "rows", n)
	return n, nil
}

func (im *Importer) importReader(ctx context.Context, r io.Reader) (int, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}

	cols, err := columnIndex(header)
	if err != nil {
		return 0, err
	}

	// Parse the whole file before writing anything, so a malformed row
	// leaves the store untouched.
	var ts []core.Transaction
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read csv row %d: %w", line, err)
		}

		t, err := im.parseRow(record, cols)
		if err != nil {
			return 0, fmt.Errorf("csv row %d: %w", line, err)
		}
		ts = append(ts, t)
	}

	return im.store.InsertBatch(ctx, ts)
}

func (im *Importer) parseRow(record []string, cols map[string]int) (core.Transaction, error) {
	amountStr := record[cols["amount"]]
	amount, err := strconv.ParseFloat(strings.TrimSpace(amountStr), 64)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount %q: %w", amountStr, err)
	}

	t := core.Transaction{
		Date:        record[cols["date"]],
		Category:    record[cols["category"]],
		Amount:      amount,
		Description: record[cols["description"]],
	}

	if im.opts.Strict {
		if err := t.Validate(); err != nil {
			return core.Transaction{}, err
		}
	}

	return t, nil
}

// columnIndex maps each required column name to its position in the
// header, failing with a descriptive error if any is absent.
func columnIndex(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.TrimSpace(name)] = i
	}

	cols := make(map[string]int, len(requiredColumns))
	var missing []string
	for _, name := range requiredColumns {
		i, ok := positions[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[name] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv must contain columns date, category, amount, description (missing: %s)",
			strings.Join(missing, ", "))
	}
	return cols, nil
}
