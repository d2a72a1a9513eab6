package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fintrack/internal/core"
)

type fakeStore struct {
	inserted []core.Transaction
}

func (f *fakeStore) InsertBatch(ctx context.Context, ts []core.Transaction) (int, error) {
	f.inserted = append(f.inserted, ts...)
	return len(ts), nil
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestImportFile(t *testing.T) {
	store := &fakeStore{}
	im := New(store, Options{})

	path := writeCSV(t, "date,category,amount,description\n"+
		"2024-05-01,Food,12.50,groceries\n"+
		"2024-05-02,Rent,500,may rent\n")

	n, err := im.ImportFile(context.Background(), path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Fatalf("imported %d rows, want 2", n)
	}
	if store.inserted[0].Category != "Food" || store.inserted[0].Amount != 12.50 {
		t.Fatalf("unexpected first row: %+v", store.inserted[0])
	}
}

func TestImportFileColumnOrderIndependent(t *testing.T) {
	store := &fakeStore{}
	im := New(store, Options{})

	// Shuffled columns plus an extra one that must be ignored.
	path := writeCSV(t, "amount,description,notes,date,category\n"+
		"12.50,groceries,ignored,2024-05-01,Food\n")

	n, err := im.ImportFile(context.Background(), path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 1 {
		t.Fatalf("imported %d rows, want 1", n)
	}
	got := store.inserted[0]
	if got.Date != "2024-05-01" || got.Category != "Food" || got.Amount != 12.50 || got.Description != "groceries" {
		t.Fatalf("columns mapped wrong: %+v", got)
	}
}

func TestImportFileMissingColumnAborts(t *testing.T) {
	store := &fakeStore{}
	im := New(store, Options{})

	path := writeCSV(t, "date,category,description\n"+
		"2024-05-01,Food,groceries\n")

	n, err := im.ImportFile(context.Background(), path)
	if err == nil {
		t.Fatal("expected error for missing amount column")
	}
	if !strings.Contains(err.Error(), "amount") {
		t.Fatalf("error %q does not name the missing column", err)
	}
	if n != 0 || len(store.inserted) != 0 {
		t.Fatalf("expected zero rows inserted, got %d", len(store.inserted))
	}
}

func TestImportFileMalformedAmountAborts(t *testing.T) {
	store := &fakeStore{}
	im := New(store, Options{})

	path := writeCSV(t, "date,category,amount,description\n"+
		"2024-05-01,Food,12.50,ok\n"+
		"2024-05-02,Food,not-a-number,bad\n"+
		"2024-05-03,Food,3.00,after\n")

	_, err := im.ImportFile(context.Background(), path)
	if err == nil {
		t.Fatal("expected error for malformed amount")
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Fatalf("error %q does not name the offending row", err)
	}
	if len(store.inserted) != 0 {
		t.Fatalf("expected zero rows inserted, got %d", len(store.inserted))
	}
}

func TestImportFileLaxByDefault(t *testing.T) {
	store := &fakeStore{}
	im := New(store, Options{})

	// Bad date shape and negative amount both pass without Strict.
	path := writeCSV(t, "date,category,amount,description\n"+
		"05/01/2024,Food,-5,refund\n")

	n, err := im.ImportFile(context.Background(), path)
	if err != nil {
		t.Fatalf("lax import should accept unvalidated rows: %v", err)
	}
	if n != 1 {
		t.Fatalf("imported %d rows, want 1", n)
	}
}

func TestImportFileStrictValidates(t *testing.T) {
	store := &fakeStore{}
	im := New(store, Options{Strict: true})

	path := writeCSV(t, "date,category,amount,description\n"+
		"05/01/2024,Food,5,bad date shape\n")

	_, err := im.ImportFile(context.Background(), path)
	if err == nil {
		t.Fatal("expected strict import to reject bad date")
	}
	if len(store.inserted) != 0 {
		t.Fatalf("expected zero rows inserted, got %d", len(store.inserted))
	}
}
