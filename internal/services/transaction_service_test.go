package services

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

func newTestService(t *testing.T) *TransactionService {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return NewTransactionService(repo)
}

func TestAddTransaction(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	added, err := svc.AddTransaction(ctx, "2024-05-01", "Transportation", "40.33", "x")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID == 0 {
		t.Fatal("expected store-assigned id")
	}

	all, err := svc.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d transactions, want 1", len(all))
	}
	if all[0].Category != "Transportation" {
		t.Fatalf("category = %q, want Transportation", all[0].Category)
	}
	if math.Abs(all[0].Amount-40.33) > 1e-9 {
		t.Fatalf("amount = %v, want 40.33", all[0].Amount)
	}
}

func TestAddTransactionRejectsInvalidInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		date    string
		amount  string
		wantErr error
	}{
		{"bad date shape", "01-05-2024", "10", core.ErrInvalidDate},
		{"unpadded date", "2024-5-1", "10", core.ErrInvalidDate},
		{"negative amount", "2024-05-01", "-50", core.ErrInvalidAmount},
		{"zero amount", "2024-05-01", "0", core.ErrInvalidAmount},
		{"non-numeric amount", "2024-05-01", "abc", core.ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddTransaction(ctx, tc.date, "Food", tc.amount, "")
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got err %v, want %v", err, tc.wantErr)
			}
		})
	}

	// Validation failures must leave no partial write behind.
	all, err := svc.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("got %d transactions after rejected adds, want 0", len(all))
	}
}

func TestListTransactionsEmpty(t *testing.T) {
	svc := newTestService(t)

	all, err := svc.ListTransactions(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Fatalf("expected empty slice, got %v", all)
	}
}

func TestSummaryByCategory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	fixtures := []struct {
		date, category string
		amount         string
	}{
		{"2024-05-01", "Transportation", "40.33"},
		{"2024-05-02", "Rent", "447.3"},
		{"2024-05-03", "Food", "245.43"},
		{"2024-05-05", "Transportation", "184.28"},
		{"2024-05-06", "Food", "431.93"},
	}
	for _, f := range fixtures {
		if _, err := svc.AddTransaction(ctx, f.date, f.category, f.amount, ""); err != nil {
			t.Fatalf("add %v: %v", f, err)
		}
	}

	summary, err := svc.SummaryByCategory(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	want := map[string]float64{
		"Transportation": 40.33 + 184.28,
		"Rent":           447.3,
		"Food":           245.43 + 431.93,
	}
	if len(summary) != len(want) {
		t.Fatalf("got %d categories, want %d", len(summary), len(want))
	}
	for cat, total := range want {
		if math.Abs(summary[cat]-total) > 1e-9 {
			t.Errorf("category %q total = %v, want %v", cat, summary[cat], total)
		}
	}
}

func TestSummaryByMonth(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, f := range []struct{ date, amount string }{
		{"2024-05-01", "10"},
		{"2024-05-31", "20"},
		{"2024-06-01", "5"},
	} {
		if _, err := svc.AddTransaction(ctx, f.date, "Misc", f.amount, ""); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	summary, err := svc.SummaryByMonth(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(summary) != 2 {
		t.Fatalf("got %d months, want 2", len(summary))
	}
	if summary[0].Month != "2024-05" || math.Abs(summary[0].Total-30) > 1e-9 {
		t.Fatalf("first bucket = %+v, want 2024-05 / 30", summary[0])
	}
	if summary[1].Month != "2024-06" || math.Abs(summary[1].Total-5) > 1e-9 {
		t.Fatalf("second bucket = %+v, want 2024-06 / 5", summary[1])
	}
}
