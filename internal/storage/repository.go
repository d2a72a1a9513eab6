package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

const selectColumns = `SELECT id, date, category, amount, description FROM transactions`

// Repository is the handle to the transactions store. Callers receive it
// explicitly; there is no package-level connection.
type Repository struct {
	db *sql.DB
}

// NewRepository opens (creating if absent) the SQLite store at dbPath and
// runs schema migrations. Existing data is preserved across opens; the
// only destructive operation is the explicitly invoked Reset.
func NewRepository(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the store is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Insert appends one transaction and returns the store-assigned id.
func (r *Repository) Insert(ctx context.Context, t core.Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (date, category, amount, description) VALUES (?, ?, ?, ?)`,
		t.Date, t.Category, t.Amount, t.Description)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"date", t.Date,
		"category", t.Category,
		"amount", t.Amount)

	return id, nil
}

// InsertBatch appends transactions in order, stopping at the first failed
// insert. It returns how many rows were written; rows written before a
// failure stay written (each insert is its own statement).
func (r *Repository) InsertBatch(ctx context.Context, ts []core.Transaction) (int, error) {
	for i, t := range ts {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO transactions (date, category, amount, description) VALUES (?, ?, ?, ?)`,
			t.Date, t.Category, t.Amount, t.Description)
		if err != nil {
			return i, fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}

	slog.InfoContext(ctx, "Transactions batch saved", "count", len(ts))
	return len(ts), nil
}

// SelectAll returns every transaction in insertion (id) order.
func (r *Repository) SelectAll(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select all transactions: %w", err)
	}
	return scanTransactions(rows)
}

// SelectByCategory returns transactions whose category matches exactly.
func (r *Repository) SelectByCategory(ctx context.Context, category string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` WHERE category = ? ORDER BY id`, category)
	if err != nil {
		return nil, fmt.Errorf("select by category: %w", err)
	}
	return scanTransactions(rows)
}

// SelectByDateRange returns transactions with start <= date <= end.
// The comparison is lexicographic, which is correct for the fixed
// zero-padded YYYY-MM-DD form.
func (r *Repository) SelectByDateRange(ctx context.Context, start, end string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` WHERE date BETWEEN ? AND ? ORDER BY id`, start, end)
	if err != nil {
		return nil, fmt.Errorf("select by date range: %w", err)
	}
	return scanTransactions(rows)
}

// SelectAboveAmount returns transactions with amount strictly greater
// than min.
func (r *Repository) SelectAboveAmount(ctx context.Context, min float64) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` WHERE amount > ? ORDER BY id`, min)
	if err != nil {
		return nil, fmt.Errorf("select above amount: %w", err)
	}
	return scanTransactions(rows)
}

// SelectByKeyword returns transactions whose description contains keyword.
func (r *Repository) SelectByKeyword(ctx context.Context, keyword string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` WHERE description LIKE ? ORDER BY id`, "%"+keyword+"%")
	if err != nil {
		return nil, fmt.Errorf("select by keyword: %w", err)
	}
	return scanTransactions(rows)
}

// SelectMonthlySummary returns per-month totals ordered ascending by the
// YYYY-MM prefix of the date.
func (r *Repository) SelectMonthlySummary(ctx context.Context) ([]core.MonthTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT substr(date, 1, 7) AS month, SUM(amount) AS total_spent
		 FROM transactions
		 GROUP BY month
		 ORDER BY month`)
	if err != nil {
		return nil, fmt.Errorf("select monthly summary: %w", err)
	}
	defer rows.Close()

	summary := []core.MonthTotal{}
	for rows.Next() {
		var m core.MonthTotal
		if err := rows.Scan(&m.Month, &m.Total); err != nil {
			return nil, fmt.Errorf("scan monthly summary: %w", err)
		}
		summary = append(summary, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly summary: %w", err)
	}
	return summary, nil
}

// SelectCategorySummary returns per-category totals. Categories with no
// records are simply absent.
func (r *Repository) SelectCategorySummary(ctx context.Context) ([]core.CategoryTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, SUM(amount) AS total
		 FROM transactions
		 GROUP BY category
		 ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("select category summary: %w", err)
	}
	defer rows.Close()

	summary := []core.CategoryTotal{}
	for rows.Next() {
		var c core.CategoryTotal
		if err := rows.Scan(&c.Category, &c.Total); err != nil {
			return nil, fmt.Errorf("scan category summary: %w", err)
		}
		summary = append(summary, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category summary: %w", err)
	}
	return summary, nil
}

// Reset destructively wipes every transaction. It is never called during
// normal startup; callers must ask for it explicitly.
func (r *Repository) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("reset transactions: %w", err)
	}
	slog.WarnContext(ctx, "Transactions store wiped")
	return nil
}

func scanTransactions(rows *sql.Rows) ([]core.Transaction, error) {
	defer rows.Close()

	// Empty result is an empty slice, not nil, so callers marshal it as
	// a JSON array.
	list := []core.Transaction{}
	for rows.Next() {
		var t core.Transaction
		var desc sql.NullString
		if err := rows.Scan(&t.ID, &t.Date, &t.Category, &t.Amount, &desc); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Description = desc.String
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return list, nil
}
