package services

import (
	"context"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// TransactionService implements the entry, listing and aggregation
// operations over the store. Validation gates every manual write; the
// store is only touched after both checks pass.
type TransactionService struct {
	repo *storage.Repository
}

func NewTransactionService(repo *storage.Repository) *TransactionService {
	return &TransactionService{repo: repo}
}

// AddTransaction validates date and amount, failing fast with a
// user-facing error, then appends one record and returns it with the
// store-assigned id.
func (s *TransactionService) AddTransaction(ctx context.Context, date, category, amount, description string) (core.Transaction, error) {
	if !core.ValidateDate(date) {
		return core.Transaction{}, core.ErrInvalidDate
	}
	value, err := core.ParseAmount(amount)
	if err != nil {
		return core.Transaction{}, err
	}

	t := core.Transaction{
		Date:        date,
		Category:    category,
		Amount:      value,
		Description: description,
	}

	id, err := s.repo.Insert(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}
	t.ID = id
	return t, nil
}

// ListTransactions returns every record in insertion order.
func (s *TransactionService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.repo.SelectAll(ctx)
}

// SummaryByCategory groups all records by category and sums amounts per
// group. Categories with no records are absent, not zero.
func (s *TransactionService) SummaryByCategory(ctx context.Context) (map[string]float64, error) {
	totals, err := s.repo.SelectCategorySummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("summary by category: %w", err)
	}

	summary := make(map[string]float64, len(totals))
	for _, c := range totals {
		summary[c.Category] = c.Total
	}
	return summary, nil
}

// SummaryByMonth returns per-month totals ordered ascending by the
// YYYY-MM date prefix.
func (s *TransactionService) SummaryByMonth(ctx context.Context) ([]core.MonthTotal, error) {
	summary, err := s.repo.SelectMonthlySummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("summary by month: %w", err)
	}
	return summary, nil
}
