package core

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Transaction is one recorded spending event. Records are append-only:
// nothing in the system updates or deletes a row once written.
type Transaction struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"` // YYYY-MM-DD, stored as opaque text
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

var (
	ErrInvalidDate   = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidAmount = errors.New("invalid amount, must be a positive number")
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateDate reports whether s matches the fixed YYYY-MM-DD shape.
// Only the shape is checked, not calendar validity, so "2024-02-30"
// passes. Sorting and range queries depend on this zero-padded
// fixed-width form being lexicographically ordered.
func ValidateDate(s string) bool {
	return datePattern.MatchString(s)
}

// ValidateAmount reports whether s parses as a number strictly greater
// than zero. Non-numeric input yields false rather than an error.
func ValidateAmount(s string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil && v > 0
}

// ParseAmount converts s with the same rule as ValidateAmount, returning
// the parsed value or ErrInvalidAmount.
func ParseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// Validate applies the manual-entry rules to a full record: date shape
// and amount positivity. Category and description stay free-form.
func (t Transaction) Validate() error {
	if !ValidateDate(t.Date) {
		return ErrInvalidDate
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Month derives the YYYY-MM bucket from the date prefix.
func (t Transaction) Month() string {
	if len(t.Date) < 7 {
		return t.Date
	}
	return t.Date[:7]
}
