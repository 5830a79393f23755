// Package domain defines the invoice model and the amount conventions shared by
// the invoice use cases and repositories.
package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the payment state of an invoice.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

// DateLayout is the calendar date format of Invoice.Date.
const DateLayout = "2006-01-02"

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// Invoice is a billed amount owed by a customer.
type Invoice struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	// Amount is stored in cents.
	Amount int64
	Status Status
	// Date is the UTC calendar day the invoice was created.
	Date time.Time
}

// ToCents converts a currency amount to cents, rounding half to even.
// It reports false when the cents do not fit in an int64.
func ToCents(amount decimal.Decimal) (int64, bool) {
	cents := amount.Mul(hundred).RoundBank(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, false
	}
	return cents.IntPart(), true
}

// FromCents converts cents back to a currency amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// Today returns the UTC calendar day of t.
func Today(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InvoiceListItem is an invoice joined with the customer it belongs to.
type InvoiceListItem struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Name       string
	Email      string
	ImageURL   string
	Amount     int64
	Status     Status
	Date       time.Time
}

// InvoicePage is one page of a filtered invoice listing.
type InvoicePage struct {
	Items       []*InvoiceListItem
	CurrentPage int
	TotalPages  int
}
