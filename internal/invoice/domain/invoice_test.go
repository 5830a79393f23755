package domain

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusPaid.Valid())
	assert.False(t, Status("overdue").Valid())
	assert.False(t, Status("").Valid())
}

func TestToCents(t *testing.T) {
	tests := []struct {
		amount   string
		expected int64
		ok       bool
	}{
		{amount: "50", expected: 5000, ok: true},
		{amount: "12.34", expected: 1234, ok: true},
		{amount: "0.01", expected: 1, ok: true},
		{amount: "19.995", expected: 2000, ok: true},
		{amount: "0.005", expected: 0, ok: true},
		{amount: "0.015", expected: 2, ok: true},
		{amount: "1e2", expected: 10000, ok: true},
		{amount: "92233720368547758.07", expected: math.MaxInt64, ok: true},
		{amount: "92233720368547758.08", ok: false},
		{amount: "184467440737095516.17", ok: false},
		{amount: "1e20", ok: false},
		{amount: "-1e20", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			cents, ok := ToCents(decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, cents)
		})
	}
}

func TestFromCents(t *testing.T) {
	assert.Equal(t, "12.34", FromCents(1234).StringFixed(2))
	assert.Equal(t, "50.00", FromCents(5000).StringFixed(2))
}

func TestToday(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	// 22:30 on Jan 1st at UTC-5 is Jan 2nd in UTC
	at := time.Date(2024, 1, 1, 22, 30, 0, 0, loc)

	day := Today(at)
	assert.Equal(t, "2024-01-02", day.Format(DateLayout))
	assert.Equal(t, time.UTC, day.Location())
	assert.Zero(t, day.Hour())
}
