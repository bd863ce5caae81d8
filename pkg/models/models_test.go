package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	r := Normalize(InvoiceRecord{})

	assert.Equal(t, DefaultCurrency, r.Currency)
	assert.Equal(t, DefaultDocumentType, r.DocumentType)
	assert.Equal(t, DefaultCustomer, r.Customer)
	assert.Equal(t, DefaultState, r.State)
	assert.True(t, r.Amount.Equal(decimal.Zero))
	assert.False(t, r.IsCancelled())
}

func TestNormalizeKeepsExistingValues(t *testing.T) {
	r := Normalize(InvoiceRecord{
		Currency:     "EUR",
		DocumentType: "DOBROPIS",
		Customer:     "ABC s.r.o.",
		State:        StateCancelled,
	})

	assert.Equal(t, "EUR", r.Currency)
	assert.Equal(t, "DOBROPIS", r.DocumentType)
	assert.Equal(t, "ABC s.r.o.", r.Customer)
	assert.True(t, r.IsCancelled())
}

func TestNewPeriodRejectsReversedRange(t *testing.T) {
	start := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewPeriod(start, end)
	require.Error(t, err)

	p, err := NewPeriod(end, start)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", p.StartISO())
	assert.Equal(t, "2026-03-31", p.EndISO())
}

func TestNewPeriodAllowsSingleDay(t *testing.T) {
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	p, err := NewPeriod(day, day)
	require.NoError(t, err)
	assert.Equal(t, p.StartISO(), p.EndISO())
}

func TestCurrentMonth(t *testing.T) {
	now := time.Date(2026, 8, 27, 13, 30, 0, 0, time.UTC)
	p := CurrentMonth(now)

	assert.Equal(t, "2026-08-01", p.StartISO())
	assert.Equal(t, "2026-08-27", p.EndISO())
}
