package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record states as reported by the accounting server.
const (
	StateActive    = "active"
	StateCancelled = "cancelled"
)

// Defaults applied when the accounting server omits a field.
// The server is allowed to return partial rows; normalization fills the gaps
// so downstream code never branches on missing data.
const (
	DefaultCurrency     = "CZK"
	DefaultDocumentType = "FAKTURA"
	DefaultCustomer     = "Unknown"
	DefaultState        = StateActive
)

// InvoiceRecord is one accounting document as fetched from the server.
// Records are immutable once fetched; aggregators only read them.
type InvoiceRecord struct {
	// Core identifiers
	ID     string // Server-side record identifier
	Number string // Human-readable document number

	// Dates (zero time when the server value was missing or unparseable)
	IssueDate time.Time // Date the document was issued
	DueDate   time.Time // Payment due date

	// Amount
	Amount   decimal.Decimal // Total amount of the document
	Currency string          // Currency code (CZK, EUR, ...)

	// Classification
	DocumentType string // Document type as named by the server (FAKTURA, DOBROPIS, ...)

	// Counterparty
	Customer   string // Customer display name
	CustomerID string // Server-side customer identifier

	// Status
	State string // "active" or "cancelled"
}

// Normalize returns a copy of r with every optional field populated from the
// package defaults. Aggregators require fully-populated records.
func Normalize(r InvoiceRecord) InvoiceRecord {
	if r.Currency == "" {
		r.Currency = DefaultCurrency
	}
	if r.DocumentType == "" {
		r.DocumentType = DefaultDocumentType
	}
	if r.Customer == "" {
		r.Customer = DefaultCustomer
	}
	if r.State == "" {
		r.State = DefaultState
	}
	return r
}

// IsCancelled reports whether the record is excluded from financial totals.
func (r InvoiceRecord) IsCancelled() bool {
	return r.State == StateCancelled
}
