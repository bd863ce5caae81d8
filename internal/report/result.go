// Package report implements the aggregation core of the digest: single-pass,
// in-memory grouping and summation over invoice records fetched from the
// accounting server.
//
// Aggregators never fail on malformed input. Records are normalized before
// they reach this package, and an empty input yields a zeroed result with
// empty collections rather than an error.
package report

import (
	"github.com/shopspring/decimal"
)

// DocumentTypeBucket is the per-document-type breakdown of an invoice
// analysis. Count and totals cover active records only; a type seen only on
// cancelled records still appears with a zero count.
type DocumentTypeBucket struct {
	Type   string         `json:"type"`
	Count  int            `json:"count"`
	Totals *CurrencyTotal `json:"totals"`
}

// AgeBucketSummary is the per-aging-bucket breakdown of a debtor analysis.
type AgeBucketSummary struct {
	Bucket string         `json:"bucket"`
	Count  int            `json:"count"`
	Totals *CurrencyTotal `json:"totals"`
}

// CustomerRollup ranks one customer in the invoice top list.
//
// Currency is the currency of the customer's last-seen record. When a
// customer invoices in mixed currencies the later currency wins; the total is
// a plain sum across currencies. Known simplification, kept on purpose.
type CustomerRollup struct {
	Name           string          `json:"name"`
	Count          int             `json:"count"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`
	FormattedTotal string          `json:"formatted_total"`
}

// RetainedInvoice is one of the most recent invoices kept on a debtor rollup
// for display in the rendered digest.
type RetainedInvoice struct {
	Number      string          `json:"number"`
	IssueDate   string          `json:"issue_date"`
	DueDate     string          `json:"due_date"`
	OverdueDays int             `json:"overdue_days"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
}

// DebtorRollup ranks one debtor in the overdue top list.
type DebtorRollup struct {
	Name              string            `json:"name"`
	Count             int               `json:"count"`
	Total             decimal.Decimal   `json:"total"`
	Currency          string            `json:"currency"`
	FormattedTotal    string            `json:"formatted_total"`
	OldestOverdueDays int               `json:"oldest_overdue_days"`
	RecentInvoices    []RetainedInvoice `json:"recent_invoices"`
}

// InvoiceAnalysis is the result of one InvoiceAggregator pass.
type InvoiceAnalysis struct {
	TotalCount        int                  `json:"total_count"`
	ActiveCount       int                  `json:"active_count"`
	CancelledCount    int                  `json:"cancelled_count"`
	DocumentTypeCount int                  `json:"document_type_count"`
	Currencies        []string             `json:"currencies"`
	CurrencyTotals    *CurrencyTotal       `json:"currency_totals"`
	DocumentTypes     []DocumentTypeBucket `json:"document_types"`
	TopCustomers      []CustomerRollup     `json:"top_customers"`
}

// DebtorAnalysis is the result of one DebtorAggregator pass. It mirrors
// InvoiceAnalysis but is keyed by aging bucket instead of document type.
type DebtorAnalysis struct {
	TotalCount     int                `json:"total_count"`
	MainCurrency   string             `json:"main_currency"`
	Currencies     []string           `json:"currencies"`
	CurrencyTotals *CurrencyTotal     `json:"currency_totals"`
	AgeBuckets     []AgeBucketSummary `json:"age_buckets"`
	TopDebtors     []DebtorRollup     `json:"top_debtors"`
}
