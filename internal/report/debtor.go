package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"findigest/pkg/models"
)

// TopDebtorLimit caps the ranked debtor list of a debtor analysis.
const TopDebtorLimit = 20

// RetainedInvoiceLimit caps the recent invoices kept per debtor for display.
const RetainedInvoiceLimit = 5

// AgeBucketNames are the fixed overdue-day ranges, in reporting order.
// Boundaries are inclusive on the upper end of each named range.
var AgeBucketNames = [4]string{"1-30", "31-60", "61-90", "90+"}

// OverdueDays returns the whole days between due and asOf, never negative.
// A zero due date (missing or unparseable on the server side) maps to 0.
func OverdueDays(due, asOf time.Time) int {
	if due.IsZero() {
		return 0
	}
	d := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	a := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	days := int(a.Sub(d) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}

func ageBucketIndex(days int) int {
	switch {
	case days <= 30:
		return 0
	case days <= 60:
		return 1
	case days <= 90:
		return 2
	default:
		return 3
	}
}

// DebtorAggregator groups overdue receivables by currency, aging bucket and
// debtor in a single pass.
type DebtorAggregator struct{}

type debtorInvoice struct {
	record      models.InvoiceRecord
	overdueDays int
}

type debtorAcc struct {
	name       string
	count      int
	total      decimal.Decimal
	currency   string
	oldestDays int
	invoices   []debtorInvoice
}

// Analyze computes the aging breakdown of overdue records as of asOf.
//
// Every record lands in exactly one aging bucket, so the bucket counts sum to
// the input length. Cancelled records keep their bucket count but are
// excluded from every financial total and from the debtor rollups. The
// reported main currency is the first distinct currency encountered in the
// input, not the one with the largest total.
func (DebtorAggregator) Analyze(records []models.InvoiceRecord, asOf time.Time) *DebtorAnalysis {
	res := &DebtorAnalysis{
		Currencies:     []string{},
		CurrencyTotals: NewCurrencyTotal(),
		AgeBuckets:     make([]AgeBucketSummary, len(AgeBucketNames)),
		TopDebtors:     []DebtorRollup{},
	}
	for i, name := range AgeBucketNames {
		res.AgeBuckets[i] = AgeBucketSummary{Bucket: name, Totals: NewCurrencyTotal()}
	}

	seenCurrency := make(map[string]bool)
	debtorIndex := make(map[string]int)
	var debtors []*debtorAcc

	for _, r := range records {
		res.TotalCount++

		if !seenCurrency[r.Currency] {
			seenCurrency[r.Currency] = true
			res.Currencies = append(res.Currencies, r.Currency)
			if res.MainCurrency == "" {
				res.MainCurrency = r.Currency
			}
		}

		days := OverdueDays(r.DueDate, asOf)

		bucket := &res.AgeBuckets[ageBucketIndex(days)]
		bucket.Count++

		if r.IsCancelled() {
			continue
		}

		res.CurrencyTotals.Add(r.Currency, r.Amount)
		bucket.Totals.Add(r.Currency, r.Amount)

		idx, ok := debtorIndex[r.Customer]
		if !ok {
			idx = len(debtors)
			debtorIndex[r.Customer] = idx
			debtors = append(debtors, &debtorAcc{name: r.Customer})
		}
		acc := debtors[idx]
		acc.count++
		acc.total = acc.total.Add(r.Amount)
		acc.currency = r.Currency // last-seen record wins on mixed currencies
		if days > acc.oldestDays {
			acc.oldestDays = days
		}
		acc.invoices = append(acc.invoices, debtorInvoice{record: r, overdueDays: days})
	}

	// Stable sort keeps first-seen order among equal totals.
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].total.GreaterThan(debtors[j].total)
	})
	for _, acc := range debtors {
		if len(res.TopDebtors) == TopDebtorLimit {
			break
		}
		res.TopDebtors = append(res.TopDebtors, DebtorRollup{
			Name:              acc.name,
			Count:             acc.count,
			Total:             acc.total,
			Currency:          acc.currency,
			FormattedTotal:    FormatAmount(acc.total, acc.currency),
			OldestOverdueDays: acc.oldestDays,
			RecentInvoices:    recentInvoices(acc.invoices),
		})
	}

	return res
}

// recentInvoices keeps the newest invoices by issue date, capped at
// RetainedInvoiceLimit, for display on the debtor rollup.
func recentInvoices(invoices []debtorInvoice) []RetainedInvoice {
	sorted := make([]debtorInvoice, len(invoices))
	copy(sorted, invoices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].record.IssueDate.After(sorted[j].record.IssueDate)
	})
	if len(sorted) > RetainedInvoiceLimit {
		sorted = sorted[:RetainedInvoiceLimit]
	}

	out := make([]RetainedInvoice, 0, len(sorted))
	for _, inv := range sorted {
		out = append(out, RetainedInvoice{
			Number:      inv.record.Number,
			IssueDate:   formatDate(inv.record.IssueDate),
			DueDate:     formatDate(inv.record.DueDate),
			OverdueDays: inv.overdueDays,
			Amount:      inv.record.Amount,
			Currency:    inv.record.Currency,
		})
	}
	return out
}
