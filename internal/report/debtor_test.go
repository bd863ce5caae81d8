package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findigest/pkg/models"
)

var asOf = time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)

func overdueRec(customer string, amount int64, daysOverdue int) models.InvoiceRecord {
	return models.Normalize(models.InvoiceRecord{
		Customer:  customer,
		Amount:    decimal.NewFromInt(amount),
		IssueDate: asOf.AddDate(0, 0, -daysOverdue-14),
		DueDate:   asOf.AddDate(0, 0, -daysOverdue),
	})
}

func TestDebtorAnalyzeEmptyInput(t *testing.T) {
	res := DebtorAggregator{}.Analyze(nil, asOf)

	assert.Equal(t, 0, res.TotalCount)
	assert.Equal(t, "", res.MainCurrency)
	assert.Empty(t, res.Currencies)
	assert.Equal(t, 0, res.CurrencyTotals.Len())
	assert.Empty(t, res.TopDebtors)

	require.Len(t, res.AgeBuckets, 4)
	for i, b := range res.AgeBuckets {
		assert.Equal(t, AgeBucketNames[i], b.Bucket)
		assert.Equal(t, 0, b.Count)
	}
}

func TestOverdueDays(t *testing.T) {
	due := asOf.AddDate(0, 0, -16)
	assert.Equal(t, 16, OverdueDays(due, asOf))

	// Due on or after the as-of date is never negative.
	assert.Equal(t, 0, OverdueDays(asOf, asOf))
	assert.Equal(t, 0, OverdueDays(asOf.AddDate(0, 0, 10), asOf))

	// Missing due date degrades to zero instead of failing.
	assert.Equal(t, 0, OverdueDays(time.Time{}, asOf))
}

func TestDebtorBucketBoundaries(t *testing.T) {
	tests := []struct {
		days   int
		bucket string
	}{
		{0, "1-30"},
		{16, "1-30"},
		{30, "1-30"},
		{31, "31-60"},
		{60, "31-60"},
		{61, "61-90"},
		{90, "61-90"},
		{91, "90+"},
		{365, "90+"},
	}

	for _, tc := range tests {
		res := DebtorAggregator{}.Analyze([]models.InvoiceRecord{
			overdueRec("ABC", 100, tc.days),
		}, asOf)

		for _, b := range res.AgeBuckets {
			if b.Bucket == tc.bucket {
				assert.Equal(t, 1, b.Count, "days=%d should land in %s", tc.days, tc.bucket)
			} else {
				assert.Equal(t, 0, b.Count, "days=%d should not land in %s", tc.days, b.Bucket)
			}
		}
	}
}

func TestDebtorBucketCountsSumToInputLength(t *testing.T) {
	records := []models.InvoiceRecord{
		overdueRec("A", 100, 5),
		overdueRec("B", 100, 45),
		overdueRec("C", 100, 70),
		overdueRec("D", 100, 200),
		overdueRec("E", 100, 0),
	}

	res := DebtorAggregator{}.Analyze(records, asOf)

	sum := 0
	for _, b := range res.AgeBuckets {
		sum += b.Count
	}
	assert.Equal(t, len(records), sum)
	assert.Equal(t, len(records), res.TotalCount)
}

func TestDebtorCancelledExcludedFromFinancials(t *testing.T) {
	active := overdueRec("Slow s.r.o.", 1000, 10)
	cancelled := overdueRec("Ghost a.s.", 9999, 10)
	cancelled.State = models.StateCancelled

	res := DebtorAggregator{}.Analyze([]models.InvoiceRecord{active, cancelled}, asOf)

	// Cancelled records still count toward the input-length invariants.
	assert.Equal(t, 2, res.TotalCount)
	sum := 0
	for _, b := range res.AgeBuckets {
		sum += b.Count
	}
	assert.Equal(t, 2, sum)

	// But never toward any financial total or the debtor ranking.
	assert.True(t, res.CurrencyTotals.Get("CZK").Equal(decimal.NewFromInt(1000)))
	assert.True(t, res.AgeBuckets[0].Totals.Get("CZK").Equal(decimal.NewFromInt(1000)))
	require.Len(t, res.TopDebtors, 1)
	assert.Equal(t, "Slow s.r.o.", res.TopDebtors[0].Name)
}

func TestDebtorMainCurrencyIsFirstSeen(t *testing.T) {
	eur := overdueRec("A", 10, 10)
	eur.Currency = "EUR"
	czk := overdueRec("B", 1000000, 10)

	res := DebtorAggregator{}.Analyze([]models.InvoiceRecord{eur, czk}, asOf)

	// First-seen, not largest-total.
	assert.Equal(t, "EUR", res.MainCurrency)
	assert.Equal(t, []string{"EUR", "CZK"}, res.Currencies)
}

func TestDebtorRollup(t *testing.T) {
	res := DebtorAggregator{}.Analyze([]models.InvoiceRecord{
		overdueRec("Slow s.r.o.", 1000, 95),
		overdueRec("Slow s.r.o.", 2000, 40),
		overdueRec("Other", 500, 10),
	}, asOf)

	require.Len(t, res.TopDebtors, 2)
	top := res.TopDebtors[0]
	assert.Equal(t, "Slow s.r.o.", top.Name)
	assert.Equal(t, 2, top.Count)
	assert.True(t, top.Total.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, 95, top.OldestOverdueDays)
	require.Len(t, top.RecentInvoices, 2)
	// Newest issue date first.
	assert.Equal(t, 40, top.RecentInvoices[0].OverdueDays)
	assert.Equal(t, 95, top.RecentInvoices[1].OverdueDays)
}

func TestDebtorRetainsAtMostFiveInvoices(t *testing.T) {
	var records []models.InvoiceRecord
	for i := 0; i < 8; i++ {
		records = append(records, overdueRec("Chronic", 100, 10+i))
	}

	res := DebtorAggregator{}.Analyze(records, asOf)

	require.Len(t, res.TopDebtors, 1)
	require.Len(t, res.TopDebtors[0].RecentInvoices, RetainedInvoiceLimit)
	// Newest (fewest days overdue) retained first.
	assert.Equal(t, 10, res.TopDebtors[0].RecentInvoices[0].OverdueDays)
}

func TestDebtorTopListCapAndStableTies(t *testing.T) {
	var records []models.InvoiceRecord
	for i := 0; i < 25; i++ {
		records = append(records, overdueRec(fmt.Sprintf("debtor-%02d", i), 500, 20))
	}

	res := DebtorAggregator{}.Analyze(records, asOf)

	require.Len(t, res.TopDebtors, TopDebtorLimit)
	for i, d := range res.TopDebtors {
		assert.Equal(t, fmt.Sprintf("debtor-%02d", i), d.Name)
	}
}

func TestDebtorCurrencyLastSeenWins(t *testing.T) {
	first := overdueRec("Mixed", 100, 10)
	second := overdueRec("Mixed", 50, 20)
	second.Currency = "EUR"

	res := DebtorAggregator{}.Analyze([]models.InvoiceRecord{first, second}, asOf)

	require.Len(t, res.TopDebtors, 1)
	assert.Equal(t, "EUR", res.TopDebtors[0].Currency)
	assert.True(t, res.TopDebtors[0].Total.Equal(decimal.NewFromInt(150)))
}
