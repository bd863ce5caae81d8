package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"findigest/pkg/models"
)

// TopCustomerLimit caps the ranked customer list of an invoice analysis.
const TopCustomerLimit = 10

// InvoiceAggregator groups issued invoices by currency, document type and
// customer in a single pass.
type InvoiceAggregator struct{}

type customerAcc struct {
	name     string
	count    int
	total    decimal.Decimal
	currency string
}

// Analyze computes the invoice breakdown for one period.
//
// Cancelled records count toward TotalCount and CancelledCount but are
// excluded from every financial total, including the customer ranking.
// Currencies and document types are listed in first-seen order.
func (InvoiceAggregator) Analyze(records []models.InvoiceRecord) *InvoiceAnalysis {
	res := &InvoiceAnalysis{
		Currencies:     []string{},
		CurrencyTotals: NewCurrencyTotal(),
		DocumentTypes:  []DocumentTypeBucket{},
		TopCustomers:   []CustomerRollup{},
	}

	seenCurrency := make(map[string]bool)
	typeIndex := make(map[string]int)
	customerIndex := make(map[string]int)
	var customers []*customerAcc

	for _, r := range records {
		res.TotalCount++

		if !seenCurrency[r.Currency] {
			seenCurrency[r.Currency] = true
			res.Currencies = append(res.Currencies, r.Currency)
		}
		if _, ok := typeIndex[r.DocumentType]; !ok {
			typeIndex[r.DocumentType] = len(res.DocumentTypes)
			res.DocumentTypes = append(res.DocumentTypes, DocumentTypeBucket{
				Type:   r.DocumentType,
				Totals: NewCurrencyTotal(),
			})
		}

		if r.IsCancelled() {
			res.CancelledCount++
			continue
		}
		res.ActiveCount++

		res.CurrencyTotals.Add(r.Currency, r.Amount)

		bucket := &res.DocumentTypes[typeIndex[r.DocumentType]]
		bucket.Count++
		bucket.Totals.Add(r.Currency, r.Amount)

		idx, ok := customerIndex[r.Customer]
		if !ok {
			idx = len(customers)
			customerIndex[r.Customer] = idx
			customers = append(customers, &customerAcc{name: r.Customer})
		}
		acc := customers[idx]
		acc.count++
		acc.total = acc.total.Add(r.Amount)
		acc.currency = r.Currency // last-seen record wins on mixed currencies
	}

	res.DocumentTypeCount = len(res.DocumentTypes)

	// Stable sort keeps first-seen order among equal totals.
	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].total.GreaterThan(customers[j].total)
	})
	for _, acc := range customers {
		if len(res.TopCustomers) == TopCustomerLimit {
			break
		}
		res.TopCustomers = append(res.TopCustomers, CustomerRollup{
			Name:           acc.name,
			Count:          acc.count,
			Total:          acc.total,
			Currency:       acc.currency,
			FormattedTotal: FormatAmount(acc.total, acc.currency),
		})
	}

	return res
}
