package digest

import (
	"context"

	"findigest/internal/report"
	"findigest/internal/source"
	"findigest/pkg/models"
)

// Module names as selectable via --modules.
const (
	ModuleInvoices = "invoices"
	ModuleDebtors  = "debtors"
)

// DataSource is the slice of the accounting server client the modules need.
type DataSource interface {
	Fetch(ctx context.Context, entity string, filter source.Filter) ([]models.InvoiceRecord, error)
}

// InvoiceModule computes the issued-invoice breakdown for the period.
type InvoiceModule struct {
	src DataSource
	agg report.InvoiceAggregator
}

// NewInvoiceModule creates the invoices module on top of src.
func NewInvoiceModule(src DataSource) *InvoiceModule {
	return &InvoiceModule{src: src}
}

// Name implements Module.
func (m *InvoiceModule) Name() string { return ModuleInvoices }

// Run fetches the period's invoices and aggregates them.
func (m *InvoiceModule) Run(ctx context.Context, period models.Period) (any, error) {
	records, err := m.src.Fetch(ctx, source.EntityInvoices, source.Filter{
		From: period.Start,
		To:   period.End,
	})
	if err != nil {
		return nil, err
	}
	return m.agg.Analyze(records), nil
}

// DebtorModule computes the overdue-receivables aging breakdown. Overdue days
// are measured against the period end, so a digest for a past period is
// reproducible.
type DebtorModule struct {
	src DataSource
	agg report.DebtorAggregator
}

// NewDebtorModule creates the debtors module on top of src.
func NewDebtorModule(src DataSource) *DebtorModule {
	return &DebtorModule{src: src}
}

// Name implements Module.
func (m *DebtorModule) Name() string { return ModuleDebtors }

// Run fetches the period's overdue receivables and aggregates them.
func (m *DebtorModule) Run(ctx context.Context, period models.Period) (any, error) {
	records, err := m.src.Fetch(ctx, source.EntityOverdueInvoices, source.Filter{
		From: period.Start,
		To:   period.End,
	})
	if err != nil {
		return nil, err
	}
	return m.agg.Analyze(records, period.End), nil
}
