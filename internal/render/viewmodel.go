package render

import (
	"fmt"

	"findigest/internal/digest"
	"findigest/internal/report"
)

// digestView is the template input: the combined result flattened into
// display-ready fields plus the resolved theme.
type digestView struct {
	Theme       Theme
	Source      string
	PeriodStart string
	PeriodEnd   string
	GeneratedAt string
	Modules     []moduleView
}

// moduleView carries one module result. Exactly one of Invoice and Debtor is
// set for a successful module; both are nil for a failed one.
type moduleView struct {
	Title    string
	Success  bool
	Error    string
	Duration string
	Invoice  *report.InvoiceAnalysis
	Debtor   *report.DebtorAnalysis
}

var moduleTitles = map[string]string{
	digest.ModuleInvoices: "Issued invoices",
	digest.ModuleDebtors:  "Overdue receivables",
}

func buildView(result *digest.CombinedResult, theme Theme) digestView {
	view := digestView{
		Theme:       theme,
		Source:      result.Source,
		PeriodStart: result.PeriodStart,
		PeriodEnd:   result.PeriodEnd,
		GeneratedAt: result.GeneratedAt.Format("2006-01-02 15:04:05"),
		Modules:     make([]moduleView, 0, len(result.Modules)),
	}

	for _, mr := range result.Modules {
		mv := moduleView{
			Title:    moduleTitle(mr.Name),
			Success:  mr.Success,
			Error:    mr.Error,
			Duration: fmt.Sprintf("%d ms", mr.DurationMS),
		}
		switch data := mr.Data.(type) {
		case *report.InvoiceAnalysis:
			mv.Invoice = data
		case *report.DebtorAnalysis:
			mv.Debtor = data
		}
		view.Modules = append(view.Modules, mv)
	}

	return view
}

func moduleTitle(name string) string {
	if title, ok := moduleTitles[name]; ok {
		return title
	}
	return name
}
