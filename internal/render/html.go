// Package render turns a combined digest result into its output formats:
// a themed HTML document or pretty-printed JSON.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"findigest/internal/digest"
	"findigest/internal/report"
)

const digestHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Accounting digest {{.PeriodStart}} – {{.PeriodEnd}}</title>
  <style>
    :root {
      --primary: {{.Theme.PrimaryColor}};
      --font: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 24px;
      font-family: var(--font);
      color: {{.Theme.TextColor}};
      background: {{.Theme.Background}};
      -webkit-font-smoothing: antialiased;
    }
    .card {
      background: {{.Theme.CardBackground}};
      max-width: 860px;
      margin: 0 auto 24px auto;
      padding: {{.Theme.CardPadding}};
      box-shadow: 0 2px 5px rgba(0,0,0,0.06);
      border-radius: 4px;
    }
    h1 { margin: 0 0 4px 0; font-size: 22px; }
    h2 { margin: 0 0 16px 0; font-size: 17px; }
    .muted { color: {{.Theme.MutedColor}}; font-size: 13px; }
    .summary { display: flex; gap: 32px; margin: 16px 0; }
    .summary .label {
      font-size: 11px;
      text-transform: uppercase;
      color: {{.Theme.MutedColor}};
      letter-spacing: 0.3px;
    }
    .summary .value { font-size: 20px; font-weight: 700; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
    th {
      text-align: left;
      font-size: 11px;
      text-transform: uppercase;
      color: {{.Theme.MutedColor}};
      border-bottom: 1px solid {{.Theme.MutedColor}};
      padding: 6px 8px;
    }
    td { padding: 6px 8px; font-size: 13px; border-bottom: 1px solid rgba(135,146,162,0.2); }
    td.num { text-align: right; font-variant-numeric: tabular-nums; }
    .error {
      color: #c0392b;
      background: rgba(192,57,43,0.08);
      padding: 12px;
      border-radius: 4px;
      font-size: 13px;
    }
    .badge { color: var(--primary); font-weight: 600; }
  </style>
</head>
<body>
  <div class="card">
    <h1>Accounting digest</h1>
    <div class="muted">{{.Source}} · {{.PeriodStart}} – {{.PeriodEnd}} · generated {{.GeneratedAt}}</div>
  </div>
{{range .Modules}}
  <div class="card">
    <h2>{{.Title}} <span class="muted">({{.Duration}})</span></h2>
{{if not .Success}}
    <div class="error">Module failed: {{.Error}}</div>
{{else if .Invoice}}
    <div class="summary">
      <div><div class="label">Total</div><div class="value">{{.Invoice.TotalCount}}</div></div>
      <div><div class="label">Active</div><div class="value">{{.Invoice.ActiveCount}}</div></div>
      <div><div class="label">Cancelled</div><div class="value">{{.Invoice.CancelledCount}}</div></div>
      <div><div class="label">Document types</div><div class="value">{{.Invoice.DocumentTypeCount}}</div></div>
    </div>
    <table>
      <tr><th>Currency</th><th>Total (active)</th></tr>
      {{range .Invoice.CurrencyTotals.Items}}<tr><td>{{.Code}}</td><td class="num">{{amount .Amount .Code}}</td></tr>
      {{end}}
    </table>
    <table>
      <tr><th>Document type</th><th>Count</th><th>Totals</th></tr>
      {{range .Invoice.DocumentTypes}}<tr><td>{{.Type}}</td><td class="num">{{.Count}}</td><td class="num">{{range .Totals.Items}}{{amount .Amount .Code}}<br/>{{end}}</td></tr>
      {{end}}
    </table>
    <table>
      <tr><th>#</th><th>Customer</th><th>Invoices</th><th>Total</th></tr>
      {{range $i, $c := .Invoice.TopCustomers}}<tr><td class="badge">{{inc $i}}</td><td>{{$c.Name}}</td><td class="num">{{$c.Count}}</td><td class="num">{{$c.FormattedTotal}}</td></tr>
      {{end}}
    </table>
{{else if .Debtor}}
    <div class="summary">
      <div><div class="label">Overdue invoices</div><div class="value">{{.Debtor.TotalCount}}</div></div>
      <div><div class="label">Main currency</div><div class="value">{{.Debtor.MainCurrency}}</div></div>
    </div>
    <table>
      <tr><th>Aging bucket</th><th>Count</th><th>Totals</th></tr>
      {{range .Debtor.AgeBuckets}}<tr><td>{{.Bucket}} days</td><td class="num">{{.Count}}</td><td class="num">{{range .Totals.Items}}{{amount .Amount .Code}}<br/>{{end}}</td></tr>
      {{end}}
    </table>
    <table>
      <tr><th>#</th><th>Debtor</th><th>Invoices</th><th>Oldest (days)</th><th>Total</th></tr>
      {{range $i, $d := .Debtor.TopDebtors}}<tr><td class="badge">{{inc $i}}</td><td>{{$d.Name}}</td><td class="num">{{$d.Count}}</td><td class="num">{{$d.OldestOverdueDays}}</td><td class="num">{{$d.FormattedTotal}}</td></tr>
      {{end}}
    </table>
{{end}}
  </div>
{{end}}
</body>
</html>
`

// HTMLRenderer renders a combined result as a standalone HTML document.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the digest template once.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("digest").Funcs(template.FuncMap{
		"amount": report.FormatAmount,
		"inc":    func(i int) int { return i + 1 },
	}).Parse(digestHTMLTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse digest template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// Render produces the HTML document for result using the named theme.
// Unknown theme names fall back to the default theme.
func (r *HTMLRenderer) Render(result *digest.CombinedResult, theme string) (string, error) {
	view := buildView(result, themeFor(theme))

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render digest: %w", err)
	}
	return buf.String(), nil
}
