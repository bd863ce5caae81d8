package report

import (
	"bytes"
	"strconv"

	"github.com/shopspring/decimal"
)

// CurrencyTotal accumulates decimal amounts per currency code while keeping
// the order in which currencies were first seen. A plain map would lose that
// order on JSON output, and the rendered digest lists currencies in stream
// order.
type CurrencyTotal struct {
	order  []string
	totals map[string]decimal.Decimal
}

// NewCurrencyTotal returns an empty accumulator.
func NewCurrencyTotal() *CurrencyTotal {
	return &CurrencyTotal{totals: make(map[string]decimal.Decimal)}
}

// Add accumulates amount under the given currency code. A record is added to
// a CurrencyTotal at most once per pass, so totals never double-count.
func (ct *CurrencyTotal) Add(code string, amount decimal.Decimal) {
	if _, ok := ct.totals[code]; !ok {
		ct.order = append(ct.order, code)
	}
	ct.totals[code] = ct.totals[code].Add(amount)
}

// Get returns the accumulated total for code (zero when never seen).
func (ct *CurrencyTotal) Get(code string) decimal.Decimal {
	return ct.totals[code]
}

// Codes returns the currency codes in first-seen order.
func (ct *CurrencyTotal) Codes() []string {
	out := make([]string, len(ct.order))
	copy(out, ct.order)
	return out
}

// Len returns the number of distinct currencies accumulated.
func (ct *CurrencyTotal) Len() int {
	return len(ct.order)
}

// CurrencyAmount is one entry of a CurrencyTotal in first-seen order.
type CurrencyAmount struct {
	Code   string
	Amount decimal.Decimal
}

// Items returns the accumulated entries in first-seen order.
func (ct *CurrencyTotal) Items() []CurrencyAmount {
	out := make([]CurrencyAmount, 0, len(ct.order))
	for _, code := range ct.order {
		out = append(out, CurrencyAmount{Code: code, Amount: ct.totals[code]})
	}
	return out
}

// MarshalJSON emits a JSON object with keys in first-seen order and amounts
// as JSON numbers.
func (ct *CurrencyTotal) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, code := range ct.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(code))
		buf.WriteByte(':')
		buf.WriteString(ct.totals[code].String())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
