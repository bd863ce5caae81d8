package report

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatAmount renders a decimal amount for display: two decimal places,
// thousands grouped by spaces, currency code suffixed.
// Example: FormatAmount(1234567.89, "CZK") == "1 234 567.89 CZK".
//
// This function is pure and fully deterministic.
func FormatAmount(amount decimal.Decimal, currency string) string {
	s := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := sign + strings.Join(groups, " ") + "." + fracPart
	if currency != "" {
		out += " " + currency
	}
	return out
}

// formatDate renders a date for display, empty for the zero time.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
