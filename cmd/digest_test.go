package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findigest/internal/digest"
	"findigest/internal/source"
)

var testNow = time.Date(2026, 8, 27, 13, 30, 0, 0, time.UTC)

func TestParsePeriodDefaultsToCurrentMonth(t *testing.T) {
	p, err := parsePeriod("", "", testNow)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-01", p.StartISO())
	assert.Equal(t, "2026-08-27", p.EndISO())
}

func TestParsePeriodEndOnlyStartsAtFirstOfEndMonth(t *testing.T) {
	p, err := parsePeriod("", "2026-03-15", testNow)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", p.StartISO())
	assert.Equal(t, "2026-03-15", p.EndISO())
}

func TestParsePeriodStartOnlyEndsToday(t *testing.T) {
	p, err := parsePeriod("2026-08-01", "", testNow)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-01", p.StartISO())
	assert.Equal(t, "2026-08-27", p.EndISO())
}

func TestParsePeriodExplicitRange(t *testing.T) {
	p, err := parsePeriod("2026-03-01", "2026-03-31", testNow)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", p.StartISO())
	assert.Equal(t, "2026-03-31", p.EndISO())
}

func TestParsePeriodRejectsBadInput(t *testing.T) {
	_, err := parsePeriod("03/01/2026", "", testNow)
	assert.Error(t, err)

	_, err = parsePeriod("", "not-a-date", testNow)
	assert.Error(t, err)

	// Reversed ranges are fatal argument errors.
	_, err = parsePeriod("2026-03-31", "2026-03-01", testNow)
	assert.Error(t, err)
}

func testClient(t *testing.T) *source.Client {
	t.Helper()
	client, err := source.NewClient(source.Config{
		BaseURL: "http://localhost:5434",
		Company: "acme",
	})
	require.NoError(t, err)
	return client
}

func moduleNames(modules []digest.Module) []string {
	names := make([]string, 0, len(modules))
	for _, m := range modules {
		names = append(names, m.Name())
	}
	return names
}

func TestSelectModulesDefaultsToAll(t *testing.T) {
	modules, err := selectModules(testClient(t), "")
	require.NoError(t, err)
	assert.Equal(t, []string{digest.ModuleInvoices, digest.ModuleDebtors}, moduleNames(modules))
}

func TestSelectModulesSubset(t *testing.T) {
	modules, err := selectModules(testClient(t), "debtors")
	require.NoError(t, err)
	assert.Equal(t, []string{digest.ModuleDebtors}, moduleNames(modules))
}

func TestSelectModulesKeepsRegistrationOrder(t *testing.T) {
	modules, err := selectModules(testClient(t), "debtors, invoices")
	require.NoError(t, err)
	assert.Equal(t, []string{digest.ModuleInvoices, digest.ModuleDebtors}, moduleNames(modules))
}

func TestSelectModulesUnknownNameIsFatal(t *testing.T) {
	_, err := selectModules(testClient(t), "payroll")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"payroll"`)
}

func TestSelectModulesReportsAllUnknownNamesDeterministically(t *testing.T) {
	_, err := selectModules(testClient(t), "zebra,invoices,alpha")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"alpha", "zebra"`)
}

func TestFormatDigest(t *testing.T) {
	result := &digest.CombinedResult{
		ID:          "test",
		Source:      "acme",
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
		GeneratedAt: testNow,
	}

	html, err := formatDigest(result, "html", "default")
	require.NoError(t, err)
	assert.Contains(t, html, "<!doctype html>")

	jsonOut, err := formatDigest(result, "json", "default")
	require.NoError(t, err)
	assert.Contains(t, jsonOut, `"period_start": "2026-03-01"`)

	_, err = formatDigest(result, "xml", "default")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"xml"`)
}
