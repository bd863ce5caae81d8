package report

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencyTotalAccumulates(t *testing.T) {
	ct := NewCurrencyTotal()
	ct.Add("CZK", decimal.NewFromInt(25000))
	ct.Add("CZK", decimal.NewFromInt(15000))
	ct.Add("EUR", decimal.NewFromInt(100))

	assert.Equal(t, 2, ct.Len())
	assert.True(t, ct.Get("CZK").Equal(decimal.NewFromInt(40000)))
	assert.True(t, ct.Get("EUR").Equal(decimal.NewFromInt(100)))
	assert.True(t, ct.Get("USD").Equal(decimal.Zero))
}

func TestCurrencyTotalKeepsFirstSeenOrder(t *testing.T) {
	ct := NewCurrencyTotal()
	ct.Add("EUR", decimal.NewFromInt(1))
	ct.Add("CZK", decimal.NewFromInt(2))
	ct.Add("EUR", decimal.NewFromInt(3))
	ct.Add("USD", decimal.NewFromInt(4))

	assert.Equal(t, []string{"EUR", "CZK", "USD"}, ct.Codes())

	items := ct.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "EUR", items[0].Code)
	assert.True(t, items[0].Amount.Equal(decimal.NewFromInt(4)))
}

func TestCurrencyTotalMarshalJSONPreservesOrder(t *testing.T) {
	ct := NewCurrencyTotal()
	ct.Add("EUR", decimal.NewFromInt(10))
	ct.Add("CZK", decimal.RequireFromString("40000.5"))

	raw, err := json.Marshal(ct)
	require.NoError(t, err)
	assert.Equal(t, `{"EUR":10,"CZK":40000.5}`, string(raw))
}

func TestCurrencyTotalMarshalJSONEmpty(t *testing.T) {
	raw, err := json.Marshal(NewCurrencyTotal())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(raw))
}
