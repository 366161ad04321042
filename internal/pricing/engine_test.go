package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/farmer-shop/internal/pricing"
)

func TestComputeExampleBasket(t *testing.T) {
	summary := pricing.Compute([]pricing.Item{
		{Qty: 3, UnitPrice: decimal.RequireFromString("2.00")},
		{Qty: 2, UnitPrice: decimal.RequireFromString("1.50")},
	}, decimal.RequireFromString("0.05"))

	require.Equal(t, 5, summary.TotalQuantity)
	require.Equal(t, "9.00", pricing.Fixed(summary.Subtotal))
	require.Equal(t, "0.45", pricing.Fixed(summary.Tax))
	require.Equal(t, "9.45", pricing.Fixed(summary.GrandTotal))
	require.Len(t, summary.Lines, 2)
	require.Equal(t, "$6.00", pricing.Format(summary.Lines[0].LineTotal))
	require.Equal(t, "$3.00", pricing.Format(summary.Lines[1].LineTotal))
}

func TestComputeKeepsFullPrecisionUntilPresentation(t *testing.T) {
	rate := decimal.RequireFromString("0.05")
	summary := pricing.Compute([]pricing.Item{
		{Qty: 1, UnitPrice: decimal.RequireFromString("0.333")},
		{Qty: 1, UnitPrice: decimal.RequireFromString("0.333")},
		{Qty: 1, UnitPrice: decimal.RequireFromString("0.334")},
	}, rate)

	require.True(t, summary.Subtotal.Equal(decimal.NewFromInt(1)))
	require.True(t, summary.Tax.Equal(summary.Subtotal.Mul(rate)))
	require.True(t, summary.GrandTotal.Equal(summary.Subtotal.Add(summary.Tax)))
	require.Equal(t, "1.05", pricing.Fixed(summary.GrandTotal))
}

func TestComputeEmpty(t *testing.T) {
	summary := pricing.Compute(nil, decimal.RequireFromString("0.05"))
	require.Empty(t, summary.Lines)
	require.Zero(t, summary.TotalQuantity)
	require.True(t, summary.Subtotal.IsZero())
	require.True(t, summary.Tax.IsZero())
	require.True(t, summary.GrandTotal.IsZero())
}

func TestComputeSkipsNonPositiveQuantities(t *testing.T) {
	summary := pricing.Compute([]pricing.Item{{Qty: 0, UnitPrice: decimal.NewFromInt(4)}}, decimal.Zero)
	require.Empty(t, summary.Lines)
	require.True(t, summary.Subtotal.IsZero())
}

func TestPercentAndParseRate(t *testing.T) {
	rate, err := pricing.ParseRate(" 0.12 ")
	require.NoError(t, err)
	require.Equal(t, "12", pricing.Percent(rate))

	_, err = pricing.ParseRate("-0.1")
	require.Error(t, err)
	_, err = pricing.ParseRate("1")
	require.Error(t, err)
	_, err = pricing.ParseRate("abc")
	require.Error(t, err)
}
