package invoices

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeTotalsSubtotalIsSumOfItemAmounts(t *testing.T) {
	items := []LineItem{
		{Quantity: 2, Rate: 50},
		{Quantity: 1, Rate: 25},
		{Quantity: 0, Rate: 999},
	}
	totals := ComputeTotals(items, 0, 0)
	require.Equal(t, 125.0, totals.Subtotal)
	require.Equal(t, 0.0, totals.TaxAmount)
	require.Equal(t, 125.0, totals.Total)
}

func TestComputeTotalsTaxAppliesAfterDiscount(t *testing.T) {
	items := []LineItem{{Quantity: 1, Rate: 100}}
	totals := ComputeTotals(items, 10, 20)
	require.Equal(t, 100.0, totals.Subtotal)
	require.Equal(t, 8.0, totals.TaxAmount)
	require.Equal(t, 88.0, totals.Total)
}

func TestComputeTotalsScenario(t *testing.T) {
	items := []LineItem{
		{Quantity: 2, Rate: 50},
		{Quantity: 1, Rate: 25},
	}
	totals := ComputeTotals(items, 8, 10)
	require.Equal(t, 125.0, totals.Subtotal)
	require.InDelta(t, 9.2, totals.TaxAmount, 1e-9)
	require.InDelta(t, 124.2, totals.Total, 1e-9)
}

func TestComputeTotalsDiscountLargerThanSubtotal(t *testing.T) {
	items := []LineItem{{Quantity: 1, Rate: 50}}
	totals := ComputeTotals(items, 10, 80)
	require.Equal(t, 50.0, totals.Subtotal)
	require.InDelta(t, -3.0, totals.TaxAmount, 1e-9)
	require.InDelta(t, -33.0, totals.Total, 1e-9)
}

func TestComputeTotalsEmptyItems(t *testing.T) {
	totals := ComputeTotals(nil, 18, 0)
	require.Equal(t, 0.0, totals.Subtotal)
	require.Equal(t, 0.0, totals.TaxAmount)
	require.Equal(t, 0.0, totals.Total)
}

func TestComputeTotalsIdempotent(t *testing.T) {
	items := []LineItem{
		{Quantity: 3.5, Rate: 80},
		{Quantity: 12, Rate: 7.25},
	}
	first := ComputeTotals(items, 8.25, 15)
	second := ComputeTotals(items, 8.25, 15)
	require.Equal(t, first, second)
}

func TestItemAmount(t *testing.T) {
	require.Equal(t, 100.0, ItemAmount(2, 50))
	require.Equal(t, 0.0, ItemAmount(0, 50))
}
