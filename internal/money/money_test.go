package money

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSymbol(t *testing.T) {
	require.Equal(t, "$", Symbol("USD"))
	require.Equal(t, "₹", Symbol("INR"))
	require.Equal(t, "CHF", Symbol("CHF"))
}

func TestFormatGrouping(t *testing.T) {
	require.Equal(t, "$1,234.50", Format(1234.5, "USD"))
	require.Equal(t, "€0.00", Format(0, "EUR"))
}

func TestFormatIndianGrouping(t *testing.T) {
	require.Equal(t, "₹1,23,456.78", Format(123456.78, "INR"))
}

func TestFormatPlain(t *testing.T) {
	require.Equal(t, "12,500.00", FormatPlain(12500, "USD"))
	require.Equal(t, "-88.00", FormatPlain(-88, "EUR"))
	require.Equal(t, "1,23,456.78", FormatPlain(123456.78, "INR"))
	require.NotContains(t, FormatPlain(123456.78, "INR"), "₹")
}
