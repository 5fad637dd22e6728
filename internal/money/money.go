// Package money formats numeric amounts for display. The domain packages carry
// plain float64 values; formatting happens only at presentation boundaries
// (PDFs and emails).
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
}

// Symbol returns the display symbol for a currency code, falling back to the
// code itself.
func Symbol(code string) string {
	if s, ok := symbols[code]; ok {
		return s
	}
	return code
}

func localeFor(code string) language.Tag {
	// Indian rupee amounts group as lakh/crore.
	if code == "INR" {
		return language.MustParse("en-IN")
	}
	return language.AmericanEnglish
}

// Format renders an amount with its currency symbol and locale-aware grouping,
// e.g. "$1,234.50" or "₹1,23,456.78".
func Format(amount float64, code string) string {
	p := message.NewPrinter(localeFor(code))
	return Symbol(code) + p.Sprintf("%.2f", amount)
}

// FormatPlain renders an amount with locale-aware grouping but no symbol. PDF
// output uses this with the currency code in column headers, since not every
// symbol is encodable in the core PDF fonts.
func FormatPlain(amount float64, code string) string {
	p := message.NewPrinter(localeFor(code))
	return p.Sprintf("%.2f", amount)
}
