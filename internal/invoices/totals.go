package invoices

// Totals carries the derived financial fields of an invoice.
type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"tax_amount"`
	Total     float64 `json:"total"`
}

// ItemAmount derives a line item's amount from its quantity and rate.
func ItemAmount(quantity, rate float64) float64 {
	return quantity * rate
}

// ComputeTotals derives subtotal, tax amount and total from line items, a tax
// rate (percentage) and a flat discount. Tax applies to the post-discount
// base: taxAmount = (subtotal − discount) × taxRate/100. A discount larger
// than the subtotal yields a negative taxable base and possibly a negative
// total; that is accepted, not an error.
func ComputeTotals(items []LineItem, taxRate, discount float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += ItemAmount(item.Quantity, item.Rate)
	}
	return TotalsFromSubtotal(subtotal, taxRate, discount)
}

// TotalsFromSubtotal recomputes tax amount and total for an already-known
// subtotal. Used when only the tax rate or the discount changes and the item
// list stays untouched.
func TotalsFromSubtotal(subtotal, taxRate, discount float64) Totals {
	taxAmount := (subtotal - discount) * (taxRate / 100)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal - discount + taxAmount,
	}
}
