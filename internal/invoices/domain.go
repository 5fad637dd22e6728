package invoices

import (
	"time"

	"github.com/google/uuid"
)

// Status enumerates invoice lifecycle statuses.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusOverdue   Status = "overdue"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusOverdue, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// LineItem is one billable row on an invoice. Amount is derived from
// quantity×rate and stored redundantly alongside the inputs.
type LineItem struct {
	ID          uuid.UUID `json:"id"`
	InvoiceID   uuid.UUID `json:"invoice_id"`
	Description string    `json:"description"`
	Quantity    float64   `json:"quantity"`
	Rate        float64   `json:"rate"`
	Amount      float64   `json:"amount"`
}

// Payment is an amount recorded against an invoice. Payments are append-only;
// they are never edited after creation.
type Payment struct {
	ID          uuid.UUID `json:"id"`
	InvoiceID   uuid.UUID `json:"invoice_id"`
	Amount      float64   `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
	Method      string    `json:"payment_method"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Invoice is a billable document with line items, derived totals and a
// lifecycle status. Subtotal, TaxAmount and Total are always recomputed and
// persisted together whenever items, tax rate or discount change.
type Invoice struct {
	ID        uuid.UUID  `json:"id"`
	Number    string     `json:"invoice_number"`
	ClientID  uuid.UUID  `json:"client_id"`
	ProjectID *uuid.UUID `json:"project_id,omitempty"`
	IssueDate time.Time  `json:"issue_date"`
	DueDate   time.Time  `json:"due_date"`
	Currency  string     `json:"currency"`
	TaxRate   float64    `json:"tax_rate"`
	Discount  float64    `json:"discount"`
	Subtotal  float64    `json:"subtotal"`
	TaxAmount float64    `json:"tax_amount"`
	Total     float64    `json:"total"`
	Status    Status     `json:"status"`
	Notes     *string    `json:"notes,omitempty"`
	Terms     *string    `json:"terms,omitempty"`
	Items     []LineItem `json:"items"`
	Payments  []Payment  `json:"payments"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TotalPaid sums the recorded payments.
func (inv *Invoice) TotalPaid() float64 {
	var sum float64
	for _, p := range inv.Payments {
		sum += p.Amount
	}
	return sum
}

// AmountDue is the remaining balance. Computed on read, never persisted.
func (inv *Invoice) AmountDue() float64 {
	return inv.Total - inv.TotalPaid()
}

// IsPaid reports whether recorded payments cover the total.
func (inv *Invoice) IsPaid() bool {
	return inv.TotalPaid() >= inv.Total
}
