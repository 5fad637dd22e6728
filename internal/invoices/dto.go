package invoices

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// LineItemInput is one row of an invoice's item list as submitted by the
// caller. Amount is always derived server-side.
type LineItemInput struct {
	Description string  `json:"description" validate:"required,max=500"`
	Quantity    float64 `json:"quantity" validate:"gte=0"`
	Rate        float64 `json:"rate" validate:"gte=0"`
}

// CreateInvoiceRequest creates an invoice together with its initial item set.
type CreateInvoiceRequest struct {
	Number    string          `json:"invoice_number" validate:"omitempty,max=50"`
	ClientID  uuid.UUID       `json:"client_id" validate:"required"`
	ProjectID *uuid.UUID      `json:"project_id,omitempty"`
	IssueDate *time.Time      `json:"issue_date,omitempty"`
	DueDate   time.Time       `json:"due_date" validate:"required"`
	Currency  string          `json:"currency" validate:"omitempty,len=3"`
	TaxRate   float64         `json:"tax_rate" validate:"gte=0"`
	Discount  float64         `json:"discount" validate:"gte=0"`
	Status    Status          `json:"status" validate:"omitempty"`
	Notes     *string         `json:"notes,omitempty"`
	Terms     *string         `json:"terms,omitempty"`
	Items     []LineItemInput `json:"items" validate:"dive"`
}

// UpdateInvoiceRequest updates invoice fields. A non-nil Items slice
// wholesale-replaces the item list and recomputes totals; otherwise totals are
// recomputed from the stored subtotal when tax rate or discount change.
type UpdateInvoiceRequest struct {
	ClientID  *uuid.UUID       `json:"client_id,omitempty"`
	ProjectID *uuid.UUID       `json:"project_id,omitempty"`
	IssueDate *time.Time       `json:"issue_date,omitempty"`
	DueDate   *time.Time       `json:"due_date,omitempty"`
	Currency  *string          `json:"currency,omitempty" validate:"omitempty,len=3"`
	TaxRate   *float64         `json:"tax_rate,omitempty" validate:"omitempty,gte=0"`
	Discount  *float64         `json:"discount,omitempty" validate:"omitempty,gte=0"`
	Notes     *string          `json:"notes,omitempty"`
	Terms     *string          `json:"terms,omitempty"`
	Items     *[]LineItemInput `json:"items,omitempty" validate:"omitempty,dive"`
}

// ChangeStatusRequest asks for an explicit status transition.
type ChangeStatusRequest struct {
	Status Status `json:"status" validate:"required"`
}

// CreatePaymentRequest records a payment against an invoice.
type CreatePaymentRequest struct {
	InvoiceID   uuid.UUID  `json:"invoice_id" validate:"required"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
	Method      string     `json:"payment_method" validate:"required,max=100"`
	Notes       *string    `json:"notes,omitempty"`
}

// ListInvoicesRequest filters the invoice listing.
type ListInvoicesRequest struct {
	Status    Status
	ClientID  *uuid.UUID
	ProjectID *uuid.UUID
	Limit     int
	Offset    int
}

// ClientRef is the client summary embedded in invoice responses.
type ClientRef struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Company *string   `json:"company,omitempty"`
}

// ProjectRef is the project summary embedded in invoice responses.
type ProjectRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// InvoiceWithRelations is an invoice with its client and project summaries
// materialized for API responses and rendering. AmountPaid carries the payment
// aggregate so list responses don't need every payment row loaded.
type InvoiceWithRelations struct {
	Invoice
	AmountPaid float64     `json:"amount_paid"`
	Client     *ClientRef  `json:"client,omitempty"`
	Project    *ProjectRef `json:"project,omitempty"`
}

// PaidAmount returns the recorded payment total, falling back to the
// aggregate when individual payment rows are not loaded.
func (rel *InvoiceWithRelations) PaidAmount() float64 {
	if len(rel.Payments) > 0 {
		return rel.TotalPaid()
	}
	return rel.AmountPaid
}

// MarshalJSON adds the display status alongside the stored one, so consumers
// see cancelled-wins and the paid override without recomputing them.
func (rel InvoiceWithRelations) MarshalJSON() ([]byte, error) {
	type alias InvoiceWithRelations
	return json.Marshal(struct {
		alias
		EffectiveStatus Status `json:"effective_status"`
	}{
		alias:           alias(rel),
		EffectiveStatus: effectiveDisplay(rel.Status, rel.PaidAmount(), rel.Total),
	})
}
