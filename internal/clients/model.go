// Package clients manages the customer directory that invoices and projects
// are billed against.
package clients

import (
	"time"

	"github.com/google/uuid"
)

// Client is a billable customer.
type Client struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone,omitempty"`
	Company      *string   `json:"company,omitempty"`
	Address      *string   `json:"address,omitempty"`
	City         *string   `json:"city,omitempty"`
	State        *string   `json:"state,omitempty"`
	ZipCode      *string   `json:"zip_code,omitempty"`
	Country      *string   `json:"country,omitempty"`
	TaxID        *string   `json:"tax_id,omitempty"`
	PaymentTerms int       `json:"payment_terms"`
	Notes        *string   `json:"notes,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Client statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// DefaultPaymentTerms is the net payment window in days applied when a
// client does not specify one.
const DefaultPaymentTerms = 30
