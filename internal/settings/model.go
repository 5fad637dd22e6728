// Package settings stores the singleton business profile used on invoices
// and outgoing email.
package settings

import (
	"time"

	"github.com/google/uuid"
)

// Settings is the business profile. A single row exists per installation.
type Settings struct {
	ID               uuid.UUID `json:"id"`
	BusinessName     string    `json:"business_name"`
	BusinessEmail    string    `json:"business_email"`
	BusinessPhone    *string   `json:"business_phone,omitempty"`
	BusinessAddress  *string   `json:"business_address,omitempty"`
	BusinessCity     *string   `json:"business_city,omitempty"`
	BusinessState    *string   `json:"business_state,omitempty"`
	BusinessZipCode  *string   `json:"business_zip_code,omitempty"`
	BusinessCountry  *string   `json:"business_country,omitempty"`
	TaxID            *string   `json:"tax_id,omitempty"`
	GSTNumber        *string   `json:"gst_number,omitempty"`
	PANNumber        *string   `json:"pan_number,omitempty"`
	BankName         *string   `json:"bank_name,omitempty"`
	BankAccountName  *string   `json:"bank_account_name,omitempty"`
	BankAccountNo    *string   `json:"bank_account_no,omitempty"`
	BankIFSC         *string   `json:"bank_ifsc,omitempty"`
	EmailHost        *string   `json:"email_host,omitempty"`
	EmailPort        *int      `json:"email_port,omitempty"`
	EmailUser        *string   `json:"email_user,omitempty"`
	EmailPassword    *string   `json:"-"`
	EmailFromName    *string   `json:"email_from_name,omitempty"`
	EmailFromAddress *string   `json:"email_from_address,omitempty"`
	Signature        *string   `json:"signature,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SMTPConfigured reports whether outgoing email can be sent.
func (s *Settings) SMTPConfigured() bool {
	return s.EmailHost != nil && *s.EmailHost != "" &&
		s.EmailPort != nil && *s.EmailPort > 0 &&
		s.EmailFromAddress != nil && *s.EmailFromAddress != ""
}
