package settings

// UpdateSettingsRequest upserts the business profile. Omitted fields keep
// their stored values.
type UpdateSettingsRequest struct {
	BusinessName     *string `json:"business_name,omitempty" validate:"omitempty,min=1,max=255"`
	BusinessEmail    *string `json:"business_email,omitempty" validate:"omitempty,email"`
	BusinessPhone    *string `json:"business_phone,omitempty" validate:"omitempty,max=50"`
	BusinessAddress  *string `json:"business_address,omitempty" validate:"omitempty,max=500"`
	BusinessCity     *string `json:"business_city,omitempty" validate:"omitempty,max=100"`
	BusinessState    *string `json:"business_state,omitempty" validate:"omitempty,max=100"`
	BusinessZipCode  *string `json:"business_zip_code,omitempty" validate:"omitempty,max=20"`
	BusinessCountry  *string `json:"business_country,omitempty" validate:"omitempty,max=100"`
	TaxID            *string `json:"tax_id,omitempty" validate:"omitempty,max=100"`
	GSTNumber        *string `json:"gst_number,omitempty" validate:"omitempty,max=50"`
	PANNumber        *string `json:"pan_number,omitempty" validate:"omitempty,max=20"`
	BankName         *string `json:"bank_name,omitempty" validate:"omitempty,max=255"`
	BankAccountName  *string `json:"bank_account_name,omitempty" validate:"omitempty,max=255"`
	BankAccountNo    *string `json:"bank_account_no,omitempty" validate:"omitempty,max=50"`
	BankIFSC         *string `json:"bank_ifsc,omitempty" validate:"omitempty,max=20"`
	EmailHost        *string `json:"email_host,omitempty" validate:"omitempty,max=255"`
	EmailPort        *int    `json:"email_port,omitempty" validate:"omitempty,gt=0,lte=65535"`
	EmailUser        *string `json:"email_user,omitempty" validate:"omitempty,max=255"`
	EmailPassword    *string `json:"email_password,omitempty" validate:"omitempty,max=255"`
	EmailFromName    *string `json:"email_from_name,omitempty" validate:"omitempty,max=255"`
	EmailFromAddress *string `json:"email_from_address,omitempty" validate:"omitempty,email"`
	Signature        *string `json:"signature,omitempty" validate:"omitempty,max=2000"`
}
