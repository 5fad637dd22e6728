package clients

// CreateClientRequest creates a client.
type CreateClientRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Email        string  `json:"email" validate:"required,email"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Company      *string `json:"company,omitempty" validate:"omitempty,max=255"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=500"`
	City         *string `json:"city,omitempty" validate:"omitempty,max=100"`
	State        *string `json:"state,omitempty" validate:"omitempty,max=100"`
	ZipCode      *string `json:"zip_code,omitempty" validate:"omitempty,max=20"`
	Country      *string `json:"country,omitempty" validate:"omitempty,max=100"`
	TaxID        *string `json:"tax_id,omitempty" validate:"omitempty,max=100"`
	PaymentTerms *int    `json:"payment_terms,omitempty" validate:"omitempty,gte=0,lte=365"`
	Notes        *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateClientRequest updates client fields.
type UpdateClientRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Company      *string `json:"company,omitempty" validate:"omitempty,max=255"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=500"`
	City         *string `json:"city,omitempty" validate:"omitempty,max=100"`
	State        *string `json:"state,omitempty" validate:"omitempty,max=100"`
	ZipCode      *string `json:"zip_code,omitempty" validate:"omitempty,max=20"`
	Country      *string `json:"country,omitempty" validate:"omitempty,max=100"`
	TaxID        *string `json:"tax_id,omitempty" validate:"omitempty,max=100"`
	PaymentTerms *int    `json:"payment_terms,omitempty" validate:"omitempty,gte=0,lte=365"`
	Notes        *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// ListClientsRequest filters the client listing.
type ListClientsRequest struct {
	Status string
	Search string
	Limit  int
	Offset int
}
