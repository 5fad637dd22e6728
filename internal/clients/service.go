package clients

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Service handles client business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create creates a client with active status and default payment terms.
func (s *Service) Create(ctx context.Context, req CreateClientRequest) (*Client, error) {
	terms := DefaultPaymentTerms
	if req.PaymentTerms != nil {
		terms = *req.PaymentTerms
	}
	c := &Client{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Company:      req.Company,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
		TaxID:        req.TaxID,
		PaymentTerms: terms,
		Notes:        req.Notes,
		Status:       StatusActive,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return c, nil
}

// Get loads one client.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.repo.Get(ctx, id)
}

// List returns clients matching the filter.
func (s *Service) List(ctx context.Context, req ListClientsRequest) ([]Client, error) {
	return s.repo.List(ctx, req)
}

// Update edits client fields.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*Client, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Company != nil {
		c.Company = req.Company
	}
	if req.Address != nil {
		c.Address = req.Address
	}
	if req.City != nil {
		c.City = req.City
	}
	if req.State != nil {
		c.State = req.State
	}
	if req.ZipCode != nil {
		c.ZipCode = req.ZipCode
	}
	if req.Country != nil {
		c.Country = req.Country
	}
	if req.TaxID != nil {
		c.TaxID = req.TaxID
	}
	if req.PaymentTerms != nil {
		c.PaymentTerms = *req.PaymentTerms
	}
	if req.Notes != nil {
		c.Notes = req.Notes
	}
	if req.Status != nil {
		c.Status = *req.Status
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a client. Clients referenced by invoices or projects are
// kept and the call fails with ErrHasInvoices.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
