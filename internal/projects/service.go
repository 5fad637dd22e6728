package projects

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Service handles project business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create creates an active project.
func (s *Service) Create(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	p := &Project{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		ClientID:    req.ClientID,
		Status:      StatusActive,
		Budget:      req.Budget,
		Currency:    currency,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

// Get loads one project.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	return s.repo.Get(ctx, id)
}

// List returns projects matching the filter.
func (s *Service) List(ctx context.Context, req ListProjectsRequest) ([]Project, error) {
	return s.repo.List(ctx, req)
}

// Update edits project fields.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateProjectRequest) (*Project, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.ClientID != nil {
		p.ClientID = *req.ClientID
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.Budget != nil {
		p.Budget = req.Budget
	}
	if req.Currency != nil {
		p.Currency = *req.Currency
	}
	if req.StartDate != nil {
		p.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		p.EndDate = req.EndDate
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a project unless invoices reference it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
