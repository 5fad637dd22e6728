package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Service handles the business profile. Reads before any profile has been
// saved return a blank profile so callers can render sensible defaults.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get returns the stored profile, or an empty one if none exists yet.
func (s *Service) Get(ctx context.Context) (*Settings, error) {
	settings, err := s.repo.Get(ctx)
	if errors.Is(err, ErrNotFound) {
		return &Settings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// Update merges the request into the stored profile and upserts it.
func (s *Service) Update(ctx context.Context, req UpdateSettingsRequest) (*Settings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.BusinessName != nil {
		settings.BusinessName = *req.BusinessName
	}
	if req.BusinessEmail != nil {
		settings.BusinessEmail = *req.BusinessEmail
	}
	if req.BusinessPhone != nil {
		settings.BusinessPhone = req.BusinessPhone
	}
	if req.BusinessAddress != nil {
		settings.BusinessAddress = req.BusinessAddress
	}
	if req.BusinessCity != nil {
		settings.BusinessCity = req.BusinessCity
	}
	if req.BusinessState != nil {
		settings.BusinessState = req.BusinessState
	}
	if req.BusinessZipCode != nil {
		settings.BusinessZipCode = req.BusinessZipCode
	}
	if req.BusinessCountry != nil {
		settings.BusinessCountry = req.BusinessCountry
	}
	if req.TaxID != nil {
		settings.TaxID = req.TaxID
	}
	if req.GSTNumber != nil {
		settings.GSTNumber = req.GSTNumber
	}
	if req.PANNumber != nil {
		settings.PANNumber = req.PANNumber
	}
	if req.BankName != nil {
		settings.BankName = req.BankName
	}
	if req.BankAccountName != nil {
		settings.BankAccountName = req.BankAccountName
	}
	if req.BankAccountNo != nil {
		settings.BankAccountNo = req.BankAccountNo
	}
	if req.BankIFSC != nil {
		settings.BankIFSC = req.BankIFSC
	}
	if req.EmailHost != nil {
		settings.EmailHost = req.EmailHost
	}
	if req.EmailPort != nil {
		settings.EmailPort = req.EmailPort
	}
	if req.EmailUser != nil {
		settings.EmailUser = req.EmailUser
	}
	if req.EmailPassword != nil {
		settings.EmailPassword = req.EmailPassword
	}
	if req.EmailFromName != nil {
		settings.EmailFromName = req.EmailFromName
	}
	if req.EmailFromAddress != nil {
		settings.EmailFromAddress = req.EmailFromAddress
	}
	if req.Signature != nil {
		settings.Signature = req.Signature
	}

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	s.logger.Info("settings updated", slog.String("business", settings.BusinessName))
	return settings, nil
}
