package invoices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrHasPayments rejects deletion of an invoice with recorded payments.
	ErrHasPayments = errors.New("cannot delete invoices with payments")
	// ErrUnknownStatus rejects a status value outside the enumeration.
	ErrUnknownStatus = errors.New("unknown invoice status")
)

// Service handles invoice business logic: totals derivation, the status
// lifecycle and payment accumulation.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService builds a Service instance.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

func buildItems(inputs []LineItemInput) []LineItem {
	items := make([]LineItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, LineItem{
			ID:          uuid.New(),
			Description: in.Description,
			Quantity:    in.Quantity,
			Rate:        in.Rate,
			Amount:      ItemAmount(in.Quantity, in.Rate),
		})
	}
	return items
}

// Create creates an invoice with its initial item set. Totals are derived
// from the items and persisted together with them.
func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	status := req.Status
	if status == "" {
		status = StatusDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStatus, status)
	}

	now := s.now()
	number := req.Number
	if number == "" {
		number = GenerateNumber(now)
	}
	issueDate := now
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	items := buildItems(req.Items)
	totals := ComputeTotals(items, req.TaxRate, req.Discount)

	inv := &Invoice{
		ID:        uuid.New(),
		Number:    number,
		ClientID:  req.ClientID,
		ProjectID: req.ProjectID,
		IssueDate: issueDate,
		DueDate:   req.DueDate,
		Currency:  currency,
		TaxRate:   req.TaxRate,
		Discount:  req.Discount,
		Subtotal:  totals.Subtotal,
		TaxAmount: totals.TaxAmount,
		Total:     totals.Total,
		Status:    status,
		Notes:     req.Notes,
		Terms:     req.Terms,
		Items:     items,
	}
	for i := range inv.Items {
		inv.Items[i].InvoiceID = inv.ID
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		return repo.Create(ctx, inv)
	})
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return inv, nil
}

// Get loads an invoice and opportunistically applies the overdue correction.
// A failure to persist the correction is logged and never fails the read.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*InvoiceWithRelations, error) {
	rel, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if status, corrected := OverdueCorrection(&rel.Invoice, s.now()); corrected {
		if err := s.repo.UpdateStatus(ctx, rel.ID, status); err != nil {
			s.logger.Warn("persist overdue correction",
				slog.String("invoice", rel.Number),
				slog.Any("error", err))
		}
		rel.Status = status
	}
	return rel, nil
}

// List returns invoices with client and project summaries.
func (s *Service) List(ctx context.Context, req ListInvoicesRequest) ([]InvoiceWithRelations, error) {
	if req.Status != "" && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStatus, req.Status)
	}
	return s.repo.List(ctx, req)
}

// Update edits invoice fields. A provided item list wholesale-replaces the
// stored items and recomputes totals from them; otherwise a tax rate or
// discount change recomputes totals from the stored subtotal. Both writes
// land in the same transaction as the field update.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceWithRelations, error) {
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		rel, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		inv := &rel.Invoice

		if req.ClientID != nil {
			inv.ClientID = *req.ClientID
		}
		if req.ProjectID != nil {
			inv.ProjectID = req.ProjectID
		}
		if req.IssueDate != nil {
			inv.IssueDate = *req.IssueDate
		}
		if req.DueDate != nil {
			inv.DueDate = *req.DueDate
		}
		if req.Currency != nil {
			inv.Currency = *req.Currency
		}
		if req.TaxRate != nil {
			inv.TaxRate = *req.TaxRate
		}
		if req.Discount != nil {
			inv.Discount = *req.Discount
		}
		if req.Notes != nil {
			inv.Notes = req.Notes
		}
		if req.Terms != nil {
			inv.Terms = req.Terms
		}

		replaceItems := req.Items != nil
		var totals Totals
		if replaceItems {
			inv.Items = buildItems(*req.Items)
			for i := range inv.Items {
				inv.Items[i].InvoiceID = inv.ID
			}
			totals = ComputeTotals(inv.Items, inv.TaxRate, inv.Discount)
		} else {
			totals = TotalsFromSubtotal(inv.Subtotal, inv.TaxRate, inv.Discount)
		}
		inv.Subtotal = totals.Subtotal
		inv.TaxAmount = totals.TaxAmount
		inv.Total = totals.Total

		return repo.Update(ctx, inv, replaceItems)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes an invoice. Invoices with recorded payments cannot be
// deleted.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		rel, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if len(rel.Payments) > 0 {
			return ErrHasPayments
		}
		return repo.Delete(ctx, id)
	})
}

// ChangeStatus validates and applies an explicit status-change request. A
// fully paid invoice is forced to paid regardless of the requested status.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, requested Status) (*InvoiceWithRelations, error) {
	if !requested.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStatus, requested)
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		rel, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		next, err := ResolveStatusChange(&rel.Invoice, requested)
		if err != nil {
			return err
		}
		if next == rel.Status {
			return nil
		}
		return repo.UpdateStatus(ctx, id, next)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// SweepOverdue marks every sent, unpaid invoice past its due date as
// overdue. Due dates are compared at day granularity.
func (s *Service) SweepOverdue(ctx context.Context) (int64, error) {
	n, err := s.repo.MarkOverdue(ctx, truncateToDay(s.now()))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("invoices marked overdue", slog.Int64("count", n))
	}
	return n, nil
}

// RecordPayment appends a payment to an invoice and re-evaluates paid state:
// once recorded payments cover the total, the stored status flips to paid.
// The whole exchange runs in one transaction so two concurrent payments
// cannot both miss the flip.
func (s *Service) RecordPayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	paymentDate := s.now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}
	payment := &Payment{
		ID:          uuid.New(),
		InvoiceID:   req.InvoiceID,
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		Method:      req.Method,
		Notes:       req.Notes,
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		rel, err := repo.Get(ctx, req.InvoiceID)
		if err != nil {
			return err
		}
		if err := repo.CreatePayment(ctx, payment); err != nil {
			return err
		}
		rel.Payments = append(rel.Payments, *payment)
		if rel.IsPaid() && rel.Status != StatusPaid {
			return repo.UpdateStatus(ctx, rel.ID, StatusPaid)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}
