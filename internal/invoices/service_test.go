package invoices

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	invoices      map[uuid.UUID]*Invoice
	items         map[uuid.UUID][]LineItem
	payments      map[uuid.UUID][]Payment
	clientRefs    map[uuid.UUID]*ClientRef
	statusWrites  []Status
	failOnStatus  error
	paymentWrites int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		invoices:   make(map[uuid.UUID]*Invoice),
		items:      make(map[uuid.UUID][]LineItem),
		payments:   make(map[uuid.UUID][]Payment),
		clientRefs: make(map[uuid.UUID]*ClientRef),
	}
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, r)
}

func (r *memoryRepo) Create(ctx context.Context, inv *Invoice) error {
	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	stored := *inv
	r.invoices[inv.ID] = &stored
	r.items[inv.ID] = append([]LineItem(nil), inv.Items...)
	return nil
}

func (r *memoryRepo) Get(ctx context.Context, id uuid.UUID) (*InvoiceWithRelations, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *inv
	out.Items = append([]LineItem(nil), r.items[id]...)
	out.Payments = append([]Payment(nil), r.payments[id]...)
	rel := &InvoiceWithRelations{Invoice: out, Client: r.clientRefs[inv.ClientID]}
	rel.AmountPaid = rel.TotalPaid()
	return rel, nil
}

func (r *memoryRepo) List(ctx context.Context, req ListInvoicesRequest) ([]InvoiceWithRelations, error) {
	var out []InvoiceWithRelations
	for id := range r.invoices {
		rel, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if req.Status != "" && rel.Status != req.Status {
			continue
		}
		out = append(out, *rel)
	}
	return out, nil
}

func (r *memoryRepo) Update(ctx context.Context, inv *Invoice, replaceItems bool) error {
	stored, ok := r.invoices[inv.ID]
	if !ok {
		return ErrNotFound
	}
	updated := *inv
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	updated.Status = stored.Status
	r.invoices[inv.ID] = &updated
	if replaceItems {
		r.items[inv.ID] = append([]LineItem(nil), inv.Items...)
	}
	return nil
}

func (r *memoryRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	if r.failOnStatus != nil {
		return r.failOnStatus
	}
	inv, ok := r.invoices[id]
	if !ok {
		return ErrNotFound
	}
	inv.Status = status
	r.statusWrites = append(r.statusWrites, status)
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.invoices[id]; !ok {
		return ErrNotFound
	}
	delete(r.invoices, id)
	delete(r.items, id)
	delete(r.payments, id)
	return nil
}

func (r *memoryRepo) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	var n int64
	for id, inv := range r.invoices {
		if inv.Status != StatusSent || !inv.DueDate.Before(asOf) {
			continue
		}
		var paid float64
		for _, p := range r.payments[id] {
			paid += p.Amount
		}
		if paid >= inv.Total {
			continue
		}
		inv.Status = StatusOverdue
		n++
	}
	return n, nil
}

func (r *memoryRepo) CreatePayment(ctx context.Context, p *Payment) error {
	if _, ok := r.invoices[p.InvoiceID]; !ok {
		return ErrNotFound
	}
	p.CreatedAt = time.Now()
	r.payments[p.InvoiceID] = append(r.payments[p.InvoiceID], *p)
	r.paymentWrites++
	return nil
}

func newTestService(repo Repository) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, logger)
}

func TestCreateInvoiceDerivesTotals(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	inv, err := svc.Create(context.Background(), CreateInvoiceRequest{
		ClientID: uuid.New(),
		DueDate:  time.Now().AddDate(0, 0, 30),
		TaxRate:  10,
		Discount: 20,
		Items: []LineItemInput{
			{Description: "Design", Quantity: 2, Rate: 40},
			{Description: "Development", Quantity: 1, Rate: 20},
		},
	})
	require.NoError(t, err)
	require.Equal(t, StatusDraft, inv.Status)
	require.Equal(t, "USD", inv.Currency)
	require.InDelta(t, 100.0, inv.Subtotal, 1e-9)
	require.InDelta(t, 8.0, inv.TaxAmount, 1e-9)
	require.InDelta(t, 88.0, inv.Total, 1e-9)
	require.Regexp(t, `^INV-\d{6}-\d{4}$`, inv.Number)
	require.Len(t, inv.Items, 2)
	for _, item := range inv.Items {
		require.Equal(t, inv.ID, item.InvoiceID)
	}
}

func TestCreateInvoiceRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	_, err := svc.Create(context.Background(), CreateInvoiceRequest{
		ClientID: uuid.New(),
		DueDate:  time.Now(),
		Status:   Status("archived"),
	})
	require.ErrorIs(t, err, ErrUnknownStatus)
}

func seedInvoice(t *testing.T, repo *memoryRepo, svc *Service, status Status, dueDate time.Time) *Invoice {
	t.Helper()
	inv, err := svc.Create(context.Background(), CreateInvoiceRequest{
		ClientID: uuid.New(),
		DueDate:  dueDate,
		TaxRate:  10,
		Items: []LineItemInput{
			{Description: "Consulting", Quantity: 10, Rate: 20},
		},
	})
	require.NoError(t, err)
	repo.invoices[inv.ID].Status = status
	return inv
}

func TestGetAppliesOverdueCorrection(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	inv := seedInvoice(t, repo, svc, StatusSent, time.Now().AddDate(0, 0, -3))

	got, err := svc.Get(context.Background(), inv.ID)
	require.NoError(t, err)
	require.Equal(t, StatusOverdue, got.Status)
	require.Equal(t, []Status{StatusOverdue}, repo.statusWrites)
}

func TestGetOverdueCorrectionFailureDoesNotFailRead(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	inv := seedInvoice(t, repo, svc, StatusSent, time.Now().AddDate(0, 0, -3))
	repo.failOnStatus = context.DeadlineExceeded

	got, err := svc.Get(context.Background(), inv.ID)
	require.NoError(t, err)
	require.Equal(t, StatusOverdue, got.Status)
}

func TestGetLeavesFutureDueDateAlone(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	inv := seedInvoice(t, repo, svc, StatusSent, time.Now().AddDate(0, 0, 7))

	got, err := svc.Get(context.Background(), inv.ID)
	require.NoError(t, err)
	require.Equal(t, StatusSent, got.Status)
	require.Empty(t, repo.statusWrites)
}

func TestUpdateReplacesItemsAndRecomputes(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	inv := seedInvoice(t, repo, svc, StatusDraft, time.Now().AddDate(0, 0, 14))

	items := []LineItemInput{
		{Description: "Retainer", Quantity: 1, Rate: 500},
	}
	got, err := svc.Update(context.Background(), inv.ID, UpdateInvoiceRequest{Items: &items})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.InDelta(t, 500.0, got.Subtotal, 1e-9)
	require.InDelta(t, 50.0, got.TaxAmount, 1e-9)
	require.InDelta(t, 550.0, got.Total, 1e-9)
}

func TestUpdateTaxRateOnlyRecomputesFromStoredSubtotal(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	inv := seedInvoice(t, repo, svc, StatusDraft, time.Now().AddDate(0, 0, 14))

	taxRate := 8.0
	discount := 10.0
	got, err := svc.Update(context.Background(), inv.ID, UpdateInvoiceRequest{
		TaxRate:  &taxRate,
		Discount: &discount,
	})
	require.NoError(t, err)
	require.InDelta(t, 200.0, got.Subtotal, 1e-9)
	require.InDelta(t, 15.2, got.TaxAmount, 1e-9)
	require.InDelta(t, 205.2, got.Total, 1e-9)
}

func TestDeleteRejectsInvoiceWithPayments(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	inv := seedInvoice(t, repo, svc, StatusSent, time.Now().AddDate(0, 0, 14))

	_, err := svc.RecordPayment(context.Background(), CreatePaymentRequest{
		InvoiceID: inv.ID,
		Amount:    50,
		Method:    "bank_transfer",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), inv.ID)
	require.ErrorIs(t, err, ErrHasPayments)

	_, err = svc.Get(context.Background(), inv.ID)
	require.NoError(t, err)
}

func TestDeleteRemovesUnpaidInvoice(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	inv := seedInvoice(t, repo, svc, StatusDraft, time.Now().AddDate(0, 0, 14))

	require.NoError(t, svc.Delete(context.Background(), inv.ID))

	_, err := svc.Get(context.Background(), inv.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestChangeStatusHonorsTransitionTable(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	inv := seedInvoice(t, repo, svc, StatusDraft, time.Now().AddDate(0, 0, 14))

	got, err := svc.ChangeStatus(context.Background(), inv.ID, StatusSent)
	require.NoError(t, err)
	require.Equal(t, StatusSent, got.Status)

	_, err = svc.ChangeStatus(context.Background(), inv.ID, StatusDraft)
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, StatusSent, invalid.From)
	require.Equal(t, StatusDraft, invalid.To)
}

func TestChangeStatusForcesPaidWhenFullyPaid(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	inv := seedInvoice(t, repo, svc, StatusSent, time.Now().AddDate(0, 0, 14))

	// Payment rows seeded behind the service's back, so the stored status
	// still lags at sent when the cancel request arrives.
	repo.payments[inv.ID] = append(repo.payments[inv.ID], Payment{
		ID:        uuid.New(),
		InvoiceID: inv.ID,
		Amount:    inv.Total,
		Method:    "upi",
	})

	got, err := svc.ChangeStatus(context.Background(), inv.ID, StatusCancelled)
	require.NoError(t, err)
	require.Equal(t, StatusPaid, got.Status)

	// Once the stored status has caught up, cancel is a legal transition.
	got, err = svc.ChangeStatus(context.Background(), inv.ID, StatusCancelled)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, got.Status)
}

func TestRecordPaymentFlipsStatusWhenCovered(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	inv := seedInvoice(t, repo, svc, StatusSent, time.Now().AddDate(0, 0, 14))
	require.InDelta(t, 220.0, inv.Total, 1e-9)

	_, err := svc.RecordPayment(context.Background(), CreatePaymentRequest{
		InvoiceID: inv.ID,
		Amount:    120,
		Method:    "bank_transfer",
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), inv.ID)
	require.NoError(t, err)
	require.Equal(t, StatusSent, got.Status)
	require.InDelta(t, 100.0, got.AmountDue(), 1e-9)

	_, err = svc.RecordPayment(context.Background(), CreatePaymentRequest{
		InvoiceID: inv.ID,
		Amount:    100,
		Method:    "bank_transfer",
	})
	require.NoError(t, err)

	got, err = svc.Get(context.Background(), inv.ID)
	require.NoError(t, err)
	require.Equal(t, StatusPaid, got.Status)
	require.True(t, got.IsPaid())
}

func TestSweepOverdueMarksSentUnpaidInvoices(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	pastDue := seedInvoice(t, repo, svc, StatusSent, time.Now().AddDate(0, 0, -5))
	seedInvoice(t, repo, svc, StatusSent, time.Now().AddDate(0, 0, 5))
	paidOff := seedInvoice(t, repo, svc, StatusSent, time.Now().AddDate(0, 0, -5))
	repo.payments[paidOff.ID] = []Payment{{InvoiceID: paidOff.ID, Amount: paidOff.Total}}

	n, err := svc.SweepOverdue(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	require.Equal(t, StatusOverdue, repo.invoices[pastDue.ID].Status)
	require.Equal(t, StatusSent, repo.invoices[paidOff.ID].Status)
}

func TestRecordPaymentUnknownInvoice(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	_, err := svc.RecordPayment(context.Background(), CreatePaymentRequest{
		InvoiceID: uuid.New(),
		Amount:    10,
		Method:    "cash",
	})
	require.ErrorIs(t, err, ErrNotFound)
	require.Zero(t, repo.paymentWrites)
}
