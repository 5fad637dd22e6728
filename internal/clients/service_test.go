package clients

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type memoryClientRepo struct {
	clients    map[uuid.UUID]*Client
	referenced map[uuid.UUID]bool
}

func newMemoryClientRepo() *memoryClientRepo {
	return &memoryClientRepo{
		clients:    make(map[uuid.UUID]*Client),
		referenced: make(map[uuid.UUID]bool),
	}
}

func (r *memoryClientRepo) Create(ctx context.Context, c *Client) error {
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	stored := *c
	r.clients[c.ID] = &stored
	return nil
}

func (r *memoryClientRepo) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *c
	return &out, nil
}

func (r *memoryClientRepo) List(ctx context.Context, req ListClientsRequest) ([]Client, error) {
	var out []Client
	for _, c := range r.clients {
		if req.Status != "" && c.Status != req.Status {
			continue
		}
		if req.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(req.Search)) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *memoryClientRepo) Update(ctx context.Context, c *Client) error {
	if _, ok := r.clients[c.ID]; !ok {
		return ErrNotFound
	}
	c.UpdatedAt = time.Now()
	stored := *c
	r.clients[c.ID] = &stored
	return nil
}

func (r *memoryClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.clients[id]; !ok {
		return ErrNotFound
	}
	if r.referenced[id] {
		return ErrHasInvoices
	}
	delete(r.clients, id)
	return nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateClientDefaults(t *testing.T) {
	svc := newTestService(newMemoryClientRepo())

	c, err := svc.Create(context.Background(), CreateClientRequest{
		Name:  "Northwind Traders",
		Email: "billing@northwind.example",
	})
	require.NoError(t, err)
	require.Equal(t, StatusActive, c.Status)
	require.Equal(t, DefaultPaymentTerms, c.PaymentTerms)
	require.NotEqual(t, uuid.Nil, c.ID)
}

func TestUpdateClientPartial(t *testing.T) {
	repo := newMemoryClientRepo()
	svc := newTestService(repo)

	c, err := svc.Create(context.Background(), CreateClientRequest{
		Name:  "Northwind Traders",
		Email: "billing@northwind.example",
	})
	require.NoError(t, err)

	status := StatusInactive
	terms := 14
	updated, err := svc.Update(context.Background(), c.ID, UpdateClientRequest{
		Status:       &status,
		PaymentTerms: &terms,
	})
	require.NoError(t, err)
	require.Equal(t, StatusInactive, updated.Status)
	require.Equal(t, 14, updated.PaymentTerms)
	require.Equal(t, "Northwind Traders", updated.Name)
}

func TestDeleteReferencedClientFails(t *testing.T) {
	repo := newMemoryClientRepo()
	svc := newTestService(repo)

	c, err := svc.Create(context.Background(), CreateClientRequest{
		Name:  "Northwind Traders",
		Email: "billing@northwind.example",
	})
	require.NoError(t, err)
	repo.referenced[c.ID] = true

	err = svc.Delete(context.Background(), c.ID)
	require.ErrorIs(t, err, ErrHasInvoices)
}
