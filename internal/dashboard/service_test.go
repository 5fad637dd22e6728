package dashboard

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type stubDashboardRepo struct {
	calls int
}

func (r *stubDashboardRepo) Revenue(ctx context.Context) (float64, float64, float64, error) {
	r.calls++
	return 1500, 320, 120, nil
}

func (r *stubDashboardRepo) InvoicesByStatus(ctx context.Context) ([]StatusCount, error) {
	return []StatusCount{
		{Status: "paid", Count: 3, Total: 1500},
		{Status: "sent", Count: 2, Total: 200},
		{Status: "overdue", Count: 1, Total: 120},
	}, nil
}

func (r *stubDashboardRepo) RevenueByMonth(ctx context.Context, months int) ([]MonthlyRevenue, error) {
	return []MonthlyRevenue{{Month: "2026-08", Revenue: 1500}}, nil
}

func (r *stubDashboardRepo) ActiveCounts(ctx context.Context) (int, int, error) {
	return 4, 2, nil
}

func newCachedService(t *testing.T) (*Service, *stubDashboardRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := &stubDashboardRepo{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, cache, logger, time.Minute), repo
}

func TestSummaryAggregates(t *testing.T) {
	svc, _ := newCachedService(t)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 1500.0, summary.TotalRevenue, 1e-9)
	require.InDelta(t, 320.0, summary.Outstanding, 1e-9)
	require.InDelta(t, 120.0, summary.OverdueAmount, 1e-9)
	require.Len(t, summary.InvoicesByState, 3)
	require.Equal(t, 4, summary.ActiveClients)
	require.Equal(t, 2, summary.ActiveProjects)
}

func TestSummaryServedFromCache(t *testing.T) {
	svc, repo := newCachedService(t)

	_, err := svc.Summary(context.Background())
	require.NoError(t, err)
	_, err = svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, repo.calls)
}

func TestInvalidateDropsCache(t *testing.T) {
	svc, repo := newCachedService(t)

	_, err := svc.Summary(context.Background())
	require.NoError(t, err)
	svc.Invalidate(context.Background())
	_, err = svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, repo.calls)
}

func TestSummaryWorksWithoutCache(t *testing.T) {
	repo := &stubDashboardRepo{}
	svc := NewService(repo, nil, slog.New(slog.NewTextHandler(io.Discard, nil)), 0)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 1500.0, summary.TotalRevenue, 1e-9)
}
