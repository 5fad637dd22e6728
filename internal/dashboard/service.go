package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	cacheKey    = "ledgerline:dashboard:summary"
	revenueSpan = 12
)

// Service assembles the dashboard summary. Results are cached in Redis for
// a short TTL since every aggregate touches the full invoices table.
type Service struct {
	repo   Repository
	cache  *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// NewService builds a Service instance. A nil cache disables caching.
func NewService(repo Repository, cache *redis.Client, logger *slog.Logger, ttl time.Duration) *Service {
	return &Service{repo: repo, cache: cache, logger: logger, ttl: ttl}
}

// Summary returns the aggregated billing picture, from cache when fresh.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	var summary Summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, outstanding, overdue, err := s.repo.Revenue(gctx)
		if err != nil {
			return err
		}
		summary.TotalRevenue = total
		summary.Outstanding = outstanding
		summary.OverdueAmount = overdue
		return nil
	})
	g.Go(func() error {
		counts, err := s.repo.InvoicesByStatus(gctx)
		if err != nil {
			return err
		}
		summary.InvoicesByState = counts
		return nil
	})
	g.Go(func() error {
		monthly, err := s.repo.RevenueByMonth(gctx, revenueSpan)
		if err != nil {
			return err
		}
		summary.RevenueByMonth = monthly
		return nil
	})
	g.Go(func() error {
		clients, projects, err := s.repo.ActiveCounts(gctx)
		if err != nil {
			return err
		}
		summary.ActiveClients = clients
		summary.ActiveProjects = projects
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.toCache(ctx, &summary)
	return &summary, nil
}

// Invalidate drops the cached summary. Called after writes that change the
// aggregates.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Warn("invalidate dashboard cache", slog.Any("error", err))
	}
}

func (s *Service) fromCache(ctx context.Context) *Summary {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("read dashboard cache", slog.Any("error", err))
		}
		return nil
	}
	var summary Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		s.logger.Warn("decode dashboard cache", slog.Any("error", err))
		return nil
	}
	return &summary
}

func (s *Service) toCache(ctx context.Context, summary *Summary) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("write dashboard cache", slog.Any("error", err))
	}
}
