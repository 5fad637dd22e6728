package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/ledgerline/ledgerline/internal/invoices"
	jobmetrics "github.com/ledgerline/ledgerline/internal/jobs"
)

// OverdueSweepJob periodically marks past-due invoices as overdue so their
// status is correct even when nobody opens them.
type OverdueSweepJob struct {
	invoices *invoices.Service
	logger   *slog.Logger
	metrics  *jobmetrics.Metrics
}

// NewOverdueSweepJob constructs the job.
func NewOverdueSweepJob(invoiceSvc *invoices.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *OverdueSweepJob {
	return &OverdueSweepJob{invoices: invoiceSvc, logger: logger, metrics: metrics}
}

// HandleTask processes TaskTypeOverdueSweep tasks.
func (j *OverdueSweepJob) HandleTask(ctx context.Context, t *asynq.Task) error {
	tracker := j.metrics.Track("overdue_sweep")
	n, err := j.invoices.SweepOverdue(ctx)
	if err != nil {
		j.logger.Error("overdue sweep", slog.Any("error", err))
		return tracker.End(err)
	}
	j.metrics.AddOverdueMarked(n)
	j.logger.Info("overdue sweep finished", slog.Int64("marked", n))
	return tracker.End(nil)
}
