package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/ledgerline/ledgerline/internal/invoices"
	jobmetrics "github.com/ledgerline/ledgerline/internal/jobs"
	"github.com/ledgerline/ledgerline/internal/mail"
	"github.com/ledgerline/ledgerline/internal/money"
	"github.com/ledgerline/ledgerline/internal/pdf"
	"github.com/ledgerline/ledgerline/internal/settings"
)

// InvoiceEmailJob renders an invoice PDF and emails it to the client.
type InvoiceEmailJob struct {
	invoices *invoices.Service
	profiles *settings.Service
	mailer   *mail.Mailer
	logger   *slog.Logger
	metrics  *jobmetrics.Metrics
}

// NewInvoiceEmailJob constructs the job.
func NewInvoiceEmailJob(invoiceSvc *invoices.Service, profileSvc *settings.Service, mailer *mail.Mailer, logger *slog.Logger, metrics *jobmetrics.Metrics) *InvoiceEmailJob {
	return &InvoiceEmailJob{invoices: invoiceSvc, profiles: profileSvc, mailer: mailer, logger: logger, metrics: metrics}
}

// HandleTask processes TaskTypeInvoiceEmail tasks.
func (j *InvoiceEmailJob) HandleTask(ctx context.Context, t *asynq.Task) error {
	tracker := j.metrics.Track("invoice_email")
	return tracker.End(j.handle(ctx, t))
}

func (j *InvoiceEmailJob) handle(ctx context.Context, t *asynq.Task) error {
	var payload InvoiceEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	var (
		inv     *invoices.InvoiceWithRelations
		profile *settings.Settings
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := j.invoices.Get(gctx, payload.InvoiceID)
		if err != nil {
			if errors.Is(err, invoices.ErrNotFound) {
				return fmt.Errorf("invoice %s: %w", payload.InvoiceID, asynq.SkipRetry)
			}
			return err
		}
		inv = loaded
		return nil
	})
	g.Go(func() error {
		loaded, err := j.profiles.Get(gctx)
		if err != nil {
			return err
		}
		profile = loaded
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if inv.Client == nil || inv.Client.Email == "" {
		j.logger.Warn("invoice has no client email", slog.String("invoice", inv.Number))
		return asynq.SkipRetry
	}

	doc, err := pdf.Render(inv, profile)
	if err != nil {
		return fmt.Errorf("render invoice %s: %w", inv.Number, err)
	}

	signature := ""
	if profile.Signature != nil {
		signature = *profile.Signature
	}
	msg := mail.Message{
		To:      inv.Client.Email,
		Subject: mail.InvoiceSubject(profile.BusinessName, inv.Number),
		HTMLBody: mail.InvoiceBody(
			profile.BusinessName,
			inv.Client.Name,
			inv.Number,
			money.Format(inv.Total, inv.Currency),
			inv.DueDate.Format("02 Jan 2006"),
			signature,
		),
		AttachmentName: inv.Number + ".pdf",
		Attachment:     doc,
	}
	if err := j.mailer.Send(profile, msg); err != nil {
		if errors.Is(err, mail.ErrNotConfigured) {
			j.logger.Warn("skipping invoice email, smtp not configured",
				slog.String("invoice", inv.Number))
			return asynq.SkipRetry
		}
		return err
	}

	j.logger.Info("invoice emailed",
		slog.String("invoice", inv.Number),
		slog.String("to", inv.Client.Email))
	return nil
}
