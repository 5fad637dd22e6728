package jobs

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeInvoiceEmail is the task type for emailing an invoice to its
	// client.
	TaskTypeInvoiceEmail = "invoice:email"
	// TaskTypeOverdueSweep is the task type for the periodic sweep that
	// marks past-due invoices overdue.
	TaskTypeOverdueSweep = "invoice:overdue_sweep"
)

// InvoiceEmailPayload identifies the invoice to deliver.
type InvoiceEmailPayload struct {
	InvoiceID uuid.UUID `json:"invoice_id"`
}

// NewInvoiceEmailTask constructs an Asynq task.
func NewInvoiceEmailTask(payload InvoiceEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeInvoiceEmail, data), nil
}

// NewOverdueSweepTask constructs the sweep task. It carries no payload.
func NewOverdueSweepTask() *asynq.Task {
	return asynq.NewTask(TaskTypeOverdueSweep, nil)
}
