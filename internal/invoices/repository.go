package invoices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline/internal/platform/db"
)

var (
	// ErrNotFound indicates the invoice does not exist.
	ErrNotFound = errors.New("invoice not found")
	// ErrDuplicateNumber indicates the invoice number is already taken.
	ErrDuplicateNumber = errors.New("invoice number already exists")
)

// Repository defines data access for invoices, line items and payments.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Create(ctx context.Context, inv *Invoice) error
	Get(ctx context.Context, id uuid.UUID) (*InvoiceWithRelations, error)
	List(ctx context.Context, req ListInvoicesRequest) ([]InvoiceWithRelations, error)
	Update(ctx context.Context, inv *Invoice, replaceItems bool) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Delete(ctx context.Context, id uuid.UUID) error
	CreatePayment(ctx context.Context, p *Payment) error
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const invoiceColumns = `id, number, client_id, project_id, issue_date, due_date, currency,
	tax_rate, discount, subtotal, tax_amount, total, status, notes, terms, created_at, updated_at`

func (r *repository) Create(ctx context.Context, inv *Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		inv.ID, inv.Number, inv.ClientID, inv.ProjectID, inv.IssueDate, inv.DueDate, inv.Currency,
		inv.TaxRate, inv.Discount, inv.Subtotal, inv.TaxAmount, inv.Total, string(inv.Status),
		inv.Notes, inv.Terms,
	).Scan(&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateNumber
		}
		return fmt.Errorf("insert invoice: %w", err)
	}

	if err := r.insertItems(ctx, inv.ID, inv.Items); err != nil {
		return err
	}
	return nil
}

func (r *repository) insertItems(ctx context.Context, invoiceID uuid.UUID, items []LineItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, position, description, quantity, rate, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i := range items {
		item := &items[i]
		if _, err := r.db.Exec(ctx, query,
			item.ID, invoiceID, i, item.Description, item.Quantity, item.Rate, item.Amount,
		); err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*InvoiceWithRelations, error) {
	query := `
		SELECT i.id, i.number, i.client_id, i.project_id, i.issue_date, i.due_date, i.currency,
			i.tax_rate, i.discount, i.subtotal, i.tax_amount, i.total, i.status, i.notes, i.terms,
			i.created_at, i.updated_at,
			c.name, c.email, c.company,
			p.name
		FROM invoices i
		JOIN clients c ON c.id = i.client_id
		LEFT JOIN projects p ON p.id = i.project_id
		WHERE i.id = $1`

	var (
		rel         InvoiceWithRelations
		status      string
		projectName *string
		client      ClientRef
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rel.ID, &rel.Number, &rel.ClientID, &rel.ProjectID, &rel.IssueDate, &rel.DueDate, &rel.Currency,
		&rel.TaxRate, &rel.Discount, &rel.Subtotal, &rel.TaxAmount, &rel.Total, &status, &rel.Notes, &rel.Terms,
		&rel.CreatedAt, &rel.UpdatedAt,
		&client.Name, &client.Email, &client.Company,
		&projectName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select invoice: %w", err)
	}
	rel.Status = Status(status)
	client.ID = rel.ClientID
	rel.Client = &client
	if rel.ProjectID != nil && projectName != nil {
		rel.Project = &ProjectRef{ID: *rel.ProjectID, Name: *projectName}
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	rel.Items = items

	payments, err := r.listPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	rel.Payments = payments
	rel.AmountPaid = rel.TotalPaid()

	return &rel, nil
}

func (r *repository) listItems(ctx context.Context, invoiceID uuid.UUID) ([]LineItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, invoice_id, description, quantity, rate, amount
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY position`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("select invoice items: %w", err)
	}
	defer rows.Close()

	var items []LineItem
	for rows.Next() {
		var item LineItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.Description, &item.Quantity, &item.Rate, &item.Amount); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *repository) listPayments(ctx context.Context, invoiceID uuid.UUID) ([]Payment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, invoice_id, amount, payment_date, payment_method, notes, created_at
		FROM payments
		WHERE invoice_id = $1
		ORDER BY payment_date DESC, created_at DESC`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("select payments: %w", err)
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.PaymentDate, &p.Method, &p.Notes, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *repository) List(ctx context.Context, req ListInvoicesRequest) ([]InvoiceWithRelations, error) {
	query := `
		SELECT i.id, i.number, i.client_id, i.project_id, i.issue_date, i.due_date, i.currency,
			i.tax_rate, i.discount, i.subtotal, i.tax_amount, i.total, i.status, i.notes, i.terms,
			i.created_at, i.updated_at,
			c.name, c.email, c.company,
			p.name,
			COALESCE((SELECT SUM(amount) FROM payments WHERE invoice_id = i.id), 0)
		FROM invoices i
		JOIN clients c ON c.id = i.client_id
		LEFT JOIN projects p ON p.id = i.project_id
		WHERE 1=1`

	args := []interface{}{}
	argNum := 1

	if req.Status != "" {
		query += fmt.Sprintf(" AND i.status = $%d", argNum)
		args = append(args, string(req.Status))
		argNum++
	}
	if req.ClientID != nil {
		query += fmt.Sprintf(" AND i.client_id = $%d", argNum)
		args = append(args, *req.ClientID)
		argNum++
	}
	if req.ProjectID != nil {
		query += fmt.Sprintf(" AND i.project_id = $%d", argNum)
		args = append(args, *req.ProjectID)
		argNum++
	}

	query += " ORDER BY i.created_at DESC"

	if req.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, req.Limit)
		argNum++
	}
	if req.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, req.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select invoices: %w", err)
	}
	defer rows.Close()

	var out []InvoiceWithRelations
	for rows.Next() {
		var (
			rel         InvoiceWithRelations
			status      string
			projectName *string
			client      ClientRef
			totalPaid   float64
		)
		err := rows.Scan(
			&rel.ID, &rel.Number, &rel.ClientID, &rel.ProjectID, &rel.IssueDate, &rel.DueDate, &rel.Currency,
			&rel.TaxRate, &rel.Discount, &rel.Subtotal, &rel.TaxAmount, &rel.Total, &status, &rel.Notes, &rel.Terms,
			&rel.CreatedAt, &rel.UpdatedAt,
			&client.Name, &client.Email, &client.Company,
			&projectName,
			&totalPaid,
		)
		if err != nil {
			return nil, err
		}
		rel.Status = Status(status)
		client.ID = rel.ClientID
		rel.Client = &client
		if rel.ProjectID != nil && projectName != nil {
			rel.Project = &ProjectRef{ID: *rel.ProjectID, Name: *projectName}
		}
		// The listing view needs paid state without loading every payment row.
		rel.AmountPaid = totalPaid
		out = append(out, rel)
	}
	return out, rows.Err()
}

func (r *repository) Update(ctx context.Context, inv *Invoice, replaceItems bool) error {
	query := `
		UPDATE invoices
		SET client_id = $2, project_id = $3, issue_date = $4, due_date = $5, currency = $6,
			tax_rate = $7, discount = $8, subtotal = $9, tax_amount = $10, total = $11,
			notes = $12, terms = $13, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		inv.ID, inv.ClientID, inv.ProjectID, inv.IssueDate, inv.DueDate, inv.Currency,
		inv.TaxRate, inv.Discount, inv.Subtotal, inv.TaxAmount, inv.Total,
		inv.Notes, inv.Terms,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if replaceItems {
		if _, err := r.db.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, inv.ID); err != nil {
			return fmt.Errorf("delete invoice items: %w", err)
		}
		if err := r.insertItems(ctx, inv.ID, inv.Items); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE invoices SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) CreatePayment(ctx context.Context, p *Payment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO payments (id, invoice_id, amount, payment_date, payment_method, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at`,
		p.ID, p.InvoiceID, p.Amount, p.PaymentDate, p.Method, p.Notes,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *repository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	query := `
		UPDATE invoices i
		SET status = 'overdue', updated_at = NOW()
		WHERE i.status = 'sent'
			AND i.due_date < $1
			AND COALESCE((SELECT SUM(amount) FROM payments WHERE invoice_id = i.id), 0) < i.total`

	tag, err := r.db.Exec(ctx, query, asOf)
	if err != nil {
		return 0, fmt.Errorf("mark invoices overdue: %w", err)
	}
	return tag.RowsAffected(), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
