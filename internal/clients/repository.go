package clients

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates the client does not exist.
	ErrNotFound = errors.New("client not found")
	// ErrHasInvoices indicates the client is still referenced by invoices
	// or projects.
	ErrHasInvoices = errors.New("client has invoices or projects")
)

// Repository defines data access for clients.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	Get(ctx context.Context, id uuid.UUID) (*Client, error)
	List(ctx context.Context, req ListClientsRequest) ([]Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const clientColumns = `id, name, email, phone, company, address, city, state, zip_code, country,
	tax_id, payment_terms, notes, status, created_at, updated_at`

func scanClient(row pgx.Row) (*Client, error) {
	var c Client
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Address, &c.City, &c.State,
		&c.ZipCode, &c.Country, &c.TaxID, &c.PaymentTerms, &c.Notes, &c.Status,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan client: %w", err)
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, c *Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Company, c.Address, c.City, c.State,
		c.ZipCode, c.Country, c.TaxID, c.PaymentTerms, c.Notes, c.Status,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	return scanClient(r.pool.QueryRow(ctx, query, id))
}

func (r *repository) List(ctx context.Context, req ListClientsRequest) ([]Client, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + clientColumns + ` FROM clients WHERE 1=1`)

	args := []interface{}{}
	argNum := 1
	if req.Status != "" {
		sb.WriteString(` AND status = $` + strconv.Itoa(argNum))
		args = append(args, req.Status)
		argNum++
	}
	if req.Search != "" {
		sb.WriteString(` AND (name ILIKE $` + strconv.Itoa(argNum) +
			` OR email ILIKE $` + strconv.Itoa(argNum) +
			` OR company ILIKE $` + strconv.Itoa(argNum) + `)`)
		args = append(args, "%"+req.Search+"%")
		argNum++
	}
	sb.WriteString(` ORDER BY name`)
	if req.Limit > 0 {
		sb.WriteString(` LIMIT $` + strconv.Itoa(argNum))
		args = append(args, req.Limit)
		argNum++
	}
	if req.Offset > 0 {
		sb.WriteString(` OFFSET $` + strconv.Itoa(argNum))
		args = append(args, req.Offset)
	}

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *repository) Update(ctx context.Context, c *Client) error {
	query := `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, company = $5, address = $6, city = $7,
			state = $8, zip_code = $9, country = $10, tax_id = $11, payment_terms = $12,
			notes = $13, status = $14, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Company, c.Address, c.City, c.State,
		c.ZipCode, c.Country, c.TaxID, c.PaymentTerms, c.Notes, c.Status,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrHasInvoices
		}
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
