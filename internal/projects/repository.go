package projects

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
	// ErrNotFound indicates the project does not exist.
	ErrNotFound = errors.New("project not found")
	// ErrHasInvoices indicates invoices still reference the project.
	ErrHasInvoices = errors.New("project has invoices")
)

// Repository defines data access for projects.
type Repository interface {
	Create(ctx context.Context, p *Project) error
	Get(ctx context.Context, id uuid.UUID) (*Project, error)
	List(ctx context.Context, req ListProjectsRequest) ([]Project, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const projectColumns = `id, name, description, client_id, status, budget, currency,
	start_date, end_date, created_at, updated_at`

func scanProject(row pgx.Row) (*Project, error) {
	var p Project
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.ClientID, &p.Status, &p.Budget, &p.Currency,
		&p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		p.ID, p.Name, p.Description, p.ClientID, p.Status, p.Budget, p.Currency,
		p.StartDate, p.EndDate,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return scanProject(r.pool.QueryRow(ctx, query, id))
}

func (r *repository) List(ctx context.Context, req ListProjectsRequest) ([]Project, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + projectColumns + ` FROM projects WHERE 1=1`)

	args := []interface{}{}
	argNum := 1
	if req.Status != "" {
		sb.WriteString(` AND status = $` + strconv.Itoa(argNum))
		args = append(args, req.Status)
		argNum++
	}
	if req.ClientID != nil {
		sb.WriteString(` AND client_id = $` + strconv.Itoa(argNum))
		args = append(args, *req.ClientID)
		argNum++
	}
	sb.WriteString(` ORDER BY created_at DESC`)
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
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *repository) Update(ctx context.Context, p *Project) error {
	query := `
		UPDATE projects
		SET name = $2, description = $3, client_id = $4, status = $5, budget = $6,
			currency = $7, start_date = $8, end_date = $9, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.ClientID, p.Status, p.Budget,
		p.Currency, p.StartDate, p.EndDate,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrHasInvoices
		}
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
