package dashboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository runs the aggregate queries behind the dashboard summary.
type Repository interface {
	Revenue(ctx context.Context) (total, outstanding, overdue float64, err error)
	InvoicesByStatus(ctx context.Context) ([]StatusCount, error)
	RevenueByMonth(ctx context.Context, months int) ([]MonthlyRevenue, error)
	ActiveCounts(ctx context.Context) (clients, projects int, err error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Revenue(ctx context.Context) (float64, float64, float64, error) {
	query := `
		SELECT
			COALESCE(SUM(p.amount), 0) AS revenue,
			COALESCE(SUM(i.total) FILTER (WHERE i.status IN ('sent', 'overdue')), 0)
				- COALESCE(SUM(p.paid) FILTER (WHERE i.status IN ('sent', 'overdue')), 0) AS outstanding,
			COALESCE(SUM(i.total) FILTER (WHERE i.status = 'overdue'), 0)
				- COALESCE(SUM(p.paid) FILTER (WHERE i.status = 'overdue'), 0) AS overdue
		FROM invoices i
		LEFT JOIN LATERAL (
			SELECT SUM(amount) AS amount, SUM(amount) AS paid
			FROM payments WHERE invoice_id = i.id
		) p ON TRUE`

	var revenue, outstanding, overdue float64
	if err := r.pool.QueryRow(ctx, query).Scan(&revenue, &outstanding, &overdue); err != nil {
		return 0, 0, 0, fmt.Errorf("aggregate revenue: %w", err)
	}
	return revenue, outstanding, overdue, nil
}

func (r *repository) InvoicesByStatus(ctx context.Context) ([]StatusCount, error) {
	query := `
		SELECT status, COUNT(*), COALESCE(SUM(total), 0)
		FROM invoices
		GROUP BY status
		ORDER BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count invoices by status: %w", err)
	}
	defer rows.Close()

	var out []StatusCount
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count, &sc.Total); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (r *repository) RevenueByMonth(ctx context.Context, months int) ([]MonthlyRevenue, error) {
	query := `
		SELECT to_char(date_trunc('month', payment_date), 'YYYY-MM') AS month,
			COALESCE(SUM(amount), 0)
		FROM payments
		WHERE payment_date >= date_trunc('month', NOW()) - ($1 || ' months')::interval
		GROUP BY 1
		ORDER BY 1`

	rows, err := r.pool.Query(ctx, query, months)
	if err != nil {
		return nil, fmt.Errorf("revenue by month: %w", err)
	}
	defer rows.Close()

	var out []MonthlyRevenue
	for rows.Next() {
		var mr MonthlyRevenue
		if err := rows.Scan(&mr.Month, &mr.Revenue); err != nil {
			return nil, fmt.Errorf("scan monthly revenue: %w", err)
		}
		out = append(out, mr)
	}
	return out, rows.Err()
}

func (r *repository) ActiveCounts(ctx context.Context) (int, int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM clients WHERE status = 'active'),
			(SELECT COUNT(*) FROM projects WHERE status = 'active')`

	var clients, projects int
	if err := r.pool.QueryRow(ctx, query).Scan(&clients, &projects); err != nil {
		return 0, 0, fmt.Errorf("count active clients and projects: %w", err)
	}
	return clients, projects, nil
}
