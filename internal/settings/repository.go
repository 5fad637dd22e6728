package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no settings row has been created yet.
var ErrNotFound = errors.New("settings not found")

// Repository defines data access for the settings row.
type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Upsert(ctx context.Context, s *Settings) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const settingsColumns = `id, business_name, business_email, business_phone, business_address,
	business_city, business_state, business_zip_code, business_country,
	tax_id, gst_number, pan_number,
	bank_name, bank_account_name, bank_account_no, bank_ifsc,
	email_host, email_port, email_user, email_password, email_from_name, email_from_address,
	signature, created_at, updated_at`

func scanSettings(row pgx.Row) (*Settings, error) {
	var s Settings
	err := row.Scan(
		&s.ID, &s.BusinessName, &s.BusinessEmail, &s.BusinessPhone, &s.BusinessAddress,
		&s.BusinessCity, &s.BusinessState, &s.BusinessZipCode, &s.BusinessCountry,
		&s.TaxID, &s.GSTNumber, &s.PANNumber,
		&s.BankName, &s.BankAccountName, &s.BankAccountNo, &s.BankIFSC,
		&s.EmailHost, &s.EmailPort, &s.EmailUser, &s.EmailPassword, &s.EmailFromName, &s.EmailFromAddress,
		&s.Signature, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan settings: %w", err)
	}
	return &s, nil
}

func (r *repository) Get(ctx context.Context) (*Settings, error) {
	query := `SELECT ` + settingsColumns + ` FROM settings ORDER BY created_at LIMIT 1`
	return scanSettings(r.pool.QueryRow(ctx, query))
}

func (r *repository) Upsert(ctx context.Context, s *Settings) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	query := `
		INSERT INTO settings (` + settingsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			business_email = EXCLUDED.business_email,
			business_phone = EXCLUDED.business_phone,
			business_address = EXCLUDED.business_address,
			business_city = EXCLUDED.business_city,
			business_state = EXCLUDED.business_state,
			business_zip_code = EXCLUDED.business_zip_code,
			business_country = EXCLUDED.business_country,
			tax_id = EXCLUDED.tax_id,
			gst_number = EXCLUDED.gst_number,
			pan_number = EXCLUDED.pan_number,
			bank_name = EXCLUDED.bank_name,
			bank_account_name = EXCLUDED.bank_account_name,
			bank_account_no = EXCLUDED.bank_account_no,
			bank_ifsc = EXCLUDED.bank_ifsc,
			email_host = EXCLUDED.email_host,
			email_port = EXCLUDED.email_port,
			email_user = EXCLUDED.email_user,
			email_password = EXCLUDED.email_password,
			email_from_name = EXCLUDED.email_from_name,
			email_from_address = EXCLUDED.email_from_address,
			signature = EXCLUDED.signature,
			updated_at = NOW()
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		s.ID, s.BusinessName, s.BusinessEmail, s.BusinessPhone, s.BusinessAddress,
		s.BusinessCity, s.BusinessState, s.BusinessZipCode, s.BusinessCountry,
		s.TaxID, s.GSTNumber, s.PANNumber,
		s.BankName, s.BankAccountName, s.BankAccountNo, s.BankIFSC,
		s.EmailHost, s.EmailPort, s.EmailUser, s.EmailPassword, s.EmailFromName, s.EmailFromAddress,
		s.Signature,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
