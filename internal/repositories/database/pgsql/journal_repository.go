package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbase/sepa_payments_app/internal/apperrors"
	"github.com/finbase/sepa_payments_app/internal/core/domain"
	portsrepo "github.com/finbase/sepa_payments_app/internal/core/ports/repositories"
	"github.com/finbase/sepa_payments_app/internal/models"
	"github.com/finbase/sepa_payments_app/internal/utils/mapping"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for payment journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `
	journal_id, name, company_id, currency_code, method, sepa_bank_account_number_id,
	payable_flavor, receivable_flavor, created_at, created_by, last_updated_at, last_updated_by`

func scanJournal(row pgx.Row) (*models.PaymentJournal, error) {
	var m models.PaymentJournal
	err := row.Scan(
		&m.JournalID,
		&m.Name,
		&m.CompanyID,
		&m.CurrencyCode,
		&m.Method,
		&m.SEPABankAccountNumberID,
		&m.PayableFlavor,
		&m.ReceivableFlavor,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindJournalByID retrieves a payment journal by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.PaymentJournal, error) {
	query := `SELECT` + journalColumns + ` FROM payment_journals WHERE journal_id = $1;`

	model, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("journal %s: %w", journalID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find journal "+journalID, err)
	}

	journal := mapping.ToDomainJournal(*model)
	return &journal, nil
}

// ListJournals retrieves all payment journals of a company in name order.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, companyID string) ([]domain.PaymentJournal, error) {
	query := `SELECT` + journalColumns + ` FROM payment_journals WHERE company_id = $1 ORDER BY name, journal_id;`

	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list journals for company "+companyID, err)
	}
	defer rows.Close()

	var ms []models.PaymentJournal
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal row", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate journal rows", err)
	}

	return mapping.ToDomainJournalSlice(ms), nil
}

// SaveJournal persists a new payment journal.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.PaymentJournal) error {
	m := mapping.ToModelJournal(journal)
	query := `
		INSERT INTO payment_journals (
			journal_id, name, company_id, currency_code, method, sepa_bank_account_number_id,
			payable_flavor, receivable_flavor, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.JournalID,
		m.Name,
		m.CompanyID,
		m.CurrencyCode,
		m.Method,
		m.SEPABankAccountNumberID,
		m.PayableFlavor,
		m.ReceivableFlavor,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if cErr := translateConstraint(err, "journal "+m.JournalID); cErr != err {
			return cErr
		}
		return apperrors.NewAppError(500, "failed to insert journal "+m.JournalID, err)
	}
	return nil
}

// UpdateJournal updates a journal's configuration.
func (r *PgxJournalRepository) UpdateJournal(ctx context.Context, journal domain.PaymentJournal) error {
	m := mapping.ToModelJournal(journal)
	query := `
		UPDATE payment_journals
		SET name = $2, method = $3, sepa_bank_account_number_id = $4,
		    payable_flavor = $5, receivable_flavor = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE journal_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.JournalID,
		m.Name,
		m.Method,
		m.SEPABankAccountNumberID,
		m.PayableFlavor,
		m.ReceivableFlavor,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if cErr := translateConstraint(err, "journal "+m.JournalID); cErr != err {
			return cErr
		}
		return apperrors.NewAppError(500, "failed to update journal "+m.JournalID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("journal %s: %w", m.JournalID, apperrors.ErrNotFound)
	}
	return nil
}
