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

type PgxPartyRepository struct {
	BaseRepository
}

// newPgxPartyRepository creates a new repository for party and bank account
// data.
func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPartyRepository implements portsrepo.PartyRepositoryFacade
var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

// FindPartyByID retrieves a party by its ID.
func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	query := `
		SELECT party_id, name, sepa_creditor_identifier,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM parties
		WHERE party_id = $1;
	`
	var m models.Party
	err := r.Pool.QueryRow(ctx, query, partyID).Scan(
		&m.PartyID,
		&m.Name,
		&m.SEPACreditorIdentifier,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("party %s: %w", partyID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find party "+partyID, err)
	}

	party := mapping.ToDomainParty(m)
	return &party, nil
}

// FindCompanyByID retrieves a company by its ID.
func (r *PgxPartyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `
		SELECT company_id, name, party_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM companies
		WHERE company_id = $1;
	`
	var m models.Company
	err := r.Pool.QueryRow(ctx, query, companyID).Scan(
		&m.CompanyID,
		&m.Name,
		&m.PartyID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("company %s: %w", companyID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find company "+companyID, err)
	}

	company := mapping.ToDomainCompany(m)
	return &company, nil
}

// ListBankAccountsByParty retrieves the party's bank accounts in creation
// order, with all their numbers keyed by account ID.
func (r *PgxPartyRepository) ListBankAccountsByParty(ctx context.Context, partyID string) ([]domain.BankAccount, map[string][]domain.BankAccountNumber, error) {
	accountQuery := `
		SELECT bank_account_id, owner_party_id, bank_name, bic,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM bank_accounts
		WHERE owner_party_id = $1
		ORDER BY created_at, bank_account_id;
	`
	rows, err := r.Pool.Query(ctx, accountQuery, partyID)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list bank accounts for party "+partyID, err)
	}
	defer rows.Close()

	var accounts []domain.BankAccount
	for rows.Next() {
		var m models.BankAccount
		if err := rows.Scan(
			&m.BankAccountID,
			&m.OwnerPartyID,
			&m.BankName,
			&m.BIC,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan bank account row", err)
		}
		accounts = append(accounts, mapping.ToDomainBankAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate bank account rows", err)
	}

	numberQuery := `
		SELECT n.number_id, n.bank_account_id, n.type, n.number,
		       n.created_at, n.created_by, n.last_updated_at, n.last_updated_by
		FROM bank_account_numbers n
		JOIN bank_accounts a ON a.bank_account_id = n.bank_account_id
		WHERE a.owner_party_id = $1
		ORDER BY n.created_at, n.number_id;
	`
	numberRows, err := r.Pool.Query(ctx, numberQuery, partyID)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list account numbers for party "+partyID, err)
	}
	defer numberRows.Close()

	numbers := make(map[string][]domain.BankAccountNumber)
	for numberRows.Next() {
		var m models.BankAccountNumber
		if err := numberRows.Scan(
			&m.NumberID,
			&m.BankAccountID,
			&m.Type,
			&m.Number,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan account number row", err)
		}
		numbers[m.BankAccountID] = append(numbers[m.BankAccountID], mapping.ToDomainBankAccountNumber(m))
	}
	if err := numberRows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate account number rows", err)
	}

	return accounts, numbers, nil
}

// FindBankAccountNumberByID retrieves a single bank account number.
func (r *PgxPartyRepository) FindBankAccountNumberByID(ctx context.Context, numberID string) (*domain.BankAccountNumber, error) {
	query := `
		SELECT number_id, bank_account_id, type, number,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM bank_account_numbers
		WHERE number_id = $1;
	`
	var m models.BankAccountNumber
	err := r.Pool.QueryRow(ctx, query, numberID).Scan(
		&m.NumberID,
		&m.BankAccountID,
		&m.Type,
		&m.Number,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("account number %s: %w", numberID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find account number "+numberID, err)
	}

	number := mapping.ToDomainBankAccountNumber(m)
	return &number, nil
}

// FindBankAccountByID retrieves a single bank account.
func (r *PgxPartyRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `
		SELECT bank_account_id, owner_party_id, bank_name, bic,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM bank_accounts
		WHERE bank_account_id = $1;
	`
	var m models.BankAccount
	err := r.Pool.QueryRow(ctx, query, bankAccountID).Scan(
		&m.BankAccountID,
		&m.OwnerPartyID,
		&m.BankName,
		&m.BIC,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("bank account %s: %w", bankAccountID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find bank account "+bankAccountID, err)
	}

	account := mapping.ToDomainBankAccount(m)
	return &account, nil
}

// SaveParty persists a new party.
func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)
	query := `
		INSERT INTO parties (
			party_id, name, sepa_creditor_identifier,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PartyID,
		m.Name,
		m.SEPACreditorIdentifier,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert party "+m.PartyID, err)
	}
	return nil
}

// UpdateParty updates a party's editable fields.
func (r *PgxPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)
	query := `
		UPDATE parties
		SET name = $2, sepa_creditor_identifier = $3,
		    last_updated_at = $4, last_updated_by = $5
		WHERE party_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.PartyID,
		m.Name,
		m.SEPACreditorIdentifier,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update party "+m.PartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("party %s: %w", m.PartyID, apperrors.ErrNotFound)
	}
	return nil
}

// SaveBankAccount persists a bank account with its numbers in one database
// transaction.
func (r *PgxPartyRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount, numbers []domain.BankAccountNumber) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelBankAccount(account)
	accountQuery := `
		INSERT INTO bank_accounts (
			bank_account_id, owner_party_id, bank_name, bic,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, accountQuery,
		m.BankAccountID,
		m.OwnerPartyID,
		m.BankName,
		m.BIC,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert bank account "+m.BankAccountID, err)
	}

	batch := &pgx.Batch{}
	numberQuery := `
		INSERT INTO bank_account_numbers (
			number_id, bank_account_id, type, number,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, n := range numbers {
		mn := mapping.ToModelBankAccountNumber(n)
		batch.Queue(numberQuery,
			mn.NumberID,
			mn.BankAccountID,
			mn.Type,
			mn.Number,
			mn.CreatedAt,
			mn.CreatedBy,
			mn.LastUpdatedAt,
			mn.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert account numbers for "+m.BankAccountID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteBankAccountNumber removes a bank account number. Mandates reference
// numbers with ON DELETE RESTRICT; a referencing mandate makes this a
// conflict.
func (r *PgxPartyRepository) DeleteBankAccountNumber(ctx context.Context, numberID string) error {
	query := `DELETE FROM bank_account_numbers WHERE number_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, numberID)
	if err != nil {
		if cErr := translateConstraint(err, "account number "+numberID); cErr != err {
			return cErr
		}
		return apperrors.NewAppError(500, "failed to delete account number "+numberID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account number %s: %w", numberID, apperrors.ErrNotFound)
	}
	return nil
}
