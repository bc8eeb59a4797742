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
	"github.com/finbase/sepa_payments_app/internal/utils/pagination"
)

// inClauseMax caps how many mandate IDs go into a single ANY() parameter.
// Larger ID sets are split into successive queries.
const inClauseMax = 1000

type PgxMandateRepository struct {
	BaseRepository
}

// newPgxMandateRepository creates a new repository for SEPA mandate data.
func newPgxMandateRepository(pool *pgxpool.Pool) portsrepo.MandateRepositoryFacade {
	return &PgxMandateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxMandateRepository implements portsrepo.MandateRepositoryFacade
var _ portsrepo.MandateRepositoryFacade = (*PgxMandateRepository)(nil)

const mandateColumns = `
	mandate_id, party_id, account_number_id, identification, company_id, type,
	signature_date, state, created_at, created_by, last_updated_at, last_updated_by`

func scanMandate(row pgx.Row) (*models.Mandate, error) {
	var m models.Mandate
	err := row.Scan(
		&m.MandateID,
		&m.PartyID,
		&m.AccountNumberID,
		&m.Identification,
		&m.CompanyID,
		&m.Type,
		&m.SignatureDate,
		&m.State,
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

// FindMandateByID retrieves a mandate by its ID.
func (r *PgxMandateRepository) FindMandateByID(ctx context.Context, mandateID string) (*domain.Mandate, error) {
	query := `SELECT` + mandateColumns + ` FROM sepa_mandates WHERE mandate_id = $1;`

	model, err := scanMandate(r.Pool.QueryRow(ctx, query, mandateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("mandate %s: %w", mandateID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find mandate "+mandateID, err)
	}

	mandate := mapping.ToDomainMandate(*model)
	return &mandate, nil
}

// ListMandatesByParty retrieves a party's mandates in creation order,
// token-paginated. A limit <= 0 returns all mandates of the party.
func (r *PgxMandateRepository) ListMandatesByParty(ctx context.Context, partyID string, limit int, nextToken *string) ([]domain.Mandate, *string, error) {
	query := `SELECT` + mandateColumns + ` FROM sepa_mandates WHERE party_id = $1`
	args := []interface{}{partyID}

	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, mandate_id) > ($2, $3)`
		args = append(args, createdAt, id)
	}
	query += ` ORDER BY created_at, mandate_id`
	if limit > 0 {
		// Fetch one extra row to know whether a next page exists.
		query += fmt.Sprintf(` LIMIT %d`, limit+1)
	}
	query += `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list mandates for party "+partyID, err)
	}
	defer rows.Close()

	var ms []models.Mandate
	for rows.Next() {
		m, err := scanMandate(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan mandate row", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate mandate rows", err)
	}

	var token *string
	if limit > 0 && len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.MandateID)
		token = &t
	}

	return mapping.ToDomainMandateSlice(ms), token, nil
}

// HasPayments reports which of the given mandates have at least one payment
// linked. The query is chunked so arbitrarily large mandate sets stay within
// a bounded parameter size.
func (r *PgxMandateRepository) HasPayments(ctx context.Context, mandateIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(mandateIDs))
	for _, id := range mandateIDs {
		result[id] = false
	}

	query := `SELECT DISTINCT mandate_id FROM payments WHERE mandate_id = ANY($1);`
	for start := 0; start < len(mandateIDs); start += inClauseMax {
		end := start + inClauseMax
		if end > len(mandateIDs) {
			end = len(mandateIDs)
		}

		rows, err := r.Pool.Query(ctx, query, mandateIDs[start:end])
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to aggregate mandate payments", err)
		}
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return nil, apperrors.NewAppError(500, "failed to scan mandate payment row", err)
			}
			result[id] = true
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to iterate mandate payment rows", err)
		}
		rows.Close()
	}

	return result, nil
}

// CountPaymentsByMandate returns the number of payments linked to a mandate.
func (r *PgxMandateRepository) CountPaymentsByMandate(ctx context.Context, mandateID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM payments WHERE mandate_id = $1;`
	if err := r.Pool.QueryRow(ctx, query, mandateID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count payments for mandate "+mandateID, err)
	}
	return count, nil
}

// SaveMandate persists a new mandate.
func (r *PgxMandateRepository) SaveMandate(ctx context.Context, mandate domain.Mandate) error {
	m := mapping.ToModelMandate(mandate)
	query := `
		INSERT INTO sepa_mandates (
			mandate_id, party_id, account_number_id, identification, company_id, type,
			signature_date, state, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.MandateID,
		m.PartyID,
		m.AccountNumberID,
		m.Identification,
		m.CompanyID,
		m.Type,
		m.SignatureDate,
		m.State,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if cErr := translateConstraint(err, "mandate identification"); cErr != err {
			return cErr
		}
		return apperrors.NewAppError(500, "failed to insert mandate "+m.MandateID, err)
	}
	return nil
}

// UpdateMandate updates a mandate's editable fields.
func (r *PgxMandateRepository) UpdateMandate(ctx context.Context, mandate domain.Mandate) error {
	m := mapping.ToModelMandate(mandate)
	query := `
		UPDATE sepa_mandates
		SET account_number_id = $2, identification = $3, type = $4, signature_date = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE mandate_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.MandateID,
		m.AccountNumberID,
		m.Identification,
		m.Type,
		m.SignatureDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if cErr := translateConstraint(err, "mandate identification"); cErr != err {
			return cErr
		}
		return apperrors.NewAppError(500, "failed to update mandate "+m.MandateID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mandate %s: %w", m.MandateID, apperrors.ErrNotFound)
	}
	return nil
}

// UpdateMandateState moves a mandate to a new lifecycle state.
func (r *PgxMandateRepository) UpdateMandateState(ctx context.Context, mandateID string, state domain.MandateState, updatedBy string) error {
	query := `
		UPDATE sepa_mandates
		SET state = $2, last_updated_at = NOW(), last_updated_by = $3
		WHERE mandate_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, mandateID, models.MandateState(state), updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update mandate state "+mandateID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mandate %s: %w", mandateID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteMandate removes a mandate. The payments table references mandates
// with ON DELETE RESTRICT; a linked payment makes this a conflict.
func (r *PgxMandateRepository) DeleteMandate(ctx context.Context, mandateID string) error {
	query := `DELETE FROM sepa_mandates WHERE mandate_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, mandateID)
	if err != nil {
		if cErr := translateConstraint(err, "mandate "+mandateID); cErr != err {
			return cErr
		}
		return apperrors.NewAppError(500, "failed to delete mandate "+mandateID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mandate %s: %w", mandateID, apperrors.ErrNotFound)
	}
	return nil
}
