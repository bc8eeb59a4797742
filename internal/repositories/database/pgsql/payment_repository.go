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

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `
	payment_id, journal_id, party_id, kind, amount, currency_code, description,
	origin_ref, mandate_id, group_id, state, date,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.JournalID,
		&m.PartyID,
		&m.Kind,
		&m.Amount,
		&m.CurrencyCode,
		&m.Description,
		&m.OriginRef,
		&m.MandateID,
		&m.GroupID,
		&m.State,
		&m.Date,
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

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE payment_id = $1;`

	model, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("payment %s: %w", paymentID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find payment "+paymentID, err)
	}

	payment := mapping.ToDomainPayment(*model)
	return &payment, nil
}

// ListPaymentsByGroup retrieves a group's payments in creation order. The
// batch processor depends on this ordering being stable.
func (r *PgxPaymentRepository) ListPaymentsByGroup(ctx context.Context, groupID string) ([]domain.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE group_id = $1 ORDER BY created_at, payment_id;`

	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list payments for group "+groupID, err)
	}
	defer rows.Close()

	var ms []models.Payment
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate payment rows", err)
	}

	return mapping.ToDomainPaymentSlice(ms), nil
}

// ListPaymentsByParty retrieves a party's payments, token-paginated.
func (r *PgxPaymentRepository) ListPaymentsByParty(ctx context.Context, partyID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT` + paymentColumns + ` FROM payments WHERE party_id = $1`
	args := []interface{}{partyID}

	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, payment_id) > ($2, $3)`
		args = append(args, createdAt, id)
	}
	query += fmt.Sprintf(` ORDER BY created_at, payment_id LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list payments for party "+partyID, err)
	}
	defer rows.Close()

	var ms []models.Payment
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate payment rows", err)
	}

	var token *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.PaymentID)
		token = &t
	}

	return mapping.ToDomainPaymentSlice(ms), token, nil
}

// SavePayment persists a new payment.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (
			payment_id, journal_id, party_id, kind, amount, currency_code, description,
			origin_ref, mandate_id, group_id, state, date,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PaymentID,
		m.JournalID,
		m.PartyID,
		m.Kind,
		m.Amount,
		m.CurrencyCode,
		m.Description,
		m.OriginRef,
		m.MandateID,
		m.GroupID,
		m.State,
		m.Date,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if cErr := translateConstraint(err, "payment "+m.PaymentID); cErr != err {
			return cErr
		}
		return apperrors.NewAppError(500, "failed to insert payment "+m.PaymentID, err)
	}
	return nil
}

// UpdatePaymentMandate assigns a mandate to a payment.
func (r *PgxPaymentRepository) UpdatePaymentMandate(ctx context.Context, paymentID string, mandateID string, updatedBy string) error {
	query := `
		UPDATE payments
		SET mandate_id = $2, last_updated_at = NOW(), last_updated_by = $3
		WHERE payment_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, paymentID, mandateID, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to assign mandate for payment "+paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment %s: %w", paymentID, apperrors.ErrNotFound)
	}
	return nil
}

// UpdatePaymentGroup attaches a payment to a group.
func (r *PgxPaymentRepository) UpdatePaymentGroup(ctx context.Context, paymentID string, groupID string, updatedBy string) error {
	query := `
		UPDATE payments
		SET group_id = $2, last_updated_at = NOW(), last_updated_by = $3
		WHERE payment_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, paymentID, groupID, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to attach payment "+paymentID+" to group", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment %s: %w", paymentID, apperrors.ErrNotFound)
	}
	return nil
}

// UpdatePaymentState moves a payment to a new processing state.
func (r *PgxPaymentRepository) UpdatePaymentState(ctx context.Context, paymentID string, state domain.PaymentState, updatedBy string) error {
	query := `
		UPDATE payments
		SET state = $2, last_updated_at = NOW(), last_updated_by = $3
		WHERE payment_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, paymentID, models.PaymentState(state), updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payment state "+paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment %s: %w", paymentID, apperrors.ErrNotFound)
	}
	return nil
}
