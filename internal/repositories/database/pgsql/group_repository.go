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

type PgxGroupRepository struct {
	BaseRepository
}

// newPgxGroupRepository creates a new repository for payment group data.
func newPgxGroupRepository(pool *pgxpool.Pool) portsrepo.GroupRepositoryFacade {
	return &PgxGroupRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxGroupRepository implements portsrepo.GroupRepositoryFacade
var _ portsrepo.GroupRepositoryFacade = (*PgxGroupRepository)(nil)

const groupColumns = `
	group_id, journal_id, company_id, kind, rec_name, message,
	created_at, created_by, last_updated_at, last_updated_by`

func scanGroup(row pgx.Row) (*models.Group, error) {
	var m models.Group
	err := row.Scan(
		&m.GroupID,
		&m.JournalID,
		&m.CompanyID,
		&m.Kind,
		&m.RecName,
		&m.Message,
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

// FindGroupByID retrieves a group by its ID.
func (r *PgxGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	query := `SELECT` + groupColumns + ` FROM payment_groups WHERE group_id = $1;`

	model, err := scanGroup(r.Pool.QueryRow(ctx, query, groupID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("group %s: %w", groupID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find group "+groupID, err)
	}

	group := mapping.ToDomainGroup(*model)
	return &group, nil
}

// ListGroupsByJournal retrieves a journal's groups, token-paginated.
func (r *PgxGroupRepository) ListGroupsByJournal(ctx context.Context, journalID string, limit int, nextToken *string) ([]domain.Group, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT` + groupColumns + ` FROM payment_groups WHERE journal_id = $1`
	args := []interface{}{journalID}

	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, group_id) > ($2, $3)`
		args = append(args, createdAt, id)
	}
	query += fmt.Sprintf(` ORDER BY created_at, group_id LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list groups for journal "+journalID, err)
	}
	defer rows.Close()

	var ms []models.Group
	for rows.Next() {
		m, err := scanGroup(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan group row", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate group rows", err)
	}

	var token *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.GroupID)
		token = &t
	}

	return mapping.ToDomainGroupSlice(ms), token, nil
}

// SaveGroup persists a new group.
func (r *PgxGroupRepository) SaveGroup(ctx context.Context, group domain.Group) error {
	m := mapping.ToModelGroup(group)
	query := `
		INSERT INTO payment_groups (
			group_id, journal_id, company_id, kind, rec_name, message,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.GroupID,
		m.JournalID,
		m.CompanyID,
		m.Kind,
		m.RecName,
		m.Message,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if cErr := translateConstraint(err, "group "+m.GroupID); cErr != err {
			return cErr
		}
		return apperrors.NewAppError(500, "failed to insert group "+m.GroupID, err)
	}
	return nil
}

// UpdateGroupMessage stores the generated SEPA message on the group.
func (r *PgxGroupRepository) UpdateGroupMessage(ctx context.Context, groupID string, message string, updatedBy string) error {
	query := `
		UPDATE payment_groups
		SET message = $2, last_updated_at = NOW(), last_updated_by = $3
		WHERE group_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, groupID, message, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to store message for group "+groupID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("group %s: %w", groupID, apperrors.ErrNotFound)
	}
	return nil
}
