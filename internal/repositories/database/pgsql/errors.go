package pgsql

import (
	"errors"
	"fmt"

	"github.com/finbase/sepa_payments_app/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the repositories translate into domain errors.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// translateConstraint maps referential integrity failures onto the conflict
// sentinel so services and handlers can react without knowing about pgconn.
// Other errors pass through unchanged.
func translateConstraint(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s is referenced by other records", apperrors.ErrConflict, what)
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s already exists", apperrors.ErrConflict, what)
		}
	}
	return err
}
