package repositories

import (
	"context"

	"github.com/finbase/sepa_payments_app/internal/core/domain"
)

// MandateReader defines read operations for mandate data.
type MandateReader interface {
	// FindMandateByID retrieves a mandate by its unique identifier. The
	// HasPayments flag is not populated; use HasPayments for that.
	FindMandateByID(ctx context.Context, mandateID string) (*domain.Mandate, error)

	// ListMandatesByParty retrieves the party's mandates in their stable
	// ordering (creation order), token-paginated. A limit <= 0 disables
	// pagination and returns all mandates; the batch processor relies on
	// scanning the full ordered list.
	ListMandatesByParty(ctx context.Context, partyID string, limit int, nextToken *string) ([]domain.Mandate, *string, error)

	// HasPayments reports, for each given mandate ID, whether at least one
	// payment links to it. The underlying query is chunked to respect a
	// maximum IN-clause size.
	HasPayments(ctx context.Context, mandateIDs []string) (map[string]bool, error)

	// CountPaymentsByMandate returns the number of payments linked to the
	// mandate, used to derive the SEPA sequence type.
	CountPaymentsByMandate(ctx context.Context, mandateID string) (int, error)
}

// MandateWriter defines write operations for mandate data.
type MandateWriter interface {
	// SaveMandate persists a new mandate.
	SaveMandate(ctx context.Context, mandate domain.Mandate) error

	// UpdateMandate updates a mandate's editable fields.
	UpdateMandate(ctx context.Context, mandate domain.Mandate) error

	// UpdateMandateState moves a mandate to a new lifecycle state.
	UpdateMandateState(ctx context.Context, mandateID string, state domain.MandateState, updatedBy string) error

	// DeleteMandate removes a mandate. The database restricts deletion while
	// any payment references the mandate.
	DeleteMandate(ctx context.Context, mandateID string) error
}

// MandateRepositoryFacade combines all mandate repository interfaces.
type MandateRepositoryFacade interface {
	MandateReader
	MandateWriter
}
