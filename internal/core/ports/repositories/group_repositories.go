package repositories

import (
	"context"

	"github.com/finbase/sepa_payments_app/internal/core/domain"
)

// GroupReader defines read operations for payment group data.
type GroupReader interface {
	// FindGroupByID retrieves a group by its unique identifier.
	FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error)

	// ListGroupsByJournal retrieves a journal's groups, token-paginated.
	ListGroupsByJournal(ctx context.Context, journalID string, limit int, nextToken *string) ([]domain.Group, *string, error)
}

// GroupWriter defines write operations for payment group data.
type GroupWriter interface {
	// SaveGroup persists a new group.
	SaveGroup(ctx context.Context, group domain.Group) error

	// UpdateGroupMessage stores the generated SEPA message on the group.
	UpdateGroupMessage(ctx context.Context, groupID string, message string, updatedBy string) error
}

// GroupRepositoryFacade combines all group repository interfaces.
type GroupRepositoryFacade interface {
	GroupReader
	GroupWriter
}
