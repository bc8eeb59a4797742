package services

import (
	"context"

	"github.com/finbase/sepa_payments_app/internal/core/domain"
	"github.com/finbase/sepa_payments_app/internal/dto"
)

// GroupSvcFacade defines the payment batch operations.
type GroupSvcFacade interface {
	// CreateGroup assembles payments of one journal and direction into a
	// new batch.
	CreateGroup(ctx context.Context, req dto.CreateGroupRequest, creatorUserID string) (*domain.Group, error)

	// GetGroupByID retrieves a group.
	GetGroupByID(ctx context.Context, groupID string) (*domain.Group, error)

	// ListGroupsByJournal lists a journal's groups, token-paginated.
	ListGroupsByJournal(ctx context.Context, journalID string, params dto.ListGroupsParams) (*dto.ListGroupsResponse, error)

	// ProcessGroup runs the batch: assigns mandates to receivable payments,
	// renders the journal's configured SEPA flavor and stores the message.
	ProcessGroup(ctx context.Context, groupID string, userID string) (*domain.Group, error)

	// ListGroupPayments lists the group's payments in their batch order.
	ListGroupPayments(ctx context.Context, groupID string) ([]dto.PaymentResponse, error)

	// GetGroupFile returns the export filename and UTF-8 bytes of the
	// generated message. It fails with not-found while no message exists.
	GetGroupFile(ctx context.Context, groupID string) (string, []byte, error)
}
