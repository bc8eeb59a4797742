package services

import (
	"context"

	"github.com/finbase/sepa_payments_app/internal/core/domain"
	"github.com/finbase/sepa_payments_app/internal/dto"
)

// MandateSvcFacade defines the mandate lifecycle operations.
type MandateSvcFacade interface {
	// CreateMandate creates a mandate in the draft state.
	CreateMandate(ctx context.Context, req dto.CreateMandateRequest, creatorUserID string) (*domain.Mandate, error)

	// GetMandateByID retrieves a mandate with its HasPayments flag populated.
	GetMandateByID(ctx context.Context, mandateID string) (*domain.Mandate, error)

	// ListMandatesByParty lists a party's mandates in their stable ordering.
	ListMandatesByParty(ctx context.Context, partyID string, params dto.ListMandatesParams) (*dto.ListMandatesResponse, error)

	// UpdateMandate updates editable fields, enforcing the immutability rules
	// tied to the mandate's state.
	UpdateMandate(ctx context.Context, mandateID string, req dto.UpdateMandateRequest, userID string) (*domain.Mandate, error)

	// RequestMandate moves draft -> requested.
	RequestMandate(ctx context.Context, mandateID string, userID string) (*domain.Mandate, error)

	// RecallMandate moves requested -> draft.
	RecallMandate(ctx context.Context, mandateID string, userID string) (*domain.Mandate, error)

	// ValidateMandate moves requested -> validated, after checking the fields
	// that become mandatory in the validated state.
	ValidateMandate(ctx context.Context, mandateID string, userID string) (*domain.Mandate, error)

	// CancelMandate moves requested|validated -> canceled.
	CancelMandate(ctx context.Context, mandateID string, userID string) (*domain.Mandate, error)

	// DeleteMandate deletes a mandate, only allowed in draft or canceled state.
	DeleteMandate(ctx context.Context, mandateID string, userID string) error
}
