package services

import (
	"context"

	"github.com/finbase/sepa_payments_app/internal/core/domain"
	"github.com/finbase/sepa_payments_app/internal/dto"
)

// PaymentSvcFacade defines payment operations.
type PaymentSvcFacade interface {
	// CreatePayment creates a draft payment.
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error)

	// GetPaymentByID retrieves a payment.
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByParty lists a party's payments, token-paginated.
	ListPaymentsByParty(ctx context.Context, partyID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error)

	// AssignMandate manually assigns a mandate to a payment. The mandate must
	// belong to the payment's party.
	AssignMandate(ctx context.Context, paymentID string, mandateID string, userID string) (*domain.Payment, error)
}
