package repositories

import (
	"context"

	"github.com/finbase/sepa_payments_app/internal/core/domain"
)

// PaymentReader defines read operations for payment data.
type PaymentReader interface {
	// FindPaymentByID retrieves a payment by its unique identifier.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByGroup retrieves a group's payments in creation order.
	ListPaymentsByGroup(ctx context.Context, groupID string) ([]domain.Payment, error)

	// ListPaymentsByParty retrieves a party's payments, token-paginated.
	ListPaymentsByParty(ctx context.Context, partyID string, limit int, nextToken *string) ([]domain.Payment, *string, error)
}

// PaymentWriter defines write operations for payment data.
type PaymentWriter interface {
	// SavePayment persists a new payment.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// UpdatePaymentMandate assigns a mandate to a payment. Used both for
	// manual assignment and by the batch processor's apply-as-you-go loop.
	UpdatePaymentMandate(ctx context.Context, paymentID string, mandateID string, updatedBy string) error

	// UpdatePaymentGroup attaches a payment to a group.
	UpdatePaymentGroup(ctx context.Context, paymentID string, groupID string, updatedBy string) error

	// UpdatePaymentState moves a payment to a new processing state.
	UpdatePaymentState(ctx context.Context, paymentID string, state domain.PaymentState, updatedBy string) error
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
