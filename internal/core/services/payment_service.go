package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbase/sepa_payments_app/internal/apperrors"
	"github.com/finbase/sepa_payments_app/internal/core/domain"
	portsrepo "github.com/finbase/sepa_payments_app/internal/core/ports/repositories"
	portssvc "github.com/finbase/sepa_payments_app/internal/core/ports/services"
	"github.com/finbase/sepa_payments_app/internal/dto"
	"github.com/finbase/sepa_payments_app/internal/middleware"
)

// paymentService implements the PaymentSvcFacade interface.
type paymentService struct {
	paymentRepo portsrepo.PaymentRepositoryFacade
	mandateRepo portsrepo.MandateRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
	partyRepo   portsrepo.PartyRepositoryFacade
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryFacade,
	mandateRepo portsrepo.MandateRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	partyRepo portsrepo.PartyRepositoryFacade,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo: paymentRepo,
		mandateRepo: mandateRepo,
		journalRepo: journalRepo,
		partyRepo:   partyRepo,
	}
}

// Ensure paymentService implements the portssvc.PaymentSvcFacade interface
var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// CreatePayment creates a draft payment on a journal.
func (s *paymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, req.JournalID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve journal %s: %w", req.JournalID, err)
	}
	if _, err := s.partyRepo.FindPartyByID(ctx, req.PartyID); err != nil {
		return nil, fmt.Errorf("failed to resolve party %s: %w", req.PartyID, err)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if req.CurrencyCode != journal.CurrencyCode {
		return nil, fmt.Errorf("%w: payment currency %s does not match journal currency %s", apperrors.ErrValidation, req.CurrencyCode, journal.CurrencyCode)
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		PaymentID:    uuid.NewString(),
		JournalID:    journal.JournalID,
		PartyID:      req.PartyID,
		Kind:         req.Kind,
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		Description:  req.Description,
		OriginRef:    req.OriginRef,
		State:        domain.PaymentDraft,
		Date:         req.Date,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		logger.Error("Failed to save payment", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	logger.Info("Payment created", slog.String("payment_id", payment.PaymentID), slog.String("kind", string(payment.Kind)))
	return &payment, nil
}

// GetPaymentByID retrieves a payment.
func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	return payment, nil
}

// ListPaymentsByParty lists a party's payments, token-paginated.
func (s *paymentService) ListPaymentsByParty(ctx context.Context, partyID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error) {
	payments, nextToken, err := s.paymentRepo.ListPaymentsByParty(ctx, partyID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments of party %s: %w", partyID, err)
	}
	return &dto.ListPaymentsResponse{
		Payments:  dto.ToPaymentResponses(payments),
		NextToken: nextToken,
	}, nil
}

// AssignMandate manually links a mandate to a receivable payment. The mandate
// must belong to the payment's party; validity is not enforced here so a
// mandate can be linked ahead of its validation.
func (s *paymentService) AssignMandate(ctx context.Context, paymentID string, mandateID string, userID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	if payment.Kind != domain.Receivable {
		return nil, fmt.Errorf("%w: only receivable payments take a mandate", apperrors.ErrValidation)
	}
	mandate, err := s.mandateRepo.FindMandateByID(ctx, mandateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find mandate %s: %w", mandateID, err)
	}
	if mandate.PartyID != payment.PartyID {
		return nil, fmt.Errorf("%w: mandate %q belongs to another party", apperrors.ErrValidation, mandate.RecName())
	}

	if err := s.paymentRepo.UpdatePaymentMandate(ctx, payment.PaymentID, mandate.MandateID, userID); err != nil {
		logger.Error("Failed to assign mandate", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to assign mandate: %w", err)
	}

	payment.MandateID = &mandate.MandateID
	payment.LastUpdatedAt = time.Now().UTC()
	payment.LastUpdatedBy = userID
	return payment, nil
}
