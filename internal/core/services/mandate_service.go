package services

import (
	"context"
	"errors"
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

var (
	ErrIdentificationTooLong = errors.New("mandate identification exceeds 35 characters")
	ErrMandateImmutable      = errors.New("mandate fields are read-only in this state")
	ErrAccountNotOwned       = errors.New("account number is not owned by the mandate's party")
)

// mandateService owns the mandate lifecycle: creation, the explicit state
// transitions, the immutability rules and the deletion guard.
type mandateService struct {
	mandateRepo portsrepo.MandateRepositoryFacade
	partyRepo   portsrepo.PartyRepositoryFacade
}

// NewMandateService creates a new MandateService.
func NewMandateService(mandateRepo portsrepo.MandateRepositoryFacade, partyRepo portsrepo.PartyRepositoryFacade) portssvc.MandateSvcFacade {
	return &mandateService{
		mandateRepo: mandateRepo,
		partyRepo:   partyRepo,
	}
}

// Ensure mandateService implements the portssvc.MandateSvcFacade interface
var _ portssvc.MandateSvcFacade = (*mandateService)(nil)

// CreateMandate creates a mandate in the draft state.
func (s *mandateService) CreateMandate(ctx context.Context, req dto.CreateMandateRequest, creatorUserID string) (*domain.Mandate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Identification) > domain.MaxIdentificationLen {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrIdentificationTooLong)
	}

	if _, err := s.partyRepo.FindPartyByID(ctx, req.PartyID); err != nil {
		return nil, fmt.Errorf("failed to resolve mandate party %s: %w", req.PartyID, err)
	}
	if _, err := s.partyRepo.FindCompanyByID(ctx, req.CompanyID); err != nil {
		return nil, fmt.Errorf("failed to resolve mandate company %s: %w", req.CompanyID, err)
	}
	if req.AccountNumberID != nil {
		if err := s.checkAccountOwnership(ctx, req.PartyID, *req.AccountNumberID); err != nil {
			return nil, err
		}
	}

	mandateType := req.Type
	if mandateType == "" {
		mandateType = domain.MandateRecurrent
	}

	now := time.Now().UTC()
	mandate := domain.Mandate{
		MandateID:       uuid.NewString(),
		PartyID:         req.PartyID,
		CompanyID:       req.CompanyID,
		AccountNumberID: req.AccountNumberID,
		Identification:  req.Identification,
		Type:            mandateType,
		SignatureDate:   req.SignatureDate,
		State:           domain.MandateDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.mandateRepo.SaveMandate(ctx, mandate); err != nil {
		logger.Error("Failed to save mandate", slog.String("error", err.Error()), slog.String("party_id", req.PartyID))
		return nil, fmt.Errorf("failed to save mandate: %w", err)
	}

	logger.Info("Mandate created", slog.String("mandate_id", mandate.MandateID), slog.String("party_id", mandate.PartyID))
	return &mandate, nil
}

// GetMandateByID retrieves a mandate with its HasPayments flag populated.
func (s *mandateService) GetMandateByID(ctx context.Context, mandateID string) (*domain.Mandate, error) {
	mandate, err := s.mandateRepo.FindMandateByID(ctx, mandateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find mandate %s: %w", mandateID, err)
	}
	hasPayments, err := s.mandateRepo.HasPayments(ctx, []string{mandateID})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payments for mandate %s: %w", mandateID, err)
	}
	mandate.HasPayments = hasPayments[mandateID]
	return mandate, nil
}

// ListMandatesByParty lists a party's mandates in their stable ordering.
func (s *mandateService) ListMandatesByParty(ctx context.Context, partyID string, params dto.ListMandatesParams) (*dto.ListMandatesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	mandates, nextToken, err := s.mandateRepo.ListMandatesByParty(ctx, partyID, params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list mandates", slog.String("error", err.Error()), slog.String("party_id", partyID))
		return nil, fmt.Errorf("failed to list mandates: %w", err)
	}

	ids := make([]string, len(mandates))
	for i, m := range mandates {
		ids[i] = m.MandateID
	}
	hasPayments, err := s.mandateRepo.HasPayments(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payments for mandates: %w", err)
	}

	responses := make([]dto.MandateResponse, len(mandates))
	for i := range mandates {
		mandates[i].HasPayments = hasPayments[mandates[i].MandateID]
		responses[i] = dto.ToMandateResponse(&mandates[i])
	}

	return &dto.ListMandatesResponse{
		Mandates:  responses,
		NextToken: nextToken,
	}, nil
}

// UpdateMandate updates a mandate's editable fields. Account number,
// identification, type and signature date freeze once the mandate is
// validated or canceled.
func (s *mandateService) UpdateMandate(ctx context.Context, mandateID string, req dto.UpdateMandateRequest, userID string) (*domain.Mandate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	mandate, err := s.mandateRepo.FindMandateByID(ctx, mandateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find mandate %s: %w", mandateID, err)
	}

	touches := req.AccountNumberID != nil || req.Identification != nil || req.Type != nil || req.SignatureDate != nil
	if !touches {
		return mandate, nil
	}

	if mandate.State == domain.MandateValidated || mandate.State == domain.MandateCanceled {
		return nil, fmt.Errorf("%w: %s (mandate %q is %s)", apperrors.ErrConflict, ErrMandateImmutable, mandate.RecName(), mandate.State)
	}

	if req.Identification != nil {
		if len(*req.Identification) > domain.MaxIdentificationLen {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrIdentificationTooLong)
		}
		mandate.Identification = *req.Identification
	}
	if req.AccountNumberID != nil {
		if err := s.checkAccountOwnership(ctx, mandate.PartyID, *req.AccountNumberID); err != nil {
			return nil, err
		}
		mandate.AccountNumberID = req.AccountNumberID
	}
	if req.Type != nil {
		mandate.Type = *req.Type
	}
	if req.SignatureDate != nil {
		mandate.SignatureDate = req.SignatureDate
	}

	mandate.LastUpdatedAt = time.Now().UTC()
	mandate.LastUpdatedBy = userID

	if err := s.mandateRepo.UpdateMandate(ctx, *mandate); err != nil {
		logger.Error("Failed to update mandate", slog.String("error", err.Error()), slog.String("mandate_id", mandateID))
		return nil, fmt.Errorf("failed to update mandate: %w", err)
	}
	return mandate, nil
}

// RequestMandate moves draft -> requested.
func (s *mandateService) RequestMandate(ctx context.Context, mandateID string, userID string) (*domain.Mandate, error) {
	return s.transition(ctx, mandateID, domain.MandateRequested, userID)
}

// RecallMandate moves requested -> draft.
func (s *mandateService) RecallMandate(ctx context.Context, mandateID string, userID string) (*domain.Mandate, error) {
	return s.transition(ctx, mandateID, domain.MandateDraft, userID)
}

// ValidateMandate moves requested -> validated. Account number,
// identification and signature date become mandatory at this point.
func (s *mandateService) ValidateMandate(ctx context.Context, mandateID string, userID string) (*domain.Mandate, error) {
	return s.transition(ctx, mandateID, domain.MandateValidated, userID)
}

// CancelMandate moves requested|validated -> canceled.
func (s *mandateService) CancelMandate(ctx context.Context, mandateID string, userID string) (*domain.Mandate, error) {
	return s.transition(ctx, mandateID, domain.MandateCanceled, userID)
}

// transition applies one explicit lifecycle move, rejecting everything the
// transition table does not allow.
func (s *mandateService) transition(ctx context.Context, mandateID string, to domain.MandateState, userID string) (*domain.Mandate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	mandate, err := s.mandateRepo.FindMandateByID(ctx, mandateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find mandate %s: %w", mandateID, err)
	}

	if !mandate.CanTransition(to) {
		logger.Warn("Illegal mandate transition", slog.String("mandate_id", mandateID), slog.String("from", string(mandate.State)), slog.String("to", string(to)))
		return nil, fmt.Errorf("%w: mandate %q cannot move from %s to %s", apperrors.ErrConflict, mandate.RecName(), mandate.State, to)
	}

	if to == domain.MandateValidated && !mandate.ReadyForValidation() {
		return nil, fmt.Errorf("%w: account number, identification and signature date are required to validate mandate %q", apperrors.ErrValidation, mandate.RecName())
	}

	if err := s.mandateRepo.UpdateMandateState(ctx, mandateID, to, userID); err != nil {
		logger.Error("Failed to update mandate state", slog.String("error", err.Error()), slog.String("mandate_id", mandateID))
		return nil, fmt.Errorf("failed to update mandate state: %w", err)
	}

	logger.Info("Mandate transitioned", slog.String("mandate_id", mandateID), slog.String("from", string(mandate.State)), slog.String("to", string(to)))
	mandate.State = to
	mandate.LastUpdatedBy = userID
	mandate.LastUpdatedAt = time.Now().UTC()
	return mandate, nil
}

// DeleteMandate deletes a mandate. Only draft and canceled mandates can be
// deleted; the database additionally restricts deletion while payments
// reference the mandate.
func (s *mandateService) DeleteMandate(ctx context.Context, mandateID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	mandate, err := s.mandateRepo.FindMandateByID(ctx, mandateID)
	if err != nil {
		return fmt.Errorf("failed to find mandate %s: %w", mandateID, err)
	}

	if !mandate.Deletable() {
		return fmt.Errorf("%w: cannot delete mandate %q because it is not in draft or canceled state", apperrors.ErrValidation, mandate.RecName())
	}

	if err := s.mandateRepo.DeleteMandate(ctx, mandateID); err != nil {
		logger.Error("Failed to delete mandate", slog.String("error", err.Error()), slog.String("mandate_id", mandateID))
		return fmt.Errorf("failed to delete mandate: %w", err)
	}

	logger.Info("Mandate deleted", slog.String("mandate_id", mandateID), slog.String("deleted_by", userID))
	return nil
}

// checkAccountOwnership verifies that an iban-typed account number belongs to
// one of the party's bank accounts.
func (s *mandateService) checkAccountOwnership(ctx context.Context, partyID, numberID string) error {
	number, err := s.partyRepo.FindBankAccountNumberByID(ctx, numberID)
	if err != nil {
		return fmt.Errorf("failed to resolve account number %s: %w", numberID, err)
	}
	if number.Type != domain.NumberIBAN {
		return fmt.Errorf("%w: mandate account number must be an IBAN", apperrors.ErrValidation)
	}
	account, err := s.partyRepo.FindBankAccountByID(ctx, number.BankAccountID)
	if err != nil {
		return fmt.Errorf("failed to resolve bank account %s: %w", number.BankAccountID, err)
	}
	if account.OwnerPartyID != partyID {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAccountNotOwned)
	}
	return nil
}
