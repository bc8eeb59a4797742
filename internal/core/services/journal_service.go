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

// journalService implements the JournalSvcFacade interface.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	partyRepo   portsrepo.PartyRepositoryFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, partyRepo portsrepo.PartyRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{journalRepo: journalRepo, partyRepo: partyRepo}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournal creates a payment journal after checking that its SEPA
// configuration is coherent.
func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.PaymentJournal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.partyRepo.FindCompanyByID(ctx, req.CompanyID); err != nil {
		return nil, fmt.Errorf("failed to resolve company %s: %w", req.CompanyID, err)
	}

	now := time.Now().UTC()
	journal := domain.PaymentJournal{
		JournalID:               uuid.NewString(),
		Name:                    req.Name,
		CompanyID:               req.CompanyID,
		CurrencyCode:            req.CurrencyCode,
		Method:                  req.Method,
		SEPABankAccountNumberID: req.SEPABankAccountNumberID,
		PayableFlavor:           req.PayableFlavor,
		ReceivableFlavor:        req.ReceivableFlavor,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.checkSEPAConfig(ctx, &journal); err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	logger.Info("Journal created", slog.String("journal_id", journal.JournalID), slog.String("method", string(journal.Method)))
	return &journal, nil
}

// GetJournalByID retrieves a payment journal.
func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.PaymentJournal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	return journal, nil
}

// ListJournals lists a company's payment journals.
func (s *journalService) ListJournals(ctx context.Context, companyID string) ([]domain.PaymentJournal, error) {
	journals, err := s.journalRepo.ListJournals(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals of company %s: %w", companyID, err)
	}
	return journals, nil
}

// UpdateJournal updates a journal's configuration, re-checking SEPA coherence
// on the merged result.
func (s *journalService) UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.PaymentJournal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}

	if req.Name != nil {
		journal.Name = *req.Name
	}
	if req.Method != nil {
		journal.Method = *req.Method
	}
	if req.SEPABankAccountNumberID != nil {
		journal.SEPABankAccountNumberID = req.SEPABankAccountNumberID
	}
	if req.PayableFlavor != nil {
		journal.PayableFlavor = *req.PayableFlavor
	}
	if req.ReceivableFlavor != nil {
		journal.ReceivableFlavor = *req.ReceivableFlavor
	}
	if err := s.checkSEPAConfig(ctx, journal); err != nil {
		return nil, err
	}

	journal.LastUpdatedAt = time.Now().UTC()
	journal.LastUpdatedBy = userID
	if err := s.journalRepo.UpdateJournal(ctx, *journal); err != nil {
		logger.Error("Failed to update journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to update journal: %w", err)
	}
	return journal, nil
}

// checkSEPAConfig enforces that SEPA journals carry an originating account
// and the flavor their direction renders with: credit transfer methods need a
// payable flavor, direct debit methods a receivable one.
func (s *journalService) checkSEPAConfig(ctx context.Context, journal *domain.PaymentJournal) error {
	if !journal.IsSEPA() {
		return nil
	}
	if journal.SEPABankAccountNumberID == nil {
		return fmt.Errorf("%w: SEPA journal %q needs a bank account number", apperrors.ErrValidation, journal.Name)
	}
	number, err := s.partyRepo.FindBankAccountNumberByID(ctx, *journal.SEPABankAccountNumberID)
	if err != nil {
		return fmt.Errorf("failed to resolve journal account number: %w", err)
	}
	if number.Type != domain.NumberIBAN {
		return fmt.Errorf("%w: SEPA journal %q needs an IBAN account number", apperrors.ErrValidation, journal.Name)
	}

	switch journal.Method {
	case domain.ProcessSEPATrf, domain.ProcessSEPAChk:
		if journal.PayableFlavor == "" {
			return fmt.Errorf("%w: journal %q needs a payable flavor for %s", apperrors.ErrValidation, journal.Name, journal.Method)
		}
	case domain.ProcessSEPACore, domain.ProcessSEPAB2B:
		if journal.ReceivableFlavor == "" {
			return fmt.Errorf("%w: journal %q needs a receivable flavor for %s", apperrors.ErrValidation, journal.Name, journal.Method)
		}
	}
	return nil
}
