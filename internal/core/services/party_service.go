package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/finbase/sepa_payments_app/internal/apperrors"
	"github.com/finbase/sepa_payments_app/internal/core/domain"
	portsrepo "github.com/finbase/sepa_payments_app/internal/core/ports/repositories"
	portssvc "github.com/finbase/sepa_payments_app/internal/core/ports/services"
	"github.com/finbase/sepa_payments_app/internal/dto"
	"github.com/finbase/sepa_payments_app/internal/middleware"
)

// partyService implements the PartySvcFacade interface.
type partyService struct {
	partyRepo portsrepo.PartyRepositoryFacade
	validate  *validator.Validate
}

// NewPartyService creates a new PartyService.
func NewPartyService(partyRepo portsrepo.PartyRepositoryFacade) portssvc.PartySvcFacade {
	return &partyService{
		partyRepo: partyRepo,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Ensure partyService implements the portssvc.PartySvcFacade interface
var _ portssvc.PartySvcFacade = (*partyService)(nil)

// CreateParty creates a party.
func (s *partyService) CreateParty(ctx context.Context, req dto.CreatePartyRequest, creatorUserID string) (*domain.Party, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	party := domain.Party{
		PartyID:                uuid.NewString(),
		Name:                   req.Name,
		SEPACreditorIdentifier: req.SEPACreditorIdentifier,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		logger.Error("Failed to save party", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save party: %w", err)
	}

	logger.Info("Party created", slog.String("party_id", party.PartyID))
	return &party, nil
}

// GetPartyByID retrieves a party.
func (s *partyService) GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find party %s: %w", partyID, err)
	}
	return party, nil
}

// AddBankAccount attaches a bank account with its numbers to a party. Numbers
// declared as IBANs are format-checked (structure and check digits) and
// stored without spaces.
func (s *partyService) AddBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.partyRepo.FindPartyByID(ctx, req.OwnerPartyID); err != nil {
		return nil, fmt.Errorf("failed to resolve party %s: %w", req.OwnerPartyID, err)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}
	account := domain.BankAccount{
		BankAccountID: uuid.NewString(),
		OwnerPartyID:  req.OwnerPartyID,
		BankName:      req.BankName,
		BIC:           strings.ToUpper(req.BIC),
		AuditFields:   audit,
	}

	numbers := make([]domain.BankAccountNumber, 0, len(req.Numbers))
	for _, nr := range req.Numbers {
		number := strings.ReplaceAll(nr.Number, " ", "")
		if nr.Type == domain.NumberIBAN {
			number = strings.ToUpper(number)
			if err := s.validate.Var(number, "iban"); err != nil {
				return nil, fmt.Errorf("%w: %q is not a valid IBAN", apperrors.ErrValidation, nr.Number)
			}
		}
		numbers = append(numbers, domain.BankAccountNumber{
			NumberID:      uuid.NewString(),
			BankAccountID: account.BankAccountID,
			Type:          nr.Type,
			Number:        number,
			AuditFields:   audit,
		})
	}

	if err := s.partyRepo.SaveBankAccount(ctx, account, numbers); err != nil {
		logger.Error("Failed to save bank account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save bank account: %w", err)
	}

	logger.Info("Bank account added", slog.String("bank_account_id", account.BankAccountID), slog.Int("numbers", len(numbers)))
	return &account, nil
}

// ListBankAccountsByParty lists a party's bank accounts with their numbers.
func (s *partyService) ListBankAccountsByParty(ctx context.Context, partyID string) ([]dto.BankAccountResponse, error) {
	accounts, numbers, err := s.partyRepo.ListBankAccountsByParty(ctx, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts of party %s: %w", partyID, err)
	}
	res := make([]dto.BankAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = dto.ToBankAccountResponse(&accounts[i], numbers[accounts[i].BankAccountID])
	}
	return res, nil
}

// DeleteBankAccountNumber deletes a bank account number. The database
// restricts the deletion while any mandate references the number; the
// repository surfaces that as a conflict.
func (s *partyService) DeleteBankAccountNumber(ctx context.Context, numberID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.partyRepo.FindBankAccountNumberByID(ctx, numberID); err != nil {
		return fmt.Errorf("failed to find account number %s: %w", numberID, err)
	}
	if err := s.partyRepo.DeleteBankAccountNumber(ctx, numberID); err != nil {
		logger.Warn("Failed to delete account number", slog.String("error", err.Error()), slog.String("number_id", numberID), slog.String("user_id", userID))
		return fmt.Errorf("failed to delete account number %s: %w", numberID, err)
	}
	logger.Info("Bank account number deleted", slog.String("number_id", numberID))
	return nil
}
