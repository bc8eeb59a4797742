package services

import (
	"context"

	"github.com/finbase/sepa_payments_app/internal/core/domain"
	"github.com/finbase/sepa_payments_app/internal/dto"
)

// PartySvcFacade defines party and bank account operations.
type PartySvcFacade interface {
	// CreateParty creates a party.
	CreateParty(ctx context.Context, req dto.CreatePartyRequest, creatorUserID string) (*domain.Party, error)

	// GetPartyByID retrieves a party.
	GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// AddBankAccount attaches a bank account with its numbers to a party.
	AddBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error)

	// ListBankAccountsByParty lists a party's bank accounts with numbers.
	ListBankAccountsByParty(ctx context.Context, partyID string) ([]dto.BankAccountResponse, error)

	// DeleteBankAccountNumber deletes a bank account number; blocked while a
	// mandate references it.
	DeleteBankAccountNumber(ctx context.Context, numberID string, userID string) error
}
