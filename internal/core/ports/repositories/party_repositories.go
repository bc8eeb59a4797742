package repositories

import (
	"context"

	"github.com/finbase/sepa_payments_app/internal/core/domain"
)

// PartyReader defines read operations for party and bank account data.
type PartyReader interface {
	// FindPartyByID retrieves a party by its unique identifier.
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// FindCompanyByID retrieves a company by its unique identifier.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListBankAccountsByParty retrieves the party's bank accounts in their
	// stable ordering, with their numbers.
	ListBankAccountsByParty(ctx context.Context, partyID string) ([]domain.BankAccount, map[string][]domain.BankAccountNumber, error)

	// FindBankAccountNumberByID retrieves a single bank account number.
	FindBankAccountNumberByID(ctx context.Context, numberID string) (*domain.BankAccountNumber, error)

	// FindBankAccountByID retrieves a single bank account.
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)
}

// PartyWriter defines write operations for party and bank account data.
type PartyWriter interface {
	// SaveParty persists a new party.
	SaveParty(ctx context.Context, party domain.Party) error

	// UpdateParty updates a party's editable fields.
	UpdateParty(ctx context.Context, party domain.Party) error

	// SaveBankAccount persists a bank account with its numbers.
	SaveBankAccount(ctx context.Context, account domain.BankAccount, numbers []domain.BankAccountNumber) error

	// DeleteBankAccountNumber removes a bank account number. The database
	// restricts deletion while any mandate references the number.
	DeleteBankAccountNumber(ctx context.Context, numberID string) error
}

// PartyRepositoryFacade combines all party repository interfaces.
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
}
