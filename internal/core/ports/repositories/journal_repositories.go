package repositories

import (
	"context"

	"github.com/finbase/sepa_payments_app/internal/core/domain"
)

// JournalReader defines read operations for payment journal configuration.
type JournalReader interface {
	// FindJournalByID retrieves a payment journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.PaymentJournal, error)

	// ListJournals retrieves all payment journals of a company.
	ListJournals(ctx context.Context, companyID string) ([]domain.PaymentJournal, error)
}

// JournalWriter defines write operations for payment journal configuration.
type JournalWriter interface {
	// SaveJournal persists a new payment journal.
	SaveJournal(ctx context.Context, journal domain.PaymentJournal) error

	// UpdateJournal updates a journal's configuration.
	UpdateJournal(ctx context.Context, journal domain.PaymentJournal) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
