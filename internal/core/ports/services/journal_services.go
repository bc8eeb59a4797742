package services

import (
	"context"

	"github.com/finbase/sepa_payments_app/internal/core/domain"
	"github.com/finbase/sepa_payments_app/internal/dto"
)

// JournalSvcFacade defines payment journal configuration operations.
type JournalSvcFacade interface {
	// CreateJournal creates a payment journal.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.PaymentJournal, error)

	// GetJournalByID retrieves a payment journal.
	GetJournalByID(ctx context.Context, journalID string) (*domain.PaymentJournal, error)

	// ListJournals lists a company's payment journals.
	ListJournals(ctx context.Context, companyID string) ([]domain.PaymentJournal, error)

	// UpdateJournal updates a journal's configuration.
	UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.PaymentJournal, error)
}
