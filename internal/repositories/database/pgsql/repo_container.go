package pgsql

import (
	portsrepo "github.com/finbase/sepa_payments_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	mandateRepo := newPgxMandateRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	groupRepo := newPgxGroupRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	partyRepo := newPgxPartyRepository(dbPool)

	return portsrepo.RepositoryProvider{
		MandateRepo: mandateRepo,
		PaymentRepo: paymentRepo,
		GroupRepo:   groupRepo,
		JournalRepo: journalRepo,
		PartyRepo:   partyRepo,
	}
}
