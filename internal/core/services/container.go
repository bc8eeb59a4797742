package services

import (
	portsrepo "github.com/finbase/sepa_payments_app/internal/core/ports/repositories"
	portssvc "github.com/finbase/sepa_payments_app/internal/core/ports/services"
)

// NewServicesContainer wires every service from the repository provider.
func NewServicesContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServicesContainer {
	return &portssvc.ServicesContainer{
		Mandate: NewMandateService(repos.MandateRepo, repos.PartyRepo),
		Payment: NewPaymentService(repos.PaymentRepo, repos.MandateRepo, repos.JournalRepo, repos.PartyRepo),
		Group:   NewGroupService(repos.GroupRepo, repos.PaymentRepo, repos.MandateRepo, repos.JournalRepo, repos.PartyRepo),
		Journal: NewJournalService(repos.JournalRepo, repos.PartyRepo),
		Party:   NewPartyService(repos.PartyRepo),
	}
}
