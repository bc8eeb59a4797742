package services

// ServicesContainer bundles all service facades for handler registration.
type ServicesContainer struct {
	Mandate MandateSvcFacade
	Payment PaymentSvcFacade
	Group   GroupSvcFacade
	Journal JournalSvcFacade
	Party   PartySvcFacade
}
