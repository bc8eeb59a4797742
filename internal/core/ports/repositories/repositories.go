package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	MandateRepo MandateRepositoryFacade
	PaymentRepo PaymentRepositoryFacade
	GroupRepo   GroupRepositoryFacade
	JournalRepo JournalRepositoryFacade
	PartyRepo   PartyRepositoryFacade
}
