package repositories

// RepositoryProvider bundles all repository implementations for injection
// into the service layer.
type RepositoryProvider struct {
	HolderRepo  HolderRepository
	AccountRepo AccountRepository
	LedgerRepo  LedgerRepository
	CardRepo    CardRepository
}
