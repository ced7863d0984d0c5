package services

// ServiceContainer bundles the service facades for injection into the route
// registration layer.
type ServiceContainer struct {
	Holder      HolderSvcFacade
	Account     AccountSvcFacade
	Transaction TransactionSvcFacade
	Card        CardSvcFacade
	Statement   StatementSvcFacade
}
