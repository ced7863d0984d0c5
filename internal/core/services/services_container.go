package services

import (
	portsrepo "github.com/invisiblebank/bank_api/internal/core/ports/repositories"
	portssvc "github.com/invisiblebank/bank_api/internal/core/ports/services"
	"github.com/invisiblebank/bank_api/internal/platform/config"
)

// NewServiceContainer wires every service with its repositories and the
// pieces of configuration it needs.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Holder:      NewHolderService(repos.HolderRepo, cfg.EncryptionKey),
		Account:     NewAccountService(repos.AccountRepo, cfg.RoutingNumber),
		Transaction: NewTransactionService(repos.AccountRepo, repos.LedgerRepo, cfg.RoutingNumber),
		Card:        NewCardService(repos.AccountRepo, repos.CardRepo, cfg.EncryptionKey),
		Statement:   NewStatementService(repos.AccountRepo, repos.LedgerRepo),
	}
}
