package pgsql

import (
	portsrepo "github.com/invisiblebank/bank_api/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	holderRepo := newPgxHolderRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, accountRepo)
	cardRepo := newPgxCardRepository(dbPool)

	return portsrepo.RepositoryProvider{
		HolderRepo:  holderRepo,
		AccountRepo: accountRepo,
		LedgerRepo:  ledgerRepo,
		CardRepo:    cardRepo,
	}
}
