package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/invisiblebank/bank_api/internal/apperrors"
	"github.com/invisiblebank/bank_api/internal/core/domain"
	portsrepo "github.com/invisiblebank/bank_api/internal/core/ports/repositories"
	portssvc "github.com/invisiblebank/bank_api/internal/core/ports/services"
	"github.com/invisiblebank/bank_api/internal/middleware"
)

const (
	defaultStatementDays = 30
	maxStatementDays     = 365
)

type StatementService struct {
	accountRepo portsrepo.AccountRepository
	ledgerRepo  portsrepo.LedgerRepository
}

func NewStatementService(accountRepo portsrepo.AccountRepository, ledgerRepo portsrepo.LedgerRepository) *StatementService {
	return &StatementService{accountRepo: accountRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.StatementSvcFacade = (*StatementService)(nil)

// GetStatement builds a read-only projection of the holder's accounts and
// their transactions over the trailing window. It never mutates ledger state;
// balances are reported as currently stored.
func (s *StatementService) GetStatement(ctx context.Context, holderID string, days int) (*domain.Statement, error) {
	if days == 0 {
		days = defaultStatementDays
	}
	if days < 0 || days > maxStatementDays {
		return nil, fmt.Errorf("%w: statement window must be between 1 and %d days", apperrors.ErrValidation, maxStatementDays)
	}

	periodEnd := time.Now().UTC()
	periodStart := periodEnd.AddDate(0, 0, -days)

	accounts, err := s.accountRepo.FindAccountsByHolderID(ctx, holderID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to load accounts for statement", slog.String("error", err.Error()))
		return nil, err
	}

	statement := &domain.Statement{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Accounts:    make([]domain.AccountStatement, 0, len(accounts)),
	}

	for _, acc := range accounts {
		txns, err := s.ledgerRepo.ListTransactionsSince(ctx, acc.AccountID, periodStart)
		if err != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to load transactions for statement",
				slog.String("account_id", acc.AccountID), slog.String("error", err.Error()))
			return nil, err
		}
		statement.Accounts = append(statement.Accounts, domain.AccountStatement{
			AccountID:     acc.AccountID,
			AccountNumber: acc.AccountNumber,
			AccountType:   acc.AccountType,
			Balance:       acc.Balance,
			Transactions:  txns,
		})
		statement.TotalTransactions += len(txns)
	}

	return statement, nil
}
