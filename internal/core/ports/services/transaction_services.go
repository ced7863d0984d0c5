package services

import (
	"context"

	"github.com/invisiblebank/bank_api/internal/core/domain"
	"github.com/invisiblebank/bank_api/internal/dto"
)

// TransactionSvcFacade is the ledger's public surface: deposits, withdrawals,
// transfers, and the transaction listing.
type TransactionSvcFacade interface {
	Deposit(ctx context.Context, holderID string, req dto.DepositRequest) (*domain.Transaction, error)
	Withdraw(ctx context.Context, holderID string, req dto.WithdrawalRequest) (*domain.Transaction, error)
	Transfer(ctx context.Context, holderID string, req dto.TransferRequest) (*domain.Transaction, error)
	// ListTransactions returns the holder's transactions, newest first,
	// optionally restricted to one owned account.
	ListTransactions(ctx context.Context, holderID string, accountID *string) ([]domain.Transaction, error)
}
