package repositories

import (
	"context"
	"time"

	"github.com/invisiblebank/bank_api/internal/core/domain"
)

// LedgerRepository owns the ledger's units of work. Each Save* method runs a
// single database transaction: lock the affected account row(s), enforce the
// balance invariants, apply the balance change(s), and append the immutable
// transaction record(s). Either everything commits or nothing does.
type LedgerRepository interface {
	// SaveDeposit credits txn.Amount to txn.AccountID and records txn.
	SaveDeposit(ctx context.Context, txn domain.Transaction) error

	// SaveWithdrawal debits txn.Amount from txn.AccountID and records txn.
	// Fails with apperrors.ErrInsufficientFunds (and writes nothing) when the
	// locked balance is below txn.Amount.
	SaveWithdrawal(ctx context.Context, txn domain.Transaction) error

	// SaveTransfer debits the source (outgoing.AccountID) and records the
	// outgoing leg. When incoming is non-nil the transfer is internal: the
	// destination is resolved by destAccountNumber inside the same
	// transaction, credited, and the incoming leg recorded against it; a
	// missing destination aborts the whole transfer with
	// apperrors.ErrNotFound. With incoming nil only the outgoing leg is
	// written (external transfer).
	SaveTransfer(ctx context.Context, outgoing domain.Transaction, incoming *domain.Transaction, destAccountNumber string) error

	// ListTransactionsByAccountIDs returns all transactions for the given
	// accounts, newest first.
	ListTransactionsByAccountIDs(ctx context.Context, accountIDs []string) ([]domain.Transaction, error)

	// ListTransactionsSince returns one account's transactions created at or
	// after since, newest first.
	ListTransactionsSince(ctx context.Context, accountID string, since time.Time) ([]domain.Transaction, error)
}
