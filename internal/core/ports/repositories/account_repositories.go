package repositories

import (
	"context"
	"time"

	"github.com/invisiblebank/bank_api/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountRepository persists accounts and exposes the locked balance
// primitives the ledger builds on.
//
// The ...InTx / ...ForUpdate methods take an open pgx.Tx and must only be
// called from inside a ledger unit of work: a balance is never read for a
// debit precondition, or written, outside a transaction that also records the
// matching audit row.
type AccountRepository interface {
	// SaveAccount inserts a new account. A duplicate account number surfaces
	// as apperrors.ErrDuplicate so the caller can retry generation.
	SaveAccount(ctx context.Context, account domain.Account) error

	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountsByHolderID(ctx context.Context, holderID string) ([]domain.Account, error)

	// FindAccountForUpdate loads an account row with FOR UPDATE inside tx.
	FindAccountForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// FindAccountByNumberForUpdate resolves an internal transfer destination
	// by account number, locking the row inside tx.
	FindAccountByNumberForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*domain.Account, error)

	// ApplyBalanceChangeInTx adds delta (negative for debits) to the locked
	// account's balance inside tx.
	ApplyBalanceChangeInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, now time.Time) error
}
