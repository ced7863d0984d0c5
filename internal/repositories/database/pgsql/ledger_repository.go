package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/invisiblebank/bank_api/internal/apperrors"
	"github.com/invisiblebank/bank_api/internal/core/domain"
	portsrepo "github.com/invisiblebank/bank_api/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerRepository owns the ledger's units of work. Balance mutations and
// the immutable transaction records that explain them are written in a single
// database transaction over FOR UPDATE locked account rows.
type PgxLedgerRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepository
}

// newPgxLedgerRepository creates a new repository for ledger data.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepository) *PgxLedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepository
var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

const transactionColumns = `transaction_id, account_id, transaction_type, amount, peer_routing_number, peer_account_number, description, created_at`

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`

func insertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	_, err := tx.Exec(ctx, insertTransactionQuery,
		txn.TransactionID,
		txn.AccountID,
		txn.TransactionType,
		txn.Amount,
		txn.PeerRoutingNumber,
		txn.PeerAccountNumber,
		txn.Description,
		txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, mapPgError(err))
	}
	return nil
}

// SaveDeposit credits txn.Amount to txn.AccountID and records txn, all in
// one database transaction.
func (r *PgxLedgerRepository) SaveDeposit(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.accountRepo.FindAccountForUpdate(ctx, tx, txn.AccountID); err != nil {
		return err
	}
	if err := r.accountRepo.ApplyBalanceChangeInTx(ctx, tx, txn.AccountID, txn.Amount, txn.CreatedAt); err != nil {
		return err
	}
	if err := insertTransactionInTx(ctx, tx, txn); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveWithdrawal debits txn.Amount from txn.AccountID and records txn. The
// funds check runs against the locked row, so a concurrent debit cannot slip
// the balance below zero; on failure nothing is written.
func (r *PgxLedgerRepository) SaveWithdrawal(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	acc, err := r.accountRepo.FindAccountForUpdate(ctx, tx, txn.AccountID)
	if err != nil {
		return err
	}
	if acc.Balance.LessThan(txn.Amount) {
		return fmt.Errorf("%w: balance %s is below %s", apperrors.ErrInsufficientFunds, acc.Balance, txn.Amount)
	}
	if err := r.accountRepo.ApplyBalanceChangeInTx(ctx, tx, txn.AccountID, txn.Amount.Neg(), txn.CreatedAt); err != nil {
		return err
	}
	if err := insertTransactionInTx(ctx, tx, txn); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveTransfer debits the source account and records the outgoing leg. When
// incoming is non-nil the transfer is internal: the destination is resolved
// by destAccountNumber inside the same transaction, credited, and the
// incoming leg recorded against it. A destination that does not exist aborts
// the whole transfer with ErrNotFound; the source is left untouched.
//
// Locks are taken source first, then destination. Two opposing internal
// transfers can therefore deadlock; Postgres breaks the cycle and the loser
// surfaces as ErrConflict, which callers may retry.
func (r *PgxLedgerRepository) SaveTransfer(ctx context.Context, outgoing domain.Transaction, incoming *domain.Transaction, destAccountNumber string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	source, err := r.accountRepo.FindAccountForUpdate(ctx, tx, outgoing.AccountID)
	if err != nil {
		return err
	}

	var dest *domain.Account
	if incoming != nil {
		dest, err = r.accountRepo.FindAccountByNumberForUpdate(ctx, tx, destAccountNumber)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: transfer destination account %s", apperrors.ErrNotFound, destAccountNumber)
			}
			return err
		}
		if !dest.IsActive {
			return fmt.Errorf("%w: transfer destination account is inactive", apperrors.ErrValidation)
		}
	}

	if source.Balance.LessThan(outgoing.Amount) {
		return fmt.Errorf("%w: balance %s is below %s", apperrors.ErrInsufficientFunds, source.Balance, outgoing.Amount)
	}

	if err := r.accountRepo.ApplyBalanceChangeInTx(ctx, tx, source.AccountID, outgoing.Amount.Neg(), outgoing.CreatedAt); err != nil {
		return err
	}
	if err := insertTransactionInTx(ctx, tx, outgoing); err != nil {
		return err
	}

	if incoming != nil {
		incoming.AccountID = dest.AccountID
		if err := r.accountRepo.ApplyBalanceChangeInTx(ctx, tx, dest.AccountID, incoming.Amount, incoming.CreatedAt); err != nil {
			return err
		}
		if err := insertTransactionInTx(ctx, tx, *incoming); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// scanTransaction reads one transaction row in transactionColumns order.
func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.AccountID,
		&txn.TransactionType,
		&txn.Amount,
		&txn.PeerRoutingNumber,
		&txn.PeerAccountNumber,
		&txn.Description,
		&txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *PgxLedgerRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// ListTransactionsByAccountIDs returns all transactions for the given
// accounts, newest first. Ties on created_at break on transaction_id so the
// order is deterministic.
func (r *PgxLedgerRepository) ListTransactionsByAccountIDs(ctx context.Context, accountIDs []string) ([]domain.Transaction, error) {
	if len(accountIDs) == 0 {
		return []domain.Transaction{}, nil
	}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = ANY($1)
		ORDER BY created_at DESC, transaction_id DESC;
	`
	return r.queryTransactions(ctx, query, accountIDs)
}

// ListTransactionsSince returns one account's transactions created at or
// after since, newest first.
func (r *PgxLedgerRepository) ListTransactionsSince(ctx context.Context, accountID string, since time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1 AND created_at >= $2
		ORDER BY created_at DESC, transaction_id DESC;
	`
	return r.queryTransactions(ctx, query, accountID, since)
}
