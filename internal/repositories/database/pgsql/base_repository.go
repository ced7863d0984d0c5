package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/invisiblebank/bank_api/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common transaction handling for all repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Commit commits a transaction.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback rolls back a transaction. A rollback after a successful commit is
// a no-op, so it is safe to defer unconditionally.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) {
	_ = tx.Rollback(ctx)
}

// mapPgError translates Postgres error codes into the sentinel errors the
// service layer dispatches on. Serialization failures and deadlocks are
// reported as ErrConflict so callers know a retry of the whole unit of work
// may succeed.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505": // unique_violation
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pgErr.ConstraintName)
	case "40001", "40P01": // serialization_failure, deadlock_detected
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, pgErr.Message)
	case "23514": // check_violation; balance check is the DB-level backstop
		if pgErr.ConstraintName == "accounts_balance_nonnegative" {
			return fmt.Errorf("%w: balance check constraint", apperrors.ErrInsufficientFunds)
		}
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, pgErr.ConstraintName)
	}
	return err
}
