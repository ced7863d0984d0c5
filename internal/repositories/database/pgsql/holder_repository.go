package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/invisiblebank/bank_api/internal/apperrors"
	"github.com/invisiblebank/bank_api/internal/core/domain"
	portsrepo "github.com/invisiblebank/bank_api/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxHolderRepository struct {
	pool *pgxpool.Pool
}

// newPgxHolderRepository creates a new repository for account holder data.
func newPgxHolderRepository(pool *pgxpool.Pool) *PgxHolderRepository {
	return &PgxHolderRepository{pool: pool}
}

// Ensure PgxHolderRepository implements portsrepo.HolderRepository
var _ portsrepo.HolderRepository = (*PgxHolderRepository)(nil)

const holderColumns = `holder_id, name, email, password_hash, ssn_encrypted, date_of_birth, mailing_address, is_active, created_at, updated_at`

func scanHolder(row pgx.Row) (*domain.AccountHolder, error) {
	var h domain.AccountHolder
	err := row.Scan(
		&h.HolderID,
		&h.Name,
		&h.Email,
		&h.PasswordHash,
		&h.SSNEncrypted,
		&h.DateOfBirth,
		&h.MailingAddress,
		&h.IsActive,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// SaveHolder inserts a new holder. A duplicate email surfaces as
// ErrDuplicate.
func (r *PgxHolderRepository) SaveHolder(ctx context.Context, holder domain.AccountHolder) error {
	query := `
		INSERT INTO account_holders (` + holderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		holder.HolderID,
		holder.Name,
		holder.Email,
		holder.PasswordHash,
		holder.SSNEncrypted,
		holder.DateOfBirth,
		holder.MailingAddress,
		holder.IsActive,
		holder.CreatedAt,
		holder.UpdatedAt,
	)
	if err != nil {
		if mapped := mapPgError(err); errors.Is(mapped, apperrors.ErrDuplicate) {
			return mapped
		}
		return fmt.Errorf("failed to save holder %s: %w", holder.HolderID, err)
	}
	return nil
}

// FindHolderByID retrieves a holder by ID.
func (r *PgxHolderRepository) FindHolderByID(ctx context.Context, holderID string) (*domain.AccountHolder, error) {
	query := `SELECT ` + holderColumns + ` FROM account_holders WHERE holder_id = $1;`

	h, err := scanHolder(r.pool.QueryRow(ctx, query, holderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find holder by ID %s: %w", holderID, err)
	}
	return h, nil
}

// FindHolderByEmail retrieves a holder by email, used for login.
func (r *PgxHolderRepository) FindHolderByEmail(ctx context.Context, email string) (*domain.AccountHolder, error) {
	query := `SELECT ` + holderColumns + ` FROM account_holders WHERE email = $1;`

	h, err := scanHolder(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find holder by email: %w", err)
	}
	return h, nil
}
