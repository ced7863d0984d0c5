package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/invisiblebank/bank_api/internal/apperrors"
	"github.com/invisiblebank/bank_api/internal/core/domain"
	portsrepo "github.com/invisiblebank/bank_api/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCardRepository struct {
	pool *pgxpool.Pool
}

// newPgxCardRepository creates a new repository for card data.
func newPgxCardRepository(pool *pgxpool.Pool) *PgxCardRepository {
	return &PgxCardRepository{pool: pool}
}

// Ensure PgxCardRepository implements portsrepo.CardRepository
var _ portsrepo.CardRepository = (*PgxCardRepository)(nil)

const cardColumns = `card_id, account_id, number_encrypted, card_type, is_active, created_at, updated_at`

// SaveCard inserts a new card.
func (r *PgxCardRepository) SaveCard(ctx context.Context, card domain.Card) error {
	query := `
		INSERT INTO cards (` + cardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		card.CardID,
		card.AccountID,
		card.NumberEncrypted,
		card.CardType,
		card.IsActive,
		card.CreatedAt,
		card.UpdatedAt,
	)
	if err != nil {
		if mapped := mapPgError(err); errors.Is(mapped, apperrors.ErrDuplicate) {
			return mapped
		}
		return fmt.Errorf("failed to save card %s: %w", card.CardID, err)
	}
	return nil
}

// FindCardsByAccountIDs retrieves all cards issued against the given
// accounts, newest first.
func (r *PgxCardRepository) FindCardsByAccountIDs(ctx context.Context, accountIDs []string) ([]domain.Card, error) {
	if len(accountIDs) == 0 {
		return []domain.Card{}, nil
	}
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE account_id = ANY($1)
		ORDER BY created_at DESC, card_id DESC;
	`
	rows, err := r.pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	cards := []domain.Card{}
	for rows.Next() {
		var c domain.Card
		err := rows.Scan(
			&c.CardID,
			&c.AccountID,
			&c.NumberEncrypted,
			&c.CardType,
			&c.IsActive,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating card rows: %w", err)
	}
	return cards, nil
}
