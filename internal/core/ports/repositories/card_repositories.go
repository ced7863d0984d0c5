package repositories

import (
	"context"

	"github.com/invisiblebank/bank_api/internal/core/domain"
)

// CardRepository persists cards.
type CardRepository interface {
	SaveCard(ctx context.Context, card domain.Card) error
	FindCardsByAccountIDs(ctx context.Context, accountIDs []string) ([]domain.Card, error)
}
