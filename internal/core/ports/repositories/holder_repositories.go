package repositories

import (
	"context"

	"github.com/invisiblebank/bank_api/internal/core/domain"
)

// HolderRepository persists account holders.
type HolderRepository interface {
	// SaveHolder inserts a new holder; a duplicate email surfaces as
	// apperrors.ErrDuplicate.
	SaveHolder(ctx context.Context, holder domain.AccountHolder) error
	FindHolderByID(ctx context.Context, holderID string) (*domain.AccountHolder, error)
	FindHolderByEmail(ctx context.Context, email string) (*domain.AccountHolder, error)
}
