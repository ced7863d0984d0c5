package services

import (
	"context"

	"github.com/invisiblebank/bank_api/internal/core/domain"
)

// StatementSvcFacade builds the windowed, read-only statement projection.
type StatementSvcFacade interface {
	GetStatement(ctx context.Context, holderID string, days int) (*domain.Statement, error)
}
