package services

import (
	"context"

	"github.com/invisiblebank/bank_api/internal/core/domain"
	"github.com/invisiblebank/bank_api/internal/dto"
)

// AccountSvcFacade defines the account operations exposed to handlers.
// Every method takes the authenticated holder ID and enforces ownership
// before touching storage; repositories trust the IDs they are given.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, holderID string, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, holderID string, accountID string) (*domain.Account, error)
	ListAccountsByHolder(ctx context.Context, holderID string) ([]domain.Account, error)
}
