package services

import (
	"context"

	"github.com/invisiblebank/bank_api/internal/core/domain"
	"github.com/invisiblebank/bank_api/internal/dto"
)

// HolderSvcFacade manages account holders and credential checks.
type HolderSvcFacade interface {
	RegisterHolder(ctx context.Context, req dto.RegisterRequest) (*domain.AccountHolder, error)
	// AuthenticateHolder verifies email+password and returns the holder on
	// success; any failure surfaces as apperrors.ErrUnauthorized without
	// distinguishing unknown email from wrong password.
	AuthenticateHolder(ctx context.Context, email string, password string) (*domain.AccountHolder, error)
	GetHolderByID(ctx context.Context, holderID string) (*domain.AccountHolder, error)
}
