package services

import (
	"context"

	"github.com/invisiblebank/bank_api/internal/dto"
)

// CardSvcFacade issues and lists cards. Responses carry only the last four
// digits; plaintext numbers never leave the service.
type CardSvcFacade interface {
	CreateCard(ctx context.Context, holderID string, req dto.CreateCardRequest) (*dto.CardResponse, error)
	ListCards(ctx context.Context, holderID string, accountID *string) ([]dto.CardResponse, error)
}
