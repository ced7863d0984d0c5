package dto

import (
	"time"

	"github.com/invisiblebank/bank_api/internal/core/domain"
)

// CreateCardRequest issues a card against an owned account.
type CreateCardRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	CardType  domain.CardType `json:"cardType" binding:"required,oneof=DEBIT CREDIT"`
}

// CardResponse is the public view of a card: only the last four digits of the
// number are ever returned.
type CardResponse struct {
	CardID      string          `json:"cardID"`
	AccountID   string          `json:"accountID"`
	NumberLast4 string          `json:"numberLast4"`
	CardType    domain.CardType `json:"cardType"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ListCardsResponse wraps the card listing.
type ListCardsResponse struct {
	Cards []CardResponse `json:"cards"`
}
