package domain

import "time"

// CardType distinguishes debit from credit cards.
type CardType string

const (
	DebitCard  CardType = "DEBIT"
	CreditCard CardType = "CREDIT"
)

// Card is a payment card attached to one account. The 16-digit Luhn-valid
// number is stored encrypted; plaintext only exists transiently when masking
// for display.
type Card struct {
	CardID          string    `json:"cardID"`
	AccountID       string    `json:"accountID"`
	NumberEncrypted []byte    `json:"-"`
	CardType        CardType  `json:"cardType"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
