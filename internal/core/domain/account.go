package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType distinguishes the two retail account kinds.
type AccountType string

const (
	Checking AccountType = "CHECKING"
	Savings  AccountType = "SAVINGS"
)

// Account represents a bank account owned by one account holder.
// Balance is scale-2 and never negative; it is only ever mutated through the
// ledger repository's locked credit/debit paths.
type Account struct {
	AccountID     string          `json:"accountID"` // Primary Key (UUID)
	HolderID      string          `json:"holderID"`  // FK -> account_holders.holder_id
	AccountNumber string          `json:"accountNumber"`
	RoutingNumber string          `json:"routingNumber"`
	AccountType   AccountType     `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
