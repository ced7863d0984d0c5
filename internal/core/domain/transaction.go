package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the kind of ledger movement a transaction records.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
	Transfer   TransactionType = "TRANSFER"
)

// Transaction is an immutable audit record of one balance change on one
// account. Internal transfers produce two of these, cross-referenced through
// the peer fields; rows are append-only and never updated.
type Transaction struct {
	TransactionID     string          `json:"transactionID"` // globally unique (UUID)
	AccountID         string          `json:"accountID"`     // FK -> accounts.account_id
	TransactionType   TransactionType `json:"transactionType"`
	Amount            decimal.Decimal `json:"amount"` // strictly positive, scale 2
	PeerRoutingNumber *string         `json:"peerRoutingNumber,omitempty"`
	PeerAccountNumber *string         `json:"peerAccountNumber,omitempty"`
	Description       *string         `json:"description,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}
