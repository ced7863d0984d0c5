package dto

import (
	"time"

	"github.com/invisiblebank/bank_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DepositRequest credits an owned account.
type DepositRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
}

// WithdrawalRequest debits an owned account.
type WithdrawalRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
}

// TransferRequest moves funds from an owned account to a destination
// identified by routing + account number. A destination routing number equal
// to the institution's own makes the transfer internal.
type TransferRequest struct {
	FromAccountID   string          `json:"fromAccountID" binding:"required"`
	ToRoutingNumber string          `json:"toRoutingNumber" binding:"required,len=9,numeric"`
	ToAccountNumber string          `json:"toAccountNumber" binding:"required,min=1,max=20,numeric"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Description     string          `json:"description" binding:"max=500"`
}

// TransactionResponse is the public view of a ledger record.
type TransactionResponse struct {
	TransactionID     string                 `json:"transactionID"`
	AccountID         string                 `json:"accountID"`
	TransactionType   domain.TransactionType `json:"transactionType"`
	Amount            decimal.Decimal        `json:"amount"`
	PeerRoutingNumber *string                `json:"peerRoutingNumber,omitempty"`
	PeerAccountNumber *string                `json:"peerAccountNumber,omitempty"`
	Description       *string                `json:"description,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:     t.TransactionID,
		AccountID:         t.AccountID,
		TransactionType:   t.TransactionType,
		Amount:            t.Amount,
		PeerRoutingNumber: t.PeerRoutingNumber,
		PeerAccountNumber: t.PeerAccountNumber,
		Description:       t.Description,
		CreatedAt:         t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsResponse wraps the transaction listing.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
