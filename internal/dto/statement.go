package dto

import (
	"time"

	"github.com/invisiblebank/bank_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountStatementResponse pairs one account with its windowed transactions.
type AccountStatementResponse struct {
	AccountID     string                `json:"accountID"`
	AccountNumber string                `json:"accountNumber"`
	AccountType   domain.AccountType    `json:"accountType"`
	Balance       decimal.Decimal       `json:"balance"`
	Transactions  []TransactionResponse `json:"transactions"`
}

// StatementResponse is the full statement projection for a holder.
type StatementResponse struct {
	PeriodStart       time.Time                  `json:"periodStart"`
	PeriodEnd         time.Time                  `json:"periodEnd"`
	Accounts          []AccountStatementResponse `json:"accounts"`
	TotalTransactions int                        `json:"totalTransactions"`
}

// ToStatementResponse converts a domain.Statement to its response DTO.
func ToStatementResponse(s *domain.Statement) StatementResponse {
	accounts := make([]AccountStatementResponse, len(s.Accounts))
	for i, acc := range s.Accounts {
		accounts[i] = AccountStatementResponse{
			AccountID:     acc.AccountID,
			AccountNumber: acc.AccountNumber,
			AccountType:   acc.AccountType,
			Balance:       acc.Balance,
			Transactions:  ToTransactionResponses(acc.Transactions),
		}
	}
	return StatementResponse{
		PeriodStart:       s.PeriodStart,
		PeriodEnd:         s.PeriodEnd,
		Accounts:          accounts,
		TotalTransactions: s.TotalTransactions,
	}
}
