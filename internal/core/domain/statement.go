package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatement pairs one account's current balance with its transactions
// inside the statement window, newest first.
type AccountStatement struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   AccountType     `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	Transactions  []Transaction   `json:"transactions"`
}

// Statement is the read-only projection across all of a holder's accounts for
// a time window.
type Statement struct {
	PeriodStart       time.Time          `json:"periodStart"`
	PeriodEnd         time.Time          `json:"periodEnd"`
	Accounts          []AccountStatement `json:"accounts"`
	TotalTransactions int                `json:"totalTransactions"`
}
