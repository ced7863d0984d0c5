package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/invisiblebank/bank_api/internal/core/domain"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	var acc *domain.Account
	if args.Get(0) != nil {
		acc = args.Get(0).(*domain.Account)
	}
	return acc, args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByHolderID(ctx context.Context, holderID string) ([]domain.Account, error) {
	args := m.Called(ctx, holderID)
	var accounts []domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) FindAccountForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountID)
	var acc *domain.Account
	if args.Get(0) != nil {
		acc = args.Get(0).(*domain.Account)
	}
	return acc, args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumberForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountNumber)
	var acc *domain.Account
	if args.Get(0) != nil {
		acc = args.Get(0).(*domain.Account)
	}
	return acc, args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceChangeInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, tx, accountID, delta, now)
	return args.Error(0)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) SaveDeposit(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockLedgerRepository) SaveWithdrawal(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockLedgerRepository) SaveTransfer(ctx context.Context, outgoing domain.Transaction, incoming *domain.Transaction, destAccountNumber string) error {
	args := m.Called(ctx, outgoing, incoming, destAccountNumber)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListTransactionsByAccountIDs(ctx context.Context, accountIDs []string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountIDs)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockLedgerRepository) ListTransactionsSince(ctx context.Context, accountID string, since time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID, since)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

// --- Mock HolderRepository ---

type MockHolderRepository struct {
	mock.Mock
}

func (m *MockHolderRepository) SaveHolder(ctx context.Context, holder domain.AccountHolder) error {
	args := m.Called(ctx, holder)
	return args.Error(0)
}

func (m *MockHolderRepository) FindHolderByID(ctx context.Context, holderID string) (*domain.AccountHolder, error) {
	args := m.Called(ctx, holderID)
	var h *domain.AccountHolder
	if args.Get(0) != nil {
		h = args.Get(0).(*domain.AccountHolder)
	}
	return h, args.Error(1)
}

func (m *MockHolderRepository) FindHolderByEmail(ctx context.Context, email string) (*domain.AccountHolder, error) {
	args := m.Called(ctx, email)
	var h *domain.AccountHolder
	if args.Get(0) != nil {
		h = args.Get(0).(*domain.AccountHolder)
	}
	return h, args.Error(1)
}

// --- Mock CardRepository ---

type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) SaveCard(ctx context.Context, card domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) FindCardsByAccountIDs(ctx context.Context, accountIDs []string) ([]domain.Card, error) {
	args := m.Called(ctx, accountIDs)
	var cards []domain.Card
	if args.Get(0) != nil {
		cards = args.Get(0).([]domain.Card)
	}
	return cards, args.Error(1)
}
