package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/invisiblebank/bank_api/internal/apperrors"
	"github.com/invisiblebank/bank_api/internal/core/domain"
	portssvc "github.com/invisiblebank/bank_api/internal/core/ports/services"
	"github.com/invisiblebank/bank_api/internal/core/services"
)

type StatementServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	service         portssvc.StatementSvcFacade
	holderID        string
}

func (suite *StatementServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewStatementService(suite.mockAccountRepo, suite.mockLedgerRepo)
	suite.holderID = uuid.NewString()
}

func (suite *StatementServiceTestSuite) TestGetStatement_WindowsPerAccount() {
	ctx := context.Background()

	checking := domain.Account{
		AccountID:     uuid.NewString(),
		HolderID:      suite.holderID,
		AccountNumber: "1111111111",
		AccountType:   domain.Checking,
		Balance:       decimal.RequireFromString("250.00"),
	}
	savings := domain.Account{
		AccountID:     uuid.NewString(),
		HolderID:      suite.holderID,
		AccountNumber: "2222222222",
		AccountType:   domain.Savings,
		Balance:       decimal.RequireFromString("1000.00"),
	}

	checkingTxns := []domain.Transaction{
		{TransactionID: uuid.NewString(), AccountID: checking.AccountID, TransactionType: domain.Deposit},
		{TransactionID: uuid.NewString(), AccountID: checking.AccountID, TransactionType: domain.Withdrawal},
	}
	savingsTxns := []domain.Transaction{
		{TransactionID: uuid.NewString(), AccountID: savings.AccountID, TransactionType: domain.Deposit},
	}

	suite.mockAccountRepo.On("FindAccountsByHolderID", ctx, suite.holderID).Return([]domain.Account{checking, savings}, nil).Once()
	suite.mockLedgerRepo.On("ListTransactionsSince", ctx, checking.AccountID, mock.AnythingOfType("time.Time")).Return(checkingTxns, nil).Once()
	suite.mockLedgerRepo.On("ListTransactionsSince", ctx, savings.AccountID, mock.AnythingOfType("time.Time")).Return(savingsTxns, nil).Once()

	statement, err := suite.service.GetStatement(ctx, suite.holderID, 30)

	suite.Require().NoError(err)
	suite.Require().NotNil(statement)
	suite.Len(statement.Accounts, 2)
	suite.Equal(3, statement.TotalTransactions)
	suite.Equal(checking.AccountNumber, statement.Accounts[0].AccountNumber)
	suite.True(statement.Accounts[0].Balance.Equal(checking.Balance))
	suite.Len(statement.Accounts[0].Transactions, 2)
	suite.Len(statement.Accounts[1].Transactions, 1)

	// The window covers the requested number of trailing days.
	wantStart := statement.PeriodEnd.AddDate(0, 0, -30)
	suite.WithinDuration(wantStart, statement.PeriodStart, time.Second)
}

func (suite *StatementServiceTestSuite) TestGetStatement_DefaultWindow() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountsByHolderID", ctx, suite.holderID).Return([]domain.Account{}, nil).Once()

	statement, err := suite.service.GetStatement(ctx, suite.holderID, 0)

	suite.Require().NoError(err)
	suite.Require().NotNil(statement)
	wantStart := statement.PeriodEnd.AddDate(0, 0, -30)
	suite.WithinDuration(wantStart, statement.PeriodStart, time.Second)
	suite.Empty(statement.Accounts)
	suite.Zero(statement.TotalTransactions)
}

func (suite *StatementServiceTestSuite) TestGetStatement_RejectsInvalidWindow() {
	ctx := context.Background()

	for _, days := range []int{-1, 366} {
		statement, err := suite.service.GetStatement(ctx, suite.holderID, days)
		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.Nil(statement)
	}
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByHolderID", mock.Anything, mock.Anything)
}

func TestStatementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}
