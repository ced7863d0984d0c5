package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/invisiblebank/bank_api/internal/apperrors"
	"github.com/invisiblebank/bank_api/internal/core/domain"
	portssvc "github.com/invisiblebank/bank_api/internal/core/ports/services"
	"github.com/invisiblebank/bank_api/internal/core/services"
	"github.com/invisiblebank/bank_api/internal/dto"
)

const testRoutingNumber = "123456789"

type TransactionServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	service         portssvc.TransactionSvcFacade

	holderID string
	account  *domain.Account
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewTransactionService(suite.mockAccountRepo, suite.mockLedgerRepo, testRoutingNumber)

	suite.holderID = uuid.NewString()
	suite.account = &domain.Account{
		AccountID:     uuid.NewString(),
		HolderID:      suite.holderID,
		AccountNumber: "1234567890",
		RoutingNumber: testRoutingNumber,
		AccountType:   domain.Checking,
		Balance:       decimal.RequireFromString("100.00"),
		IsActive:      true,
	}
}

// --- Deposit ---

func (suite *TransactionServiceTestSuite) TestDeposit_Success() {
	ctx := context.Background()
	req := dto.DepositRequest{
		AccountID:   suite.account.AccountID,
		Amount:      decimal.RequireFromString("25.50"),
		Description: "payday",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()
	suite.mockLedgerRepo.On("SaveDeposit", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AccountID == suite.account.AccountID &&
			txn.TransactionType == domain.Deposit &&
			txn.Amount.Equal(req.Amount) &&
			txn.Description != nil && *txn.Description == "payday" &&
			txn.TransactionID != ""
	})).Return(nil).Once()

	txn, err := suite.service.Deposit(ctx, suite.holderID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.Deposit, txn.TransactionType)
	suite.True(txn.Amount.Equal(req.Amount))
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeposit_NonPositiveAmount() {
	ctx := context.Background()

	for _, amount := range []string{"0", "-10.00"} {
		req := dto.DepositRequest{AccountID: suite.account.AccountID, Amount: decimal.RequireFromString(amount)}
		txn, err := suite.service.Deposit(ctx, suite.holderID, req)
		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.Nil(txn)
	}
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveDeposit", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeposit_TooManyDecimalPlaces() {
	ctx := context.Background()
	req := dto.DepositRequest{
		AccountID: suite.account.AccountID,
		Amount:    decimal.RequireFromString("10.123"),
	}

	txn, err := suite.service.Deposit(ctx, suite.holderID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveDeposit", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeposit_AccountNotOwned() {
	ctx := context.Background()
	otherAccount := &domain.Account{
		AccountID: uuid.NewString(),
		HolderID:  uuid.NewString(),
		IsActive:  true,
	}
	req := dto.DepositRequest{AccountID: otherAccount.AccountID, Amount: decimal.RequireFromString("10.00")}

	suite.mockAccountRepo.On("FindAccountByID", ctx, otherAccount.AccountID).Return(otherAccount, nil).Once()

	txn, err := suite.service.Deposit(ctx, suite.holderID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(txn)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveDeposit", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeposit_InactiveAccount() {
	ctx := context.Background()
	suite.account.IsActive = false
	req := dto.DepositRequest{AccountID: suite.account.AccountID, Amount: decimal.RequireFromString("10.00")}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()

	txn, err := suite.service.Deposit(ctx, suite.holderID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
}

func (suite *TransactionServiceTestSuite) TestDeposit_AccountNotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.DepositRequest{AccountID: accountID, Amount: decimal.RequireFromString("10.00")}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.Deposit(ctx, suite.holderID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(txn)
}

// --- Withdraw ---

func (suite *TransactionServiceTestSuite) TestWithdraw_Success() {
	ctx := context.Background()
	req := dto.WithdrawalRequest{
		AccountID: suite.account.AccountID,
		Amount:    decimal.RequireFromString("40.00"),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()
	suite.mockLedgerRepo.On("SaveWithdrawal", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AccountID == suite.account.AccountID &&
			txn.TransactionType == domain.Withdrawal &&
			txn.Amount.Equal(req.Amount)
	})).Return(nil).Once()

	txn, err := suite.service.Withdraw(ctx, suite.holderID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.Withdrawal, txn.TransactionType)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestWithdraw_InsufficientFunds() {
	ctx := context.Background()
	req := dto.WithdrawalRequest{
		AccountID: suite.account.AccountID,
		Amount:    decimal.RequireFromString("500.00"),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()
	suite.mockLedgerRepo.On("SaveWithdrawal", ctx, mock.AnythingOfType("domain.Transaction")).Return(apperrors.ErrInsufficientFunds).Once()

	txn, err := suite.service.Withdraw(ctx, suite.holderID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Nil(txn)
}

// --- Transfer ---

func (suite *TransactionServiceTestSuite) TestTransfer_InternalSuccess() {
	ctx := context.Background()
	req := dto.TransferRequest{
		FromAccountID:   suite.account.AccountID,
		ToRoutingNumber: testRoutingNumber,
		ToAccountNumber: "9876543210",
		Amount:          decimal.RequireFromString("30.00"),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()
	suite.mockLedgerRepo.On("SaveTransfer", ctx,
		mock.MatchedBy(func(outgoing domain.Transaction) bool {
			return outgoing.AccountID == suite.account.AccountID &&
				outgoing.TransactionType == domain.Transfer &&
				outgoing.Amount.Equal(req.Amount) &&
				outgoing.PeerAccountNumber != nil && *outgoing.PeerAccountNumber == "9876543210"
		}),
		mock.MatchedBy(func(incoming *domain.Transaction) bool {
			return incoming != nil &&
				incoming.TransactionType == domain.Transfer &&
				incoming.Amount.Equal(req.Amount) &&
				incoming.PeerAccountNumber != nil && *incoming.PeerAccountNumber == suite.account.AccountNumber
		}),
		"9876543210",
	).Return(nil).Once()

	txn, err := suite.service.Transfer(ctx, suite.holderID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(suite.account.AccountID, txn.AccountID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestTransfer_ExternalOmitsIncomingLeg() {
	ctx := context.Background()
	req := dto.TransferRequest{
		FromAccountID:   suite.account.AccountID,
		ToRoutingNumber: "987654321",
		ToAccountNumber: "5555555555",
		Amount:          decimal.RequireFromString("10.00"),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()
	suite.mockLedgerRepo.On("SaveTransfer", ctx,
		mock.AnythingOfType("domain.Transaction"),
		(*domain.Transaction)(nil),
		"5555555555",
	).Return(nil).Once()

	txn, err := suite.service.Transfer(ctx, suite.holderID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestTransfer_ToSameAccount() {
	ctx := context.Background()
	req := dto.TransferRequest{
		FromAccountID:   suite.account.AccountID,
		ToRoutingNumber: testRoutingNumber,
		ToAccountNumber: suite.account.AccountNumber,
		Amount:          decimal.RequireFromString("10.00"),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()

	txn, err := suite.service.Transfer(ctx, suite.holderID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestTransfer_DestinationMissingFailsWhole() {
	ctx := context.Background()
	req := dto.TransferRequest{
		FromAccountID:   suite.account.AccountID,
		ToRoutingNumber: testRoutingNumber,
		ToAccountNumber: "0000000000",
		Amount:          decimal.RequireFromString("10.00"),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()
	suite.mockLedgerRepo.On("SaveTransfer", ctx,
		mock.AnythingOfType("domain.Transaction"),
		mock.AnythingOfType("*domain.Transaction"),
		"0000000000",
	).Return(apperrors.ErrNotFound).Once()

	txn, err := suite.service.Transfer(ctx, suite.holderID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(txn)
}

func (suite *TransactionServiceTestSuite) TestTransfer_StorageConflictPropagates() {
	ctx := context.Background()
	req := dto.TransferRequest{
		FromAccountID:   suite.account.AccountID,
		ToRoutingNumber: testRoutingNumber,
		ToAccountNumber: "9876543210",
		Amount:          decimal.RequireFromString("10.00"),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()
	suite.mockLedgerRepo.On("SaveTransfer", ctx,
		mock.AnythingOfType("domain.Transaction"),
		mock.AnythingOfType("*domain.Transaction"),
		"9876543210",
	).Return(apperrors.ErrConflict).Once()

	txn, err := suite.service.Transfer(ctx, suite.holderID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(txn)
}

// --- ListTransactions ---

func (suite *TransactionServiceTestSuite) TestListTransactions_SingleAccount() {
	ctx := context.Background()
	expected := []domain.Transaction{
		{TransactionID: uuid.NewString(), AccountID: suite.account.AccountID, TransactionType: domain.Deposit},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()
	suite.mockLedgerRepo.On("ListTransactionsByAccountIDs", ctx, []string{suite.account.AccountID}).Return(expected, nil).Once()

	txns, err := suite.service.ListTransactions(ctx, suite.holderID, &suite.account.AccountID)

	suite.Require().NoError(err)
	suite.Equal(expected, txns)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_SingleAccountNotOwned() {
	ctx := context.Background()
	otherAccount := &domain.Account{AccountID: uuid.NewString(), HolderID: uuid.NewString()}

	suite.mockAccountRepo.On("FindAccountByID", ctx, otherAccount.AccountID).Return(otherAccount, nil).Once()

	txns, err := suite.service.ListTransactions(ctx, suite.holderID, &otherAccount.AccountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(txns)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_AllAccounts() {
	ctx := context.Background()
	second := domain.Account{AccountID: uuid.NewString(), HolderID: suite.holderID}
	accounts := []domain.Account{*suite.account, second}
	expected := []domain.Transaction{
		{TransactionID: uuid.NewString(), AccountID: second.AccountID, TransactionType: domain.Withdrawal},
	}

	suite.mockAccountRepo.On("FindAccountsByHolderID", ctx, suite.holderID).Return(accounts, nil).Once()
	suite.mockLedgerRepo.On("ListTransactionsByAccountIDs", ctx, []string{suite.account.AccountID, second.AccountID}).Return(expected, nil).Once()

	txns, err := suite.service.ListTransactions(ctx, suite.holderID, nil)

	suite.Require().NoError(err)
	suite.Equal(expected, txns)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
