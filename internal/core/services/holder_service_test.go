package services_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/invisiblebank/bank_api/internal/apperrors"
	"github.com/invisiblebank/bank_api/internal/core/domain"
	portssvc "github.com/invisiblebank/bank_api/internal/core/ports/services"
	"github.com/invisiblebank/bank_api/internal/core/services"
	"github.com/invisiblebank/bank_api/internal/dto"
	"github.com/invisiblebank/bank_api/internal/utils"
)

type HolderServiceTestSuite struct {
	suite.Suite
	mockHolderRepo *MockHolderRepository
	service        portssvc.HolderSvcFacade
	encryptionKey  []byte
}

func (suite *HolderServiceTestSuite) SetupTest() {
	suite.mockHolderRepo = new(MockHolderRepository)
	suite.encryptionKey = bytes.Repeat([]byte{0x42}, 32)
	suite.service = services.NewHolderService(suite.mockHolderRepo, suite.encryptionKey)
}

func registerReq() dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:           "Jane Doe",
		Email:          "jane@example.com",
		Password:       "correct horse battery",
		SSN:            "123-45-6789",
		DateOfBirth:    "1990-04-01",
		MailingAddress: "1 Main St, Springfield",
	}
}

func (suite *HolderServiceTestSuite) TestRegisterHolder_Success() {
	ctx := context.Background()
	req := registerReq()

	suite.mockHolderRepo.On("SaveHolder", ctx, mock.MatchedBy(func(h domain.AccountHolder) bool {
		return h.Email == req.Email &&
			h.Name == req.Name &&
			h.PasswordHash != req.Password &&
			h.IsActive &&
			len(h.SSNEncrypted) > 0
	})).Return(nil).Once()

	holder, err := suite.service.RegisterHolder(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(holder)
	suite.NotEmpty(holder.HolderID)
	suite.True(utils.CheckPasswordHash(req.Password, holder.PasswordHash))

	// The stored SSN must decrypt back to the submitted value.
	ssn, err := utils.Decrypt(suite.encryptionKey, holder.SSNEncrypted)
	suite.Require().NoError(err)
	suite.Equal(req.SSN, ssn)

	suite.mockHolderRepo.AssertExpectations(suite.T())
}

func (suite *HolderServiceTestSuite) TestRegisterHolder_DuplicateEmail() {
	ctx := context.Background()
	req := registerReq()

	suite.mockHolderRepo.On("SaveHolder", ctx, mock.AnythingOfType("domain.AccountHolder")).Return(apperrors.ErrDuplicate).Once()

	holder, err := suite.service.RegisterHolder(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(holder)
}

func (suite *HolderServiceTestSuite) TestRegisterHolder_InvalidDateOfBirth() {
	ctx := context.Background()
	req := registerReq()
	req.DateOfBirth = "01/04/1990"

	holder, err := suite.service.RegisterHolder(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(holder)
	suite.mockHolderRepo.AssertNotCalled(suite.T(), "SaveHolder", mock.Anything, mock.Anything)
}

func (suite *HolderServiceTestSuite) TestAuthenticateHolder_Success() {
	ctx := context.Background()
	password := "correct horse battery"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)

	holder := &domain.AccountHolder{
		HolderID:     uuid.NewString(),
		Email:        "jane@example.com",
		PasswordHash: hash,
		IsActive:     true,
	}
	suite.mockHolderRepo.On("FindHolderByEmail", ctx, holder.Email).Return(holder, nil).Once()

	got, err := suite.service.AuthenticateHolder(ctx, holder.Email, password)

	suite.Require().NoError(err)
	suite.Equal(holder, got)
}

func (suite *HolderServiceTestSuite) TestAuthenticateHolder_UnknownEmail() {
	ctx := context.Background()

	suite.mockHolderRepo.On("FindHolderByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.AuthenticateHolder(ctx, "nobody@example.com", "whatever")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(got)
}

func (suite *HolderServiceTestSuite) TestAuthenticateHolder_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("the real password")
	suite.Require().NoError(err)

	holder := &domain.AccountHolder{
		HolderID:     uuid.NewString(),
		Email:        "jane@example.com",
		PasswordHash: hash,
		IsActive:     true,
	}
	suite.mockHolderRepo.On("FindHolderByEmail", ctx, holder.Email).Return(holder, nil).Once()

	got, err := suite.service.AuthenticateHolder(ctx, holder.Email, "a wrong guess")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(got)
}

func (suite *HolderServiceTestSuite) TestAuthenticateHolder_InactiveHolder() {
	ctx := context.Background()
	password := "correct horse battery"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)

	holder := &domain.AccountHolder{
		HolderID:     uuid.NewString(),
		Email:        "jane@example.com",
		PasswordHash: hash,
		IsActive:     false,
	}
	suite.mockHolderRepo.On("FindHolderByEmail", ctx, holder.Email).Return(holder, nil).Once()

	got, err := suite.service.AuthenticateHolder(ctx, holder.Email, password)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(got)
}

func TestHolderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HolderServiceTestSuite))
}
