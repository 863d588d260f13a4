package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/steadybooks/backoffice/internal/apperrors"
	"github.com/steadybooks/backoffice/internal/core/domain"
	portssvc "github.com/steadybooks/backoffice/internal/core/ports/services"
	"github.com/steadybooks/backoffice/internal/core/services"
	"github.com/steadybooks/backoffice/internal/dto"
)

type GLAccountServiceTestSuite struct {
	suite.Suite
	mockGLAccountRepo *MockGLAccountRepository
	service           portssvc.GLAccountSvcFacade
	organizationID    string
	userID            string
	assetType         domain.AccountType
	account           domain.GLAccount
}

func (suite *GLAccountServiceTestSuite) SetupTest() {
	suite.mockGLAccountRepo = new(MockGLAccountRepository)
	suite.service = services.NewGLAccountService(suite.mockGLAccountRepo)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.assetType = domain.AccountType{AccountTypeID: "ASSET", Name: "Asset", IncreaseActionIsDebit: true}
	suite.account = domain.GLAccount{
		GLAccountID:              uuid.NewString(),
		AccountingOrganizationID: suite.organizationID,
		AccountType:              suite.assetType,
		Code:                     "1000",
		Name:                     "Bank",
	}
}

func (suite *GLAccountServiceTestSuite) TestCreateGLAccount_Success() {
	ctx := context.Background()
	req := dto.CreateGLAccountRequest{
		AccountingOrganizationID: suite.organizationID,
		AccountTypeID:            "ASSET",
		Code:                     "1200",
		Name:                     "Accounts Receivable",
	}

	suite.mockGLAccountRepo.On("FindAccountTypeByID", ctx, "ASSET").Return(&suite.assetType, nil).Once()
	suite.mockGLAccountRepo.On("SaveGLAccount", ctx, mock.MatchedBy(func(a domain.GLAccount) bool {
		return a.Code == "1200" && a.AccountType.IncreaseActionIsDebit && a.CreatedBy == suite.userID
	})).Return(nil).Once()

	account, err := suite.service.CreateGLAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.GLAccountID)
	suite.Equal("1200", account.Code)
	suite.mockGLAccountRepo.AssertExpectations(suite.T())
}

func (suite *GLAccountServiceTestSuite) TestCreateGLAccount_MissingFields() {
	ctx := context.Background()
	req := dto.CreateGLAccountRequest{Code: "1200"}

	_, err := suite.service.CreateGLAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockGLAccountRepo.AssertNotCalled(suite.T(), "SaveGLAccount", mock.Anything, mock.Anything)
}

func (suite *GLAccountServiceTestSuite) TestCreateGLAccount_UnknownAccountType() {
	ctx := context.Background()
	req := dto.CreateGLAccountRequest{
		AccountingOrganizationID: suite.organizationID,
		AccountTypeID:            "NOPE",
		Code:                     "1200",
		Name:                     "Accounts Receivable",
	}

	suite.mockGLAccountRepo.On("FindAccountTypeByID", ctx, "NOPE").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateGLAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockGLAccountRepo.AssertNotCalled(suite.T(), "SaveGLAccount", mock.Anything, mock.Anything)
}

func (suite *GLAccountServiceTestSuite) TestGetAccountBalance_NoRecords() {
	ctx := context.Background()

	suite.mockGLAccountRepo.On("FindGLAccountByID", ctx, suite.account.GLAccountID).Return(&suite.account, nil).Once()
	suite.mockGLAccountRepo.On("SumSignedRecords", ctx, suite.account.GLAccountID, dto.RecordFilter{}).
		Return(decimal.Zero, nil).Once()

	balance, err := suite.service.GetAccountBalance(ctx, suite.account.GLAccountID, dto.RecordFilter{})

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.Zero))
	suite.mockGLAccountRepo.AssertExpectations(suite.T())
}

func (suite *GLAccountServiceTestSuite) TestGetAccountBalance_SignedSum() {
	ctx := context.Background()

	// 50 debit and 20 credit against an asset account nets to 30.
	suite.mockGLAccountRepo.On("FindGLAccountByID", ctx, suite.account.GLAccountID).Return(&suite.account, nil).Once()
	suite.mockGLAccountRepo.On("SumSignedRecords", ctx, suite.account.GLAccountID, dto.RecordFilter{}).
		Return(decimal.NewFromInt(30), nil).Once()

	balance, err := suite.service.GetAccountBalance(ctx, suite.account.GLAccountID, dto.RecordFilter{})

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(30)))
	suite.mockGLAccountRepo.AssertExpectations(suite.T())
}

func (suite *GLAccountServiceTestSuite) TestGetAccountBalance_UnknownAccount() {
	ctx := context.Background()
	missingID := uuid.NewString()

	suite.mockGLAccountRepo.On("FindGLAccountByID", ctx, missingID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetAccountBalance(ctx, missingID, dto.RecordFilter{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockGLAccountRepo.AssertNotCalled(suite.T(), "SumSignedRecords", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GLAccountServiceTestSuite) TestFindTransactionRecordsByAccount_DefaultsLimit() {
	ctx := context.Background()
	records := []domain.TransactionRecord{
		{TransactionRecordID: uuid.NewString(), GLAccountID: suite.account.GLAccountID, Amount: decimal.NewFromInt(10), IsDebit: true},
	}

	suite.mockGLAccountRepo.On("FindGLAccountByID", ctx, suite.account.GLAccountID).Return(&suite.account, nil).Once()
	suite.mockGLAccountRepo.On("FindTransactionRecordsByAccount", ctx, suite.account.GLAccountID, dto.RecordFilter{}, 50, (*string)(nil)).
		Return(records, nil, nil).Once()

	resp, err := suite.service.FindTransactionRecordsByAccount(ctx, suite.account.GLAccountID, dto.ListRecordsParams{})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Records, 1)
	suite.Nil(resp.NextToken)
	suite.mockGLAccountRepo.AssertExpectations(suite.T())
}

func TestGLAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GLAccountServiceTestSuite))
}
