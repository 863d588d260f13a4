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

type PaymentsServiceTestSuite struct {
	suite.Suite
	mockGLAccountRepo  *MockGLAccountRepository
	mockTransactionSvc *MockTransactionService
	mockPaymentRepo    *MockPaymentRepository
	service            portssvc.PaymentsSvcFacade
	organizationID     string
	userID             string
	bankAccount        domain.GLAccount
	receivableA        domain.GLAccount
	receivableB        domain.GLAccount
	receivableC        domain.GLAccount
}

func (suite *PaymentsServiceTestSuite) SetupTest() {
	suite.mockGLAccountRepo = new(MockGLAccountRepository)
	suite.mockTransactionSvc = new(MockTransactionService)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.service = services.NewPaymentsService(suite.mockGLAccountRepo, suite.mockTransactionSvc, suite.mockPaymentRepo)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()

	asset := domain.AccountType{AccountTypeID: "ASSET", Name: "Asset", IncreaseActionIsDebit: true}

	suite.bankAccount = domain.GLAccount{
		GLAccountID:              uuid.NewString(),
		AccountingOrganizationID: suite.organizationID,
		AccountType:              asset,
		Code:                     "1000",
		IsBankAccount:            true,
		EnablePaymentsToAccount:  true,
	}
	suite.receivableA = domain.GLAccount{
		GLAccountID:              uuid.NewString(),
		AccountingOrganizationID: suite.organizationID,
		AccountType:              asset,
		Code:                     "1101",
		EnablePaymentsToAccount:  true,
	}
	suite.receivableB = domain.GLAccount{
		GLAccountID:              uuid.NewString(),
		AccountingOrganizationID: suite.organizationID,
		AccountType:              asset,
		Code:                     "1102",
		EnablePaymentsToAccount:  true,
	}
	suite.receivableC = domain.GLAccount{
		GLAccountID:              uuid.NewString(),
		AccountingOrganizationID: suite.organizationID,
		AccountType:              asset,
		Code:                     "1103",
		EnablePaymentsToAccount:  true,
	}
}

func (suite *PaymentsServiceTestSuite) accountsMap(accounts ...domain.GLAccount) map[string]domain.GLAccount {
	m := make(map[string]domain.GLAccount, len(accounts))
	for _, a := range accounts {
		m[a.GLAccountID] = a
	}
	return m
}

func (suite *PaymentsServiceTestSuite) TestCreateDirectDepositPayment_SplitLines() {
	ctx := context.Background()
	hundred := decimal.NewFromInt(100)
	data := dto.CreatePaymentData{
		AccountingOrganizationID: suite.organizationID,
		PayableLines: []dto.PaymentLine{
			{GLAccountID: suite.bankAccount.GLAccountID, Amount: decimal.NewFromInt(300)},
		},
		ReceivableLines: []dto.PaymentLine{
			{GLAccountID: suite.receivableA.GLAccountID, Amount: hundred},
			{GLAccountID: suite.receivableB.GLAccountID, Amount: hundred},
			{GLAccountID: suite.receivableC.GLAccountID, Amount: hundred},
		},
		Reference: "PAY-42",
	}

	suite.mockGLAccountRepo.On("FindGLAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.bankAccount, suite.receivableA, suite.receivableB, suite.receivableC), nil).Once()

	transactionID := uuid.NewString()
	suite.mockTransactionSvc.On("Commit", ctx, mock.MatchedBy(func(draft *domain.TransactionDraft) bool {
		if len(draft.Records) != 4 {
			return false
		}
		// The bank asset decreases via one credit; each receivable asset
		// increases via its own debit.
		bank := draft.Records[0]
		if bank.GLAccountID != suite.bankAccount.GLAccountID || bank.IsDebit || !bank.Amount.Equal(decimal.NewFromInt(300)) {
			return false
		}
		for _, rec := range draft.Records[1:] {
			if !rec.IsDebit || !rec.Amount.Equal(decimal.NewFromInt(100)) {
				return false
			}
		}
		return true
	}), suite.userID).Return(transactionID, nil).Once()

	suite.mockPaymentRepo.On("SavePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.TransactionID == transactionID &&
			p.Type == domain.PaymentDirectDeposit &&
			p.Amount.Equal(decimal.NewFromInt(300)) &&
			p.Reference == "PAY-42"
	})).Return(nil).Once()

	payment, err := suite.service.CreateDirectDepositPayment(ctx, data, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Equal(transactionID, payment.TransactionID)
	suite.False(payment.PaidAt.IsZero())
	suite.mockGLAccountRepo.AssertExpectations(suite.T())
	suite.mockTransactionSvc.AssertExpectations(suite.T())
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentsServiceTestSuite) TestCreatePayment_UnequalTotals() {
	ctx := context.Background()
	data := dto.CreatePaymentData{
		AccountingOrganizationID: suite.organizationID,
		PayableLines:             []dto.PaymentLine{{GLAccountID: suite.bankAccount.GLAccountID, Amount: decimal.NewFromInt(200)}},
		ReceivableLines:          []dto.PaymentLine{{GLAccountID: suite.receivableA.GLAccountID, Amount: decimal.NewFromInt(150)}},
	}

	_, err := suite.service.CreateDirectDepositPayment(ctx, data, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotAllowed)
	suite.mockTransactionSvc.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentsServiceTestSuite) TestCreatePayment_NonPositiveLine() {
	ctx := context.Background()
	data := dto.CreatePaymentData{
		AccountingOrganizationID: suite.organizationID,
		PayableLines:             []dto.PaymentLine{{GLAccountID: suite.bankAccount.GLAccountID, Amount: decimal.Zero}},
		ReceivableLines:          []dto.PaymentLine{{GLAccountID: suite.receivableA.GLAccountID, Amount: decimal.Zero}},
	}

	_, err := suite.service.CreateDirectDepositPayment(ctx, data, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTransactionSvc.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentsServiceTestSuite) TestCreatePayment_MissingLines() {
	ctx := context.Background()
	data := dto.CreatePaymentData{
		AccountingOrganizationID: suite.organizationID,
		PayableLines:             []dto.PaymentLine{{GLAccountID: suite.bankAccount.GLAccountID, Amount: decimal.NewFromInt(10)}},
	}

	_, err := suite.service.CreateDirectDepositPayment(ctx, data, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentsServiceTestSuite) TestCreatePayment_PaymentsDisabledOnAnyAccount() {
	ctx := context.Background()
	disabled := suite.receivableB
	disabled.EnablePaymentsToAccount = false
	data := dto.CreatePaymentData{
		AccountingOrganizationID: suite.organizationID,
		PayableLines: []dto.PaymentLine{
			{GLAccountID: suite.bankAccount.GLAccountID, Amount: decimal.NewFromInt(200)},
		},
		ReceivableLines: []dto.PaymentLine{
			{GLAccountID: suite.receivableA.GLAccountID, Amount: decimal.NewFromInt(100)},
			{GLAccountID: disabled.GLAccountID, Amount: decimal.NewFromInt(100)},
		},
	}

	suite.mockGLAccountRepo.On("FindGLAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.bankAccount, suite.receivableA, disabled), nil).Once()

	_, err := suite.service.CreateDirectDepositPayment(ctx, data, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPaymentsDisabled)
	// The pre-check rejects before any record is committed.
	suite.mockTransactionSvc.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything, mock.Anything)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (suite *PaymentsServiceTestSuite) TestCreateCreditNotePayment_Type() {
	ctx := context.Background()
	data := dto.CreatePaymentData{
		AccountingOrganizationID: suite.organizationID,
		PayableLines:             []dto.PaymentLine{{GLAccountID: suite.bankAccount.GLAccountID, Amount: decimal.NewFromInt(80)}},
		ReceivableLines:          []dto.PaymentLine{{GLAccountID: suite.receivableA.GLAccountID, Amount: decimal.NewFromInt(80)}},
	}

	suite.mockGLAccountRepo.On("FindGLAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.bankAccount, suite.receivableA), nil).Once()
	suite.mockTransactionSvc.On("Commit", ctx, mock.Anything, suite.userID).Return(uuid.NewString(), nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Type == domain.PaymentCreditNote
	})).Return(nil).Once()

	payment, err := suite.service.CreateCreditNotePayment(ctx, data, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentCreditNote, payment.Type)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func TestPaymentsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentsServiceTestSuite))
}
