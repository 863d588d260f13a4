package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/steadybooks/backoffice/internal/core/domain"
	portsrepo "github.com/steadybooks/backoffice/internal/core/ports/repositories"
	portssvc "github.com/steadybooks/backoffice/internal/core/ports/services"
	"github.com/steadybooks/backoffice/internal/dto"
)

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SumDebitsAndCredits(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockTransactionRepository) ListUnbalancedTransactionIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock GLAccountRepository ---

type MockGLAccountRepository struct {
	mock.Mock
}

var _ portsrepo.GLAccountRepositoryFacade = (*MockGLAccountRepository)(nil)

func (m *MockGLAccountRepository) FindGLAccountByID(ctx context.Context, glAccountID string) (*domain.GLAccount, error) {
	args := m.Called(ctx, glAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountRepository) FindGLAccountsByIDs(ctx context.Context, glAccountIDs []string) (map[string]domain.GLAccount, error) {
	args := m.Called(ctx, glAccountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountRepository) FindGLAccountByCode(ctx context.Context, code string) (*domain.GLAccount, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountRepository) SumSignedRecords(ctx context.Context, glAccountID string, filter dto.RecordFilter) (decimal.Decimal, error) {
	args := m.Called(ctx, glAccountID, filter)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockGLAccountRepository) FindTransactionRecordsByAccount(ctx context.Context, glAccountID string, filter dto.RecordFilter, limit int, nextToken *string) ([]domain.TransactionRecord, *string, error) {
	args := m.Called(ctx, glAccountID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.TransactionRecord), returnedNextToken, args.Error(2)
}

func (m *MockGLAccountRepository) SaveGLAccount(ctx context.Context, account domain.GLAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockGLAccountRepository) FindAccountTypeByID(ctx context.Context, accountTypeID string) (*domain.AccountType, error) {
	args := m.Called(ctx, accountTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountType), args.Error(1)
}

func (m *MockGLAccountRepository) ListAccountTypes(ctx context.Context) ([]domain.AccountType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountType), args.Error(1)
}

// --- Mock PaymentRepository ---

type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindForwardedPaymentByID(ctx context.Context, forwardedPaymentID string) (*domain.ForwardedPayment, error) {
	args := m.Called(ctx, forwardedPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ForwardedPayment), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) SaveForwardedPayment(ctx context.Context, payment domain.Payment, forwarded domain.ForwardedPayment, invoiceIDs []string) error {
	args := m.Called(ctx, payment, forwarded, invoiceIDs)
	return args.Error(0)
}

// --- Mock OrganizationRepository ---

type MockOrganizationRepository struct {
	mock.Mock
}

var _ portsrepo.OrganizationRepositoryFacade = (*MockOrganizationRepository)(nil)

func (m *MockOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.AccountingOrganization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingOrganization), args.Error(1)
}

func (m *MockOrganizationRepository) FindActiveOrganizationByLocation(ctx context.Context, locationID string) (*domain.AccountingOrganization, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingOrganization), args.Error(1)
}

func (m *MockOrganizationRepository) SaveOrganization(ctx context.Context, org domain.AccountingOrganization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) AttachOrganizationToLocation(ctx context.Context, organizationID, locationID, userID string, at time.Time) error {
	args := m.Called(ctx, organizationID, locationID, userID, at)
	return args.Error(0)
}

// --- Mock FinancialEntityRepository ---

type MockFinancialEntityRepository struct {
	mock.Mock
}

var _ portsrepo.FinancialEntityRepositoryFacade = (*MockFinancialEntityRepository)(nil)

func (m *MockFinancialEntityRepository) FindEntityByID(ctx context.Context, kind domain.EntityKind, entityID string) (*domain.FinancialEntity, error) {
	args := m.Called(ctx, kind, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialEntity), args.Error(1)
}

func (m *MockFinancialEntityRepository) FindApproveRequests(ctx context.Context, kind domain.EntityKind, entityID string) ([]domain.ApproveRequest, error) {
	args := m.Called(ctx, kind, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApproveRequest), args.Error(1)
}

func (m *MockFinancialEntityRepository) SaveEntity(ctx context.Context, entity domain.FinancialEntity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockFinancialEntityRepository) UpdateEntity(ctx context.Context, entity domain.FinancialEntity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockFinancialEntityRepository) UpdateEntityStatus(ctx context.Context, kind domain.EntityKind, entityID string, status domain.EntityStatus, transactionID *string, userID string, at time.Time) error {
	args := m.Called(ctx, kind, entityID, status, transactionID, userID, at)
	return args.Error(0)
}

func (m *MockFinancialEntityRepository) MarkEntityDeleted(ctx context.Context, kind domain.EntityKind, entityID string, userID string, at time.Time) error {
	args := m.Called(ctx, kind, entityID, userID, at)
	return args.Error(0)
}

func (m *MockFinancialEntityRepository) SaveApproveRequests(ctx context.Context, requests []domain.ApproveRequest) error {
	args := m.Called(ctx, requests)
	return args.Error(0)
}

func (m *MockFinancialEntityRepository) MarkApproveRequestApproved(ctx context.Context, kind domain.EntityKind, entityID, approverID string, at time.Time) error {
	args := m.Called(ctx, kind, entityID, approverID, at)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock TaxRateRepository ---

type MockTaxRateRepository struct {
	mock.Mock
}

var _ portsrepo.TaxRateReader = (*MockTaxRateRepository)(nil)

func (m *MockTaxRateRepository) FindTaxRatesByIDs(ctx context.Context, taxRateIDs []string) (map[string]domain.TaxRate, error) {
	args := m.Called(ctx, taxRateIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.TaxRate), args.Error(1)
}

func (m *MockTaxRateRepository) ListTaxRates(ctx context.Context) ([]domain.TaxRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxRate), args.Error(1)
}

// --- Mock TransactionService (as used by payments and financial entities) ---

type MockTransactionService struct {
	mock.Mock
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

func (m *MockTransactionService) Commit(ctx context.Context, draft *domain.TransactionDraft, userID string) (string, error) {
	args := m.Called(ctx, draft, userID)
	return args.String(0), args.Error(1)
}

func (m *MockTransactionService) Rollback(ctx context.Context, transactionID string, userID string) (string, error) {
	args := m.Called(ctx, transactionID, userID)
	return args.String(0), args.Error(1)
}

func (m *MockTransactionService) VerifyLedger(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
