package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/steadybooks/backoffice/internal/core/domain"
	"github.com/steadybooks/backoffice/internal/dto"
)

// TransactionSvcFacade commits transaction drafts and reverses committed
// transactions.
type TransactionSvcFacade interface {
	// Commit validates that the draft balances and persists it atomically,
	// returning the new transaction id.
	Commit(ctx context.Context, draft *domain.TransactionDraft, userID string) (string, error)

	// Rollback commits a new transaction mirroring the target with every
	// record's direction flipped, returning the reversal's id. The original
	// transaction is never mutated.
	Rollback(ctx context.Context, transactionID string, userID string) (string, error)

	// VerifyLedger checks the whole-ledger double-entry invariant: the
	// global debit and credit totals match and no committed transaction is
	// unbalanced.
	VerifyLedger(ctx context.Context) error
}

// GLAccountSvcFacade administers GL accounts and answers balance and history
// queries.
type GLAccountSvcFacade interface {
	CreateGLAccount(ctx context.Context, req dto.CreateGLAccountRequest, userID string) (*domain.GLAccount, error)
	GetGLAccountByID(ctx context.Context, glAccountID string) (*domain.GLAccount, error)
	GetGLAccountByCode(ctx context.Context, code string) (*domain.GLAccount, error)
	GetGLAccountsByIDs(ctx context.Context, glAccountIDs []string) (map[string]domain.GLAccount, error)

	// GetAccountBalance returns the account's derived balance within the
	// optional date window, 0.00 when no records exist.
	GetAccountBalance(ctx context.Context, glAccountID string, filter dto.RecordFilter) (decimal.Decimal, error)

	// FindTransactionRecordsByAccount returns a page of the account's record
	// history, newest first.
	FindTransactionRecordsByAccount(ctx context.Context, glAccountID string, params dto.ListRecordsParams) (*dto.ListRecordsResponse, error)
}

// PaymentsSvcFacade creates payments backed by committed transactions.
type PaymentsSvcFacade interface {
	CreateDirectDepositPayment(ctx context.Context, data dto.CreatePaymentData, userID string) (*domain.Payment, error)
	CreateCreditNotePayment(ctx context.Context, data dto.CreatePaymentData, userID string) (*domain.Payment, error)
}

// ForwardedPaymentsSvcFacade transfers funds between GL accounts.
type ForwardedPaymentsSvcFacade interface {
	Forward(ctx context.Context, data dto.ForwardedPaymentData, userID string) (*domain.ForwardedPayment, error)
}
