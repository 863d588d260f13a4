package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/steadybooks/backoffice/internal/core/domain"
)

// TransactionReader defines read operations for committed transactions.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with all of its records.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
}

// TransactionWriter defines write operations for transactions.
type TransactionWriter interface {
	// SaveTransaction persists a transaction and all of its records as a
	// single all-or-nothing unit. Either every row is written or none are.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
}

// LedgerVerifier exposes whole-ledger consistency queries used by the
// verification entrypoint.
type LedgerVerifier interface {
	// SumDebitsAndCredits returns the global debit and credit totals across
	// all transaction records.
	SumDebitsAndCredits(ctx context.Context) (debits, credits decimal.Decimal, err error)

	// ListUnbalancedTransactionIDs returns ids of any committed transaction
	// whose debit and credit sums differ. A healthy ledger returns none.
	ListUnbalancedTransactionIDs(ctx context.Context) ([]string, error)
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	LedgerVerifier
}
