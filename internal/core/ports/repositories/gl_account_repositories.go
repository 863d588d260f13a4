package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/steadybooks/backoffice/internal/core/domain"
	"github.com/steadybooks/backoffice/internal/dto"
)

// GLAccountReader defines read operations for GL accounts and their records.
type GLAccountReader interface {
	// FindGLAccountByID retrieves a single account with its account type.
	FindGLAccountByID(ctx context.Context, glAccountID string) (*domain.GLAccount, error)

	// FindGLAccountsByIDs retrieves multiple accounts keyed by id. Missing ids
	// are simply absent from the map.
	FindGLAccountsByIDs(ctx context.Context, glAccountIDs []string) (map[string]domain.GLAccount, error)

	// FindGLAccountByCode retrieves an account by its unique code.
	FindGLAccountByCode(ctx context.Context, code string) (*domain.GLAccount, error)

	// SumSignedRecords computes the account's derived balance: signed record
	// amounts summed within the optional date window. Returns zero when no
	// records exist.
	SumSignedRecords(ctx context.Context, glAccountID string, filter dto.RecordFilter) (decimal.Decimal, error)

	// FindTransactionRecordsByAccount returns matching records ordered by the
	// owning transaction's creation time, newest first, with keyset
	// pagination. It returns the page and a token for the next one.
	FindTransactionRecordsByAccount(ctx context.Context, glAccountID string, filter dto.RecordFilter, limit int, nextToken *string) ([]domain.TransactionRecord, *string, error)
}

// GLAccountWriter defines write operations for GL accounts.
type GLAccountWriter interface {
	SaveGLAccount(ctx context.Context, account domain.GLAccount) error
}

// AccountTypeReader exposes the immutable account type catalog.
type AccountTypeReader interface {
	FindAccountTypeByID(ctx context.Context, accountTypeID string) (*domain.AccountType, error)
	ListAccountTypes(ctx context.Context) ([]domain.AccountType, error)
}

// GLAccountRepositoryFacade combines all GL account repository interfaces.
type GLAccountRepositoryFacade interface {
	GLAccountReader
	GLAccountWriter
	AccountTypeReader
}
