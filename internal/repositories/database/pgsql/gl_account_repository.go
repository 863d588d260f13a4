package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/steadybooks/backoffice/internal/apperrors"
	"github.com/steadybooks/backoffice/internal/core/domain"
	portsrepo "github.com/steadybooks/backoffice/internal/core/ports/repositories"
	"github.com/steadybooks/backoffice/internal/dto"
	"github.com/steadybooks/backoffice/internal/utils/pagination"
)

type PgxGLAccountRepository struct {
	BaseRepository
}

func newPgxGLAccountRepository(pool *pgxpool.Pool) portsrepo.GLAccountRepositoryFacade {
	return &PgxGLAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GLAccountRepositoryFacade = (*PgxGLAccountRepository)(nil)

const glAccountColumns = `
	a.gl_account_id, a.accounting_organization_id, a.code, a.name,
	a.is_bank_account, a.enable_payments_to_account,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
	t.account_type_id, t.name, t.increase_action_is_debit
`

func scanGLAccount(row pgx.Row) (domain.GLAccount, error) {
	var a domain.GLAccount
	err := row.Scan(
		&a.GLAccountID,
		&a.AccountingOrganizationID,
		&a.Code,
		&a.Name,
		&a.IsBankAccount,
		&a.EnablePaymentsToAccount,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
		&a.AccountType.AccountTypeID,
		&a.AccountType.Name,
		&a.AccountType.IncreaseActionIsDebit,
	)
	return a, err
}

func (r *PgxGLAccountRepository) SaveGLAccount(ctx context.Context, account domain.GLAccount) error {
	query := `
		INSERT INTO gl_accounts (
			gl_account_id, accounting_organization_id, account_type_id, code, name,
			is_bank_account, enable_payments_to_account,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.GLAccountID,
		account.AccountingOrganizationID,
		account.AccountType.AccountTypeID,
		account.Code,
		account.Name,
		account.IsBankAccount,
		account.EnablePaymentsToAccount,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert gl account "+account.GLAccountID, err)
	}
	return nil
}

func (r *PgxGLAccountRepository) FindGLAccountByID(ctx context.Context, glAccountID string) (*domain.GLAccount, error) {
	query := `
		SELECT ` + glAccountColumns + `
		FROM gl_accounts a
		JOIN account_types t ON t.account_type_id = a.account_type_id
		WHERE a.gl_account_id = $1;
	`
	account, err := scanGLAccount(r.Pool.QueryRow(ctx, query, glAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find gl account "+glAccountID, err)
	}
	return &account, nil
}

func (r *PgxGLAccountRepository) FindGLAccountByCode(ctx context.Context, code string) (*domain.GLAccount, error) {
	query := `
		SELECT ` + glAccountColumns + `
		FROM gl_accounts a
		JOIN account_types t ON t.account_type_id = a.account_type_id
		WHERE a.code = $1;
	`
	account, err := scanGLAccount(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find gl account by code "+code, err)
	}
	return &account, nil
}

func (r *PgxGLAccountRepository) FindGLAccountsByIDs(ctx context.Context, glAccountIDs []string) (map[string]domain.GLAccount, error) {
	accounts := make(map[string]domain.GLAccount, len(glAccountIDs))
	if len(glAccountIDs) == 0 {
		return accounts, nil
	}

	query := `
		SELECT ` + glAccountColumns + `
		FROM gl_accounts a
		JOIN account_types t ON t.account_type_id = a.account_type_id
		WHERE a.gl_account_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, glAccountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query gl accounts", err)
	}
	defer rows.Close()

	for rows.Next() {
		account, err := scanGLAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan gl account row", err)
		}
		accounts[account.GLAccountID] = account
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating gl account rows", err)
	}
	return accounts, nil
}

// SumSignedRecords computes the derived balance in SQL: record amounts are
// added when the record direction matches the account type's increase action
// and subtracted otherwise. The optional window bounds the owning
// transaction's creation time.
func (r *PgxGLAccountRepository) SumSignedRecords(ctx context.Context, glAccountID string, filter dto.RecordFilter) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE WHEN rec.is_debit = t.increase_action_is_debit THEN rec.amount ELSE -rec.amount END
		), 0)
		FROM transaction_records rec
		JOIN gl_accounts a ON a.gl_account_id = rec.gl_account_id
		JOIN account_types t ON t.account_type_id = a.account_type_id
		JOIN transactions txn ON txn.transaction_id = rec.transaction_id
		WHERE rec.gl_account_id = $1
	`
	args := []interface{}{glAccountID}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += " AND txn.created_at >= $" + strconv.Itoa(len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += " AND txn.created_at <= $" + strconv.Itoa(len(args))
	}
	query += ";"

	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&balance); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum records for account "+glAccountID, err)
	}
	return balance, nil
}

// FindTransactionRecordsByAccount lists records ordered by the owning
// transaction's creation time, newest first, with keyset pagination over
// (created_at, record_id).
func (r *PgxGLAccountRepository) FindTransactionRecordsByAccount(ctx context.Context, glAccountID string, filter dto.RecordFilter, limit int, nextToken *string) ([]domain.TransactionRecord, *string, error) {
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	query := `
		SELECT rec.transaction_record_id, rec.transaction_id, rec.gl_account_id, rec.amount, rec.is_debit, rec.created_at, txn.created_at
		FROM transaction_records rec
		JOIN transactions txn ON txn.transaction_id = rec.transaction_id
		WHERE rec.gl_account_id = $1
	`
	args := []interface{}{glAccountID}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += " AND txn.created_at >= $" + strconv.Itoa(len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += " AND txn.created_at <= $" + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastRecordID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		args = append(args, lastCreatedAt, lastRecordID)
		query += " AND (txn.created_at, rec.transaction_record_id) < ($" +
			strconv.Itoa(len(args)-1) + ", $" + strconv.Itoa(len(args)) + ")"
	}

	args = append(args, fetchLimit)
	query += `
		ORDER BY txn.created_at DESC, rec.transaction_record_id DESC
		LIMIT $` + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query records for account "+glAccountID, err)
	}
	defer rows.Close()

	records := make([]domain.TransactionRecord, 0, fetchLimit)
	txnTimes := make([]time.Time, 0, fetchLimit)
	for rows.Next() {
		var rec domain.TransactionRecord
		var txnCreatedAt time.Time
		if err := rows.Scan(
			&rec.TransactionRecordID,
			&rec.TransactionID,
			&rec.GLAccountID,
			&rec.Amount,
			&rec.IsDebit,
			&rec.CreatedAt,
			&txnCreatedAt,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan record row for account "+glAccountID, err)
		}
		records = append(records, rec)
		txnTimes = append(txnTimes, txnCreatedAt)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating record rows for account "+glAccountID, err)
	}

	records, token := recordHistoryPage(records, txnTimes, limit)
	return records, token, nil
}

// recordHistoryPage trims the extra lookahead row and builds the next-page
// cursor. The cursor carries the owning transaction's timestamp, matching the
// (txn.created_at, transaction_record_id) keyset the query orders by.
func recordHistoryPage(records []domain.TransactionRecord, txnTimes []time.Time, limit int) ([]domain.TransactionRecord, *string) {
	if len(records) <= limit {
		return records, nil
	}
	records = records[:limit]
	token := pagination.EncodeToken(txnTimes[limit-1], records[limit-1].TransactionRecordID)
	return records, &token
}

func (r *PgxGLAccountRepository) FindAccountTypeByID(ctx context.Context, accountTypeID string) (*domain.AccountType, error) {
	query := `
		SELECT account_type_id, name, increase_action_is_debit
		FROM account_types
		WHERE account_type_id = $1;
	`
	var t domain.AccountType
	err := r.Pool.QueryRow(ctx, query, accountTypeID).Scan(&t.AccountTypeID, &t.Name, &t.IncreaseActionIsDebit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account type "+accountTypeID, err)
	}
	return &t, nil
}

func (r *PgxGLAccountRepository) ListAccountTypes(ctx context.Context) ([]domain.AccountType, error) {
	query := `
		SELECT account_type_id, name, increase_action_is_debit
		FROM account_types
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account types", err)
	}
	defer rows.Close()

	var types []domain.AccountType
	for rows.Next() {
		var t domain.AccountType
		if err := rows.Scan(&t.AccountTypeID, &t.Name, &t.IncreaseActionIsDebit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account type row", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account type rows", err)
	}
	return types, nil
}
