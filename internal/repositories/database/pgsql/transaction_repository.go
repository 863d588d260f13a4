package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/steadybooks/backoffice/internal/apperrors"
	"github.com/steadybooks/backoffice/internal/core/domain"
	portsrepo "github.com/steadybooks/backoffice/internal/core/ports/repositories"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// SaveTransaction persists the transaction and its records inside a database
// transaction: either every row lands or none do. A partially written
// transaction is never visible to readers.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction is committed.

	transactionQuery := `
		INSERT INTO transactions (transaction_id, accounting_organization_id, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err = tx.Exec(ctx, transactionQuery,
		txn.TransactionID,
		txn.AccountingOrganizationID,
		txn.Notes,
		txn.CreatedAt,
		txn.CreatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+txn.TransactionID, err)
	}

	batch := &pgx.Batch{}
	recordQuery := `
		INSERT INTO transaction_records (transaction_record_id, transaction_id, gl_account_id, amount, is_debit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, rec := range txn.Records {
		batch.Queue(recordQuery,
			rec.TransactionRecordID,
			rec.TransactionID,
			rec.GLAccountID,
			rec.Amount,
			rec.IsDebit,
			rec.CreatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute record batch for transaction "+txn.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction with all of its records.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT transaction_id, accounting_organization_id, notes, created_at, created_by
		FROM transactions
		WHERE transaction_id = $1;
	`
	var txn domain.Transaction
	err := r.Pool.QueryRow(ctx, query, transactionID).Scan(
		&txn.TransactionID,
		&txn.AccountingOrganizationID,
		&txn.Notes,
		&txn.CreatedAt,
		&txn.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}

	recordQuery := `
		SELECT transaction_record_id, transaction_id, gl_account_id, amount, is_debit, created_at
		FROM transaction_records
		WHERE transaction_id = $1
		ORDER BY transaction_record_id;
	`
	rows, err := r.Pool.Query(ctx, recordQuery, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query records for transaction "+transactionID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec domain.TransactionRecord
		if err := rows.Scan(
			&rec.TransactionRecordID,
			&rec.TransactionID,
			&rec.GLAccountID,
			&rec.Amount,
			&rec.IsDebit,
			&rec.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan record row for transaction "+transactionID, err)
		}
		txn.Records = append(txn.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating record rows for transaction "+transactionID, err)
	}

	return &txn, nil
}

// SumDebitsAndCredits returns the global debit and credit totals.
func (r *PgxTransactionRepository) SumDebitsAndCredits(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE is_debit), 0),
			COALESCE(SUM(amount) FILTER (WHERE NOT is_debit), 0)
		FROM transaction_records;
	`
	var debits, credits decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query).Scan(&debits, &credits); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum ledger totals", err)
	}
	return debits, credits, nil
}

// ListUnbalancedTransactionIDs returns the ids of committed transactions
// whose debits and credits differ. A healthy ledger returns none.
func (r *PgxTransactionRepository) ListUnbalancedTransactionIDs(ctx context.Context) ([]string, error) {
	query := `
		SELECT transaction_id
		FROM transaction_records
		GROUP BY transaction_id
		HAVING COALESCE(SUM(amount) FILTER (WHERE is_debit), 0)
			<> COALESCE(SUM(amount) FILTER (WHERE NOT is_debit), 0)
		ORDER BY transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query unbalanced transactions", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan unbalanced transaction id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating unbalanced transaction ids", err)
	}
	return ids, nil
}
