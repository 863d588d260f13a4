package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/steadybooks/backoffice/internal/apperrors"
	"github.com/steadybooks/backoffice/internal/core/domain"
	portsrepo "github.com/steadybooks/backoffice/internal/core/ports/repositories"
)

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentInsertQuery = `
	INSERT INTO payments (
		payment_id, transaction_id, type, amount, paid_at, reference,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	_, err := r.Pool.Exec(ctx, paymentInsertQuery,
		payment.PaymentID,
		payment.TransactionID,
		payment.Type,
		payment.Amount,
		payment.PaidAt,
		payment.Reference,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment "+payment.PaymentID, err)
	}
	return nil
}

// SaveForwardedPayment persists the payment, the forwarded-payment metadata
// and the invoice linkage rows in one database transaction.
func (r *PgxPaymentRepository) SaveForwardedPayment(ctx context.Context, payment domain.Payment, forwarded domain.ForwardedPayment, invoiceIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, paymentInsertQuery,
		payment.PaymentID,
		payment.TransactionID,
		payment.Type,
		payment.Amount,
		payment.PaidAt,
		payment.Reference,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	); err != nil {
		return apperrors.NewAppError(500, "failed to insert payment "+payment.PaymentID, err)
	}

	forwardedQuery := `
		INSERT INTO forwarded_payments (
			forwarded_payment_id, payment_id, source_gl_account_id, destination_gl_account_id,
			amount, remittance, transferred_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	if _, err := tx.Exec(ctx, forwardedQuery,
		forwarded.ForwardedPaymentID,
		forwarded.PaymentID,
		forwarded.SourceGLAccountID,
		forwarded.DestinationGLAccountID,
		forwarded.Amount,
		forwarded.Remittance,
		forwarded.TransferredAt,
	); err != nil {
		return apperrors.NewAppError(500, "failed to insert forwarded payment "+forwarded.ForwardedPaymentID, err)
	}

	if len(invoiceIDs) > 0 {
		batch := &pgx.Batch{}
		linkQuery := `
			INSERT INTO forwarded_payment_invoices (forwarded_payment_id, invoice_id)
			VALUES ($1, $2);
		`
		for _, invoiceID := range invoiceIDs {
			batch.Queue(linkQuery, forwarded.ForwardedPaymentID, invoiceID)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to link invoices for forwarded payment "+forwarded.ForwardedPaymentID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `
		SELECT payment_id, transaction_id, type, amount, paid_at, reference,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM payments
		WHERE payment_id = $1;
	`
	var p domain.Payment
	err := r.Pool.QueryRow(ctx, query, paymentID).Scan(
		&p.PaymentID,
		&p.TransactionID,
		&p.Type,
		&p.Amount,
		&p.PaidAt,
		&p.Reference,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment "+paymentID, err)
	}
	return &p, nil
}

func (r *PgxPaymentRepository) FindForwardedPaymentByID(ctx context.Context, forwardedPaymentID string) (*domain.ForwardedPayment, error) {
	query := `
		SELECT forwarded_payment_id, payment_id, source_gl_account_id, destination_gl_account_id,
		       amount, remittance, transferred_at
		FROM forwarded_payments
		WHERE forwarded_payment_id = $1;
	`
	var fp domain.ForwardedPayment
	err := r.Pool.QueryRow(ctx, query, forwardedPaymentID).Scan(
		&fp.ForwardedPaymentID,
		&fp.PaymentID,
		&fp.SourceGLAccountID,
		&fp.DestinationGLAccountID,
		&fp.Amount,
		&fp.Remittance,
		&fp.TransferredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find forwarded payment "+forwardedPaymentID, err)
	}
	return &fp, nil
}
