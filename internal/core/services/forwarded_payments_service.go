package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/steadybooks/backoffice/internal/apperrors"
	"github.com/steadybooks/backoffice/internal/core/domain"
	portsrepo "github.com/steadybooks/backoffice/internal/core/ports/repositories"
	portssvc "github.com/steadybooks/backoffice/internal/core/ports/services"
	"github.com/steadybooks/backoffice/internal/dto"
	"github.com/steadybooks/backoffice/internal/platform/logging"
)

var (
	ErrSourceNotBankAccount = fmt.Errorf("%w: source account must be a bank account", apperrors.ErrNotAllowed)
	ErrInsufficientFunds    = fmt.Errorf("%w: insufficient funds", apperrors.ErrNotAllowed)
	ErrIncorrectFundsValue  = fmt.Errorf("%w: incorrect funds value", apperrors.ErrNotAllowed)
)

// forwardedPaymentsService transfers funds from a bank GL account to a
// destination account and records the remittance linkage.
type forwardedPaymentsService struct {
	glAccountRepo  portsrepo.GLAccountReader
	transactionSvc portssvc.TransactionSvcFacade
	paymentRepo    portsrepo.PaymentRepositoryFacade
}

// NewForwardedPaymentsService creates a new ForwardedPaymentsService.
func NewForwardedPaymentsService(glAccountRepo portsrepo.GLAccountReader, transactionSvc portssvc.TransactionSvcFacade, paymentRepo portsrepo.PaymentRepositoryFacade) portssvc.ForwardedPaymentsSvcFacade {
	return &forwardedPaymentsService{
		glAccountRepo:  glAccountRepo,
		transactionSvc: transactionSvc,
		paymentRepo:    paymentRepo,
	}
}

var _ portssvc.ForwardedPaymentsSvcFacade = (*forwardedPaymentsService)(nil)

// Forward validates the transfer, commits a balanced transaction crediting
// the source and debiting the destination, and persists the forwarded-payment
// rows. All violations are rejected before any write.
func (s *forwardedPaymentsService) Forward(ctx context.Context, data dto.ForwardedPaymentData, userID string) (*domain.ForwardedPayment, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	amount := data.Amount.Round(2)
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrIncorrectFundsValue
	}

	source, err := s.glAccountRepo.FindGLAccountByID(ctx, data.SourceGLAccountID)
	if err != nil {
		return nil, fmt.Errorf("source account %s: %w", data.SourceGLAccountID, err)
	}
	if !source.IsBankAccount {
		return nil, fmt.Errorf("%w (account %s)", ErrSourceNotBankAccount, source.GLAccountID)
	}

	if _, err := s.glAccountRepo.FindGLAccountByID(ctx, data.DestinationGLAccountID); err != nil {
		return nil, fmt.Errorf("destination account %s: %w", data.DestinationGLAccountID, err)
	}

	balance, err := s.glAccountRepo.SumSignedRecords(ctx, source.GLAccountID, dto.RecordFilter{})
	if err != nil {
		logger.Error("Failed to compute source balance", slog.String("error", err.Error()), slog.String("gl_account_id", source.GLAccountID))
		return nil, fmt.Errorf("failed to compute balance for account %s: %w", source.GLAccountID, err)
	}
	if balance.LessThan(amount) {
		return nil, fmt.Errorf("%w: balance %s is less than transfer amount %s",
			ErrInsufficientFunds, balance.String(), amount.String())
	}

	draft := domain.NewTransactionDraft(data.AccountingOrganizationID).
		WithNotes(fmt.Sprintf("Forwarded payment %s", data.Remittance)).
		AddRecord(data.SourceGLAccountID, amount, false).
		AddRecord(data.DestinationGLAccountID, amount, true)

	transactionID, err := s.transactionSvc.Commit(ctx, draft, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	transferredAt := data.TransferredAt
	if transferredAt.IsZero() {
		transferredAt = now
	}

	payment := domain.Payment{
		PaymentID:     uuid.NewString(),
		TransactionID: transactionID,
		Type:          domain.PaymentForwarded,
		Amount:        amount,
		PaidAt:        transferredAt,
		Reference:     data.Remittance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	forwarded := domain.ForwardedPayment{
		ForwardedPaymentID:     uuid.NewString(),
		PaymentID:              payment.PaymentID,
		SourceGLAccountID:      data.SourceGLAccountID,
		DestinationGLAccountID: data.DestinationGLAccountID,
		Amount:                 amount,
		Remittance:             data.Remittance,
		TransferredAt:          transferredAt,
	}

	if err := s.paymentRepo.SaveForwardedPayment(ctx, payment, forwarded, data.InvoiceIDs); err != nil {
		logger.Error("Failed to save forwarded payment", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to save forwarded payment: %w", err)
	}

	logger.Info("Forwarded payment created",
		slog.String("forwarded_payment_id", forwarded.ForwardedPaymentID),
		slog.String("source", data.SourceGLAccountID),
		slog.String("destination", data.DestinationGLAccountID),
		slog.String("amount", amount.String()))
	return &forwarded, nil
}
