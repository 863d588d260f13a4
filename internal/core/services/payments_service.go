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

var ErrPaymentsDisabled = fmt.Errorf("%w: payments to account are disabled", apperrors.ErrNotAllowed)

// paymentsService creates payments backed by committed ledger transactions.
// A payment may split across multiple payable and receivable accounts; each
// line produces exactly one transaction record.
type paymentsService struct {
	glAccountRepo  portsrepo.GLAccountReader
	transactionSvc portssvc.TransactionSvcFacade
	paymentRepo    portsrepo.PaymentRepositoryFacade
}

// NewPaymentsService creates a new PaymentsService.
func NewPaymentsService(glAccountRepo portsrepo.GLAccountReader, transactionSvc portssvc.TransactionSvcFacade, paymentRepo portsrepo.PaymentRepositoryFacade) portssvc.PaymentsSvcFacade {
	return &paymentsService{
		glAccountRepo:  glAccountRepo,
		transactionSvc: transactionSvc,
		paymentRepo:    paymentRepo,
	}
}

var _ portssvc.PaymentsSvcFacade = (*paymentsService)(nil)

func (s *paymentsService) CreateDirectDepositPayment(ctx context.Context, data dto.CreatePaymentData, userID string) (*domain.Payment, error) {
	return s.createPayment(ctx, data, userID, domain.PaymentDirectDeposit)
}

func (s *paymentsService) CreateCreditNotePayment(ctx context.Context, data dto.CreatePaymentData, userID string) (*domain.Payment, error) {
	return s.createPayment(ctx, data, userID, domain.PaymentCreditNote)
}

func (s *paymentsService) createPayment(ctx context.Context, data dto.CreatePaymentData, userID string, paymentType domain.PaymentType) (*domain.Payment, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if len(data.PayableLines) == 0 || len(data.ReceivableLines) == 0 {
		return nil, fmt.Errorf("%w: payment requires at least one payable and one receivable line", apperrors.ErrValidation)
	}

	payableTotal := decimal.Zero
	receivableTotal := decimal.Zero
	accountIDs := make([]string, 0, len(data.PayableLines)+len(data.ReceivableLines))
	for _, line := range data.PayableLines {
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: payment line amount must be positive for account %s", apperrors.ErrValidation, line.GLAccountID)
		}
		payableTotal = payableTotal.Add(line.Amount.Round(2))
		accountIDs = append(accountIDs, line.GLAccountID)
	}
	for _, line := range data.ReceivableLines {
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: payment line amount must be positive for account %s", apperrors.ErrValidation, line.GLAccountID)
		}
		receivableTotal = receivableTotal.Add(line.Amount.Round(2))
		accountIDs = append(accountIDs, line.GLAccountID)
	}

	if !payableTotal.Equal(receivableTotal) {
		return nil, fmt.Errorf("%w: payable total %s does not equal receivable total %s",
			apperrors.ErrNotAllowed, payableTotal.String(), receivableTotal.String())
	}

	accountsMap, err := s.glAccountRepo.FindGLAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		logger.Error("Failed to fetch accounts for payment", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch gl accounts: %w", err)
	}

	// Pre-check: every target account must allow payments before anything is
	// committed. This never surfaces as a mid-commit rollback.
	for _, id := range uniqueStrings(accountIDs) {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrGLAccountNotFound, id)
		}
		if !acc.EnablePaymentsToAccount {
			return nil, fmt.Errorf("%w: account %s", ErrPaymentsDisabled, id)
		}
	}

	// Payable lines decrease their account balances, receivable lines
	// increase theirs; each account's polarity picks the record direction.
	draft := domain.NewTransactionDraft(data.AccountingOrganizationID).
		WithNotes(fmt.Sprintf("%s payment %s", paymentType, data.Reference))
	for _, line := range data.PayableLines {
		acc := accountsMap[line.GLAccountID]
		draft.AddRecord(line.GLAccountID, line.Amount, !acc.AccountType.IncreaseActionIsDebit)
	}
	for _, line := range data.ReceivableLines {
		acc := accountsMap[line.GLAccountID]
		draft.AddRecord(line.GLAccountID, line.Amount, acc.AccountType.IncreaseActionIsDebit)
	}

	transactionID, err := s.transactionSvc.Commit(ctx, draft, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	paidAt := data.PaidAt
	if paidAt.IsZero() {
		paidAt = now
	}
	payment := domain.Payment{
		PaymentID:     uuid.NewString(),
		TransactionID: transactionID,
		Type:          paymentType,
		Amount:        receivableTotal,
		PaidAt:        paidAt,
		Reference:     data.Reference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		logger.Error("Failed to save payment", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	logger.Info("Payment created",
		slog.String("payment_id", payment.PaymentID),
		slog.String("type", string(paymentType)),
		slog.String("amount", payment.Amount.String()))
	return &payment, nil
}
