package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/steadybooks/backoffice/internal/apperrors"
	"github.com/steadybooks/backoffice/internal/core/domain"
	portsrepo "github.com/steadybooks/backoffice/internal/core/ports/repositories"
	portssvc "github.com/steadybooks/backoffice/internal/core/ports/services"
	"github.com/steadybooks/backoffice/internal/platform/logging"
	"github.com/steadybooks/backoffice/internal/utils/accounting"
)

var (
	ErrTransactionUnbalanced = fmt.Errorf("%w: unbalanced transaction", apperrors.ErrNotAllowed)
	ErrEmptyDraft            = fmt.Errorf("%w: transaction draft has no records", apperrors.ErrValidation)
	ErrGLAccountNotFound     = fmt.Errorf("gl account %w", apperrors.ErrNotFound)
)

// transactionService commits transaction drafts atomically and reverses
// committed transactions by committing a mirrored one.
type transactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	glAccountRepo   portsrepo.GLAccountReader
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, glAccountRepo portsrepo.GLAccountReader) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		glAccountRepo:   glAccountRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// Commit validates the draft and persists the transaction with all of its
// records as a single unit. Nothing is written when validation fails.
func (s *transactionService) Commit(ctx context.Context, draft *domain.TransactionDraft, userID string) (string, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if draft == nil || len(draft.Records) == 0 {
		return "", ErrEmptyDraft
	}
	if draft.AccountingOrganizationID == "" {
		return "", fmt.Errorf("%w: accounting organization is required", apperrors.ErrValidation)
	}

	if err := accounting.ValidateTransactionBalance(draft.Records); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransactionUnbalanced, err)
	}

	// Every referenced account must exist and belong to the draft's
	// organization before anything is written.
	accountIDs := make([]string, 0, len(draft.Records))
	for _, rec := range draft.Records {
		accountIDs = append(accountIDs, rec.GLAccountID)
	}
	accountIDs = uniqueStrings(accountIDs)

	accountsMap, err := s.glAccountRepo.FindGLAccountsByIDs(ctx, accountIDs)
	if err != nil {
		logger.Error("Failed to fetch accounts for transaction commit", slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to fetch gl accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accountsMap[id]
		if !found {
			return "", fmt.Errorf("%w: ID %s", ErrGLAccountNotFound, id)
		}
		if acc.AccountingOrganizationID != draft.AccountingOrganizationID {
			return "", fmt.Errorf("%w: account %s belongs to a different accounting organization", apperrors.ErrNotAllowed, id)
		}
	}

	now := time.Now().UTC()
	transactionID := uuid.NewString()

	txn := domain.Transaction{
		TransactionID:            transactionID,
		AccountingOrganizationID: draft.AccountingOrganizationID,
		Notes:                    draft.Notes,
		Records:                  make([]domain.TransactionRecord, len(draft.Records)),
		CreatedAt:                now,
		CreatedBy:                userID,
	}
	for i, rec := range draft.Records {
		txn.Records[i] = domain.TransactionRecord{
			TransactionRecordID: uuid.NewString(),
			TransactionID:       transactionID,
			GLAccountID:         rec.GLAccountID,
			Amount:              rec.Amount.Round(2),
			IsDebit:             rec.IsDebit,
			CreatedAt:           now,
		}
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return "", fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction committed",
		slog.String("transaction_id", transactionID),
		slog.String("organization_id", draft.AccountingOrganizationID),
		slog.Int("record_count", len(txn.Records)))
	return transactionID, nil
}

// Rollback commits a new transaction mirroring the target with IsDebit
// flipped on every record. The original records are never touched; history is
// append-only.
func (s *transactionService) Rollback(ctx context.Context, transactionID string, userID string) (string, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	original, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("transaction %s %w", transactionID, apperrors.ErrNotFound)
		}
		logger.Error("Failed to fetch transaction for rollback", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return "", fmt.Errorf("failed to retrieve transaction %s: %w", transactionID, err)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	reversal := domain.Transaction{
		TransactionID:            reversalID,
		AccountingOrganizationID: original.AccountingOrganizationID,
		Notes:                    fmt.Sprintf("Reversal of transaction %s", original.TransactionID),
		Records:                  make([]domain.TransactionRecord, len(original.Records)),
		CreatedAt:                now,
		CreatedBy:                userID,
	}
	for i, rec := range original.Records {
		reversal.Records[i] = domain.TransactionRecord{
			TransactionRecordID: uuid.NewString(),
			TransactionID:       reversalID,
			GLAccountID:         rec.GLAccountID,
			Amount:              rec.Amount,
			IsDebit:             !rec.IsDebit,
			CreatedAt:           now,
		}
	}

	if err := s.transactionRepo.SaveTransaction(ctx, reversal); err != nil {
		logger.Error("Failed to save reversing transaction", slog.String("error", err.Error()), slog.String("original_id", transactionID))
		return "", fmt.Errorf("failed to save reversing transaction: %w", err)
	}

	logger.Info("Transaction reversed",
		slog.String("original_id", transactionID),
		slog.String("reversal_id", reversalID))
	return reversalID, nil
}

// VerifyLedger checks that the global debit and credit totals match and that
// no committed transaction is internally unbalanced.
func (s *transactionService) VerifyLedger(ctx context.Context) error {
	logger := logging.GetLoggerFromCtx(ctx)

	debits, credits, err := s.transactionRepo.SumDebitsAndCredits(ctx)
	if err != nil {
		logger.Error("Failed to sum ledger totals", slog.String("error", err.Error()))
		return fmt.Errorf("failed to sum ledger totals: %w", err)
	}
	if !debits.Equal(credits) {
		logger.Error("Ledger is out of balance",
			slog.String("total_debits", debits.String()),
			slog.String("total_credits", credits.String()))
		return fmt.Errorf("%w: ledger debit total %s does not equal credit total %s",
			apperrors.ErrConflict, debits.String(), credits.String())
	}

	unbalanced, err := s.transactionRepo.ListUnbalancedTransactionIDs(ctx)
	if err != nil {
		logger.Error("Unbalanced transaction scan failed", slog.String("error", err.Error()))
		return fmt.Errorf("failed to scan for unbalanced transactions: %w", err)
	}
	if len(unbalanced) > 0 {
		logger.Error("Found unbalanced transactions",
			slog.Int("count", len(unbalanced)),
			slog.Any("transaction_ids", unbalanced))
		return fmt.Errorf("%w: %d unbalanced transactions", apperrors.ErrConflict, len(unbalanced))
	}

	logger.Info("Ledger verification passed", slog.String("total", debits.String()))
	return nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
