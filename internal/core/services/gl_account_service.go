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

const defaultRecordPageSize = 50

// glAccountService administers the chart of accounts and answers derived
// balance and record history queries.
type glAccountService struct {
	glAccountRepo portsrepo.GLAccountRepositoryFacade
}

// NewGLAccountService creates a new GLAccountService.
func NewGLAccountService(glAccountRepo portsrepo.GLAccountRepositoryFacade) portssvc.GLAccountSvcFacade {
	return &glAccountService{glAccountRepo: glAccountRepo}
}

var _ portssvc.GLAccountSvcFacade = (*glAccountService)(nil)

func (s *glAccountService) CreateGLAccount(ctx context.Context, req dto.CreateGLAccountRequest, userID string) (*domain.GLAccount, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if req.AccountingOrganizationID == "" || req.AccountTypeID == "" || req.Code == "" || req.Name == "" {
		return nil, fmt.Errorf("%w: organization, account type, code and name are required", apperrors.ErrValidation)
	}

	accountType, err := s.glAccountRepo.FindAccountTypeByID(ctx, req.AccountTypeID)
	if err != nil {
		return nil, fmt.Errorf("account type %s: %w", req.AccountTypeID, err)
	}

	now := time.Now().UTC()
	account := domain.GLAccount{
		GLAccountID:              uuid.NewString(),
		AccountingOrganizationID: req.AccountingOrganizationID,
		AccountType:              *accountType,
		Code:                     req.Code,
		Name:                     req.Name,
		IsBankAccount:            req.IsBankAccount,
		EnablePaymentsToAccount:  req.EnablePaymentsToAccount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.glAccountRepo.SaveGLAccount(ctx, account); err != nil {
		logger.Error("Failed to save gl account", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save gl account: %w", err)
	}

	logger.Info("GL account created", slog.String("gl_account_id", account.GLAccountID), slog.String("code", account.Code))
	return &account, nil
}

func (s *glAccountService) GetGLAccountByID(ctx context.Context, glAccountID string) (*domain.GLAccount, error) {
	return s.glAccountRepo.FindGLAccountByID(ctx, glAccountID)
}

func (s *glAccountService) GetGLAccountByCode(ctx context.Context, code string) (*domain.GLAccount, error) {
	return s.glAccountRepo.FindGLAccountByCode(ctx, code)
}

func (s *glAccountService) GetGLAccountsByIDs(ctx context.Context, glAccountIDs []string) (map[string]domain.GLAccount, error) {
	return s.glAccountRepo.FindGLAccountsByIDs(ctx, glAccountIDs)
}

// GetAccountBalance sums signed record amounts for the account within the
// optional date window. The sign is positive when a record's direction
// matches the account type's increase action. Accounts with no records
// balance to 0.00.
func (s *glAccountService) GetAccountBalance(ctx context.Context, glAccountID string, filter dto.RecordFilter) (decimal.Decimal, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if _, err := s.glAccountRepo.FindGLAccountByID(ctx, glAccountID); err != nil {
		return decimal.Zero, fmt.Errorf("gl account %s: %w", glAccountID, err)
	}

	balance, err := s.glAccountRepo.SumSignedRecords(ctx, glAccountID, filter)
	if err != nil {
		logger.Error("Failed to compute account balance", slog.String("error", err.Error()), slog.String("gl_account_id", glAccountID))
		return decimal.Zero, fmt.Errorf("failed to compute balance for account %s: %w", glAccountID, err)
	}
	return balance.Round(2), nil
}

// FindTransactionRecordsByAccount returns a page of the account's record
// history ordered by the owning transaction's creation time, newest first.
func (s *glAccountService) FindTransactionRecordsByAccount(ctx context.Context, glAccountID string, params dto.ListRecordsParams) (*dto.ListRecordsResponse, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if _, err := s.glAccountRepo.FindGLAccountByID(ctx, glAccountID); err != nil {
		return nil, fmt.Errorf("gl account %s: %w", glAccountID, err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultRecordPageSize
	}

	records, nextToken, err := s.glAccountRepo.FindTransactionRecordsByAccount(ctx, glAccountID, params.Filter, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transaction records", slog.String("error", err.Error()), slog.String("gl_account_id", glAccountID))
		return nil, fmt.Errorf("failed to retrieve records for account %s: %w", glAccountID, err)
	}

	return &dto.ListRecordsResponse{Records: records, NextToken: nextToken}, nil
}
