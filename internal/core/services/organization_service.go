package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/steadybooks/backoffice/internal/apperrors"
	"github.com/steadybooks/backoffice/internal/core/domain"
	portsrepo "github.com/steadybooks/backoffice/internal/core/ports/repositories"
	portssvc "github.com/steadybooks/backoffice/internal/core/ports/services"
	"github.com/steadybooks/backoffice/internal/dto"
	"github.com/steadybooks/backoffice/internal/platform/logging"
)

// organizationService manages accounting organizations and their location
// attachments.
type organizationService struct {
	organizationRepo portsrepo.OrganizationRepositoryFacade
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(organizationRepo portsrepo.OrganizationRepositoryFacade) portssvc.OrganizationSvcFacade {
	return &organizationService{organizationRepo: organizationRepo}
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

func (s *organizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, userID string) (*domain.AccountingOrganization, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if req.Name == "" {
		return nil, fmt.Errorf("%w: organization name is required", apperrors.ErrValidation)
	}
	if req.LockDayOfMonth < 1 || req.LockDayOfMonth > 31 {
		return nil, fmt.Errorf("%w: lock day of month must be between 1 and 31", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	org := domain.AccountingOrganization{
		AccountingOrganizationID:     uuid.NewString(),
		Name:                         req.Name,
		LockDayOfMonth:               req.LockDayOfMonth,
		IsActive:                     false,
		GLAccountReceivableID:        req.GLAccountReceivableID,
		GLAccountTaxPayableID:        req.GLAccountTaxPayableID,
		GLAccountAccountsPayableID:   req.GLAccountAccountsPayableID,
		GLAccountPaymentDetailsID:    req.GLAccountPaymentDetailsID,
		GLAccountFranchisePaymentsID: req.GLAccountFranchisePaymentsID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.organizationRepo.SaveOrganization(ctx, org); err != nil {
		logger.Error("Failed to save organization", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save organization: %w", err)
	}

	logger.Info("Accounting organization created", slog.String("organization_id", org.AccountingOrganizationID))
	return &org, nil
}

func (s *organizationService) GetOrganizationByID(ctx context.Context, organizationID string) (*domain.AccountingOrganization, error) {
	return s.organizationRepo.FindOrganizationByID(ctx, organizationID)
}

// AttachToLocation makes the organization the active one for the location.
// Any previously active attachment is deactivated in the same unit of work.
func (s *organizationService) AttachToLocation(ctx context.Context, organizationID, locationID, userID string) error {
	logger := logging.GetLoggerFromCtx(ctx)

	if _, err := s.organizationRepo.FindOrganizationByID(ctx, organizationID); err != nil {
		return fmt.Errorf("organization %s: %w", organizationID, err)
	}

	if err := s.organizationRepo.AttachOrganizationToLocation(ctx, organizationID, locationID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to attach organization to location",
			slog.String("error", err.Error()),
			slog.String("organization_id", organizationID),
			slog.String("location_id", locationID))
		return fmt.Errorf("failed to attach organization %s to location %s: %w", organizationID, locationID, err)
	}

	logger.Info("Organization attached to location",
		slog.String("organization_id", organizationID),
		slog.String("location_id", locationID))
	return nil
}

func (s *organizationService) GetActiveForLocation(ctx context.Context, locationID string) (*domain.AccountingOrganization, error) {
	return s.organizationRepo.FindActiveOrganizationByLocation(ctx, locationID)
}
