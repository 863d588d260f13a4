package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/steadybooks/backoffice/internal/apperrors"
	"github.com/steadybooks/backoffice/internal/core/domain"
	portsrepo "github.com/steadybooks/backoffice/internal/core/ports/repositories"
	portssvc "github.com/steadybooks/backoffice/internal/core/ports/services"
	"github.com/steadybooks/backoffice/internal/dto"
	"github.com/steadybooks/backoffice/internal/platform/logging"
	"github.com/steadybooks/backoffice/internal/utils/accounting"
)

var (
	ErrNoActiveOrganization  = fmt.Errorf("%w: no active accounting organization for location", apperrors.ErrNotAllowed)
	ErrBeforeFinancialCutoff = fmt.Errorf("%w: date is before the financial period cutoff", apperrors.ErrNotAllowed)
	ErrEntityLocked          = fmt.Errorf("%w: entity is locked", apperrors.ErrNotAllowed)
	ErrZeroBalanceApproval   = fmt.Errorf("%w: entity with zero balance can't be approved", apperrors.ErrNotAllowed)
)

// financialEntityService implements the shared create/update/delete/approve
// workflow of invoices, purchase orders and credit notes. The kind picks the
// backing table, the applicable user approval limit, and the posting shape
// used on approval.
type financialEntityService struct {
	kind             domain.EntityKind
	financialRepo    portsrepo.FinancialEntityRepositoryFacade
	organizationRepo portsrepo.OrganizationReader
	glAccountRepo    portsrepo.GLAccountReader
	taxRateRepo      portsrepo.TaxRateReader
	userRepo         portsrepo.UserReader
	transactionSvc   portssvc.TransactionSvcFacade
}

func newFinancialEntityService(kind domain.EntityKind, repos portsrepo.RepositoryProvider, transactionSvc portssvc.TransactionSvcFacade) *financialEntityService {
	return &financialEntityService{
		kind:             kind,
		financialRepo:    repos.FinancialRepo,
		organizationRepo: repos.OrganizationRepo,
		glAccountRepo:    repos.GLAccountRepo,
		taxRateRepo:      repos.TaxRateRepo,
		userRepo:         repos.UserRepo,
		transactionSvc:   transactionSvc,
	}
}

// NewInvoicesService creates the invoice flavour of the financial entity
// workflow.
func NewInvoicesService(repos portsrepo.RepositoryProvider, transactionSvc portssvc.TransactionSvcFacade) portssvc.FinancialEntitySvcFacade {
	return newFinancialEntityService(domain.KindInvoice, repos, transactionSvc)
}

// NewPurchaseOrdersService creates the purchase order flavour.
func NewPurchaseOrdersService(repos portsrepo.RepositoryProvider, transactionSvc portssvc.TransactionSvcFacade) portssvc.FinancialEntitySvcFacade {
	return newFinancialEntityService(domain.KindPurchaseOrder, repos, transactionSvc)
}

// NewCreditNotesService creates the credit note flavour.
func NewCreditNotesService(repos portsrepo.RepositoryProvider, transactionSvc portssvc.TransactionSvcFacade) portssvc.FinancialEntitySvcFacade {
	return newFinancialEntityService(domain.KindCreditNote, repos, transactionSvc)
}

var _ portssvc.FinancialEntitySvcFacade = (*financialEntityService)(nil)

// CreateEntity creates a DRAFT entity after resolving the active accounting
// organization for the location and checking the lock-day cutoff.
func (s *financialEntityService) CreateEntity(ctx context.Context, req dto.CreateEntityRequest, userID string) (*domain.FinancialEntity, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if req.LocationID == "" {
		return nil, fmt.Errorf("%w: location is required", apperrors.ErrValidation)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}

	org, err := s.organizationRepo.FindActiveOrganizationByLocation(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w %s", ErrNoActiveOrganization, req.LocationID)
		}
		return nil, fmt.Errorf("failed to resolve active organization: %w", err)
	}

	if err := s.checkCutoff(req.Date, org.LockDayOfMonth); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entityID := uuid.NewString()
	entity := domain.FinancialEntity{
		EntityID:                 entityID,
		Kind:                     s.kind,
		LocationID:               req.LocationID,
		AccountingOrganizationID: org.AccountingOrganizationID,
		Date:                     req.Date,
		Status:                   domain.StatusDraft,
		Reference:                req.Reference,
		RecipientName:            req.RecipientName,
		Items:                    buildItems(entityID, req.Items),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.financialRepo.SaveEntity(ctx, entity); err != nil {
		logger.Error("Failed to save entity", slog.String("error", err.Error()), slog.String("kind", string(s.kind)))
		return nil, fmt.Errorf("failed to save %s: %w", s.kind, err)
	}

	logger.Info("Financial entity created",
		slog.String("kind", string(s.kind)),
		slog.String("entity_id", entity.EntityID),
		slog.String("organization_id", org.AccountingOrganizationID))
	return &entity, nil
}

func (s *financialEntityService) GetEntityByID(ctx context.Context, entityID string) (*domain.FinancialEntity, error) {
	return s.financialRepo.FindEntityByID(ctx, s.kind, entityID)
}

// UpdateEntity applies edits to an entity. Locked entities (approved, or with
// approve requests outstanding) reject updates unless the bypass flag is set.
// A new date must still respect the financial cutoff.
func (s *financialEntityService) UpdateEntity(ctx context.Context, entityID string, req dto.UpdateEntityRequest, userID string) (*domain.FinancialEntity, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	entity, err := s.financialRepo.FindEntityByID(ctx, s.kind, entityID)
	if err != nil {
		return nil, err
	}

	requests, err := s.financialRepo.FindApproveRequests(ctx, s.kind, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch approve requests: %w", err)
	}
	if entity.Locked(len(requests) > 0) && !req.BypassLock {
		return nil, fmt.Errorf("%w: %s %s", ErrEntityLocked, s.kind, entityID)
	}

	if req.Date != nil {
		org, err := s.organizationRepo.FindOrganizationByID(ctx, entity.AccountingOrganizationID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve organization: %w", err)
		}
		if err := s.checkCutoff(*req.Date, org.LockDayOfMonth); err != nil {
			return nil, err
		}
		entity.Date = *req.Date
	}
	if req.Reference != nil {
		entity.Reference = *req.Reference
	}
	if req.RecipientName != nil {
		entity.RecipientName = *req.RecipientName
	}
	if req.Items != nil {
		entity.Items = buildItems(entity.EntityID, *req.Items)
	}

	now := time.Now().UTC()
	entity.LastUpdatedAt = now
	entity.LastUpdatedBy = userID

	if err := s.financialRepo.UpdateEntity(ctx, *entity); err != nil {
		logger.Error("Failed to update entity", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to update %s: %w", s.kind, err)
	}

	logger.Info("Financial entity updated", slog.String("kind", string(s.kind)), slog.String("entity_id", entityID))
	return entity, nil
}

// DeleteEntity soft-deletes a draft entity. Deletion is blocked once the
// entity is approved or has any approve requests.
func (s *financialEntityService) DeleteEntity(ctx context.Context, entityID string, userID string) error {
	logger := logging.GetLoggerFromCtx(ctx)

	entity, err := s.financialRepo.FindEntityByID(ctx, s.kind, entityID)
	if err != nil {
		return err
	}
	if entity.Status == domain.StatusApproved {
		return fmt.Errorf("%w: approved %s %s can't be deleted", apperrors.ErrNotAllowed, s.kind, entityID)
	}

	requests, err := s.financialRepo.FindApproveRequests(ctx, s.kind, entityID)
	if err != nil {
		return fmt.Errorf("failed to fetch approve requests: %w", err)
	}
	if len(requests) > 0 {
		return fmt.Errorf("%w: %s %s has approve requests and can't be deleted", apperrors.ErrNotAllowed, s.kind, entityID)
	}

	if err := s.financialRepo.MarkEntityDeleted(ctx, s.kind, entityID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to delete entity", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return fmt.Errorf("failed to delete %s: %w", s.kind, err)
	}

	logger.Info("Financial entity deleted", slog.String("kind", string(s.kind)), slog.String("entity_id", entityID))
	return nil
}

// CreateApproveRequests verifies every candidate approver (location
// membership and approval limit) before writing anything; an approver with an
// outstanding request is skipped rather than duplicated.
func (s *financialEntityService) CreateApproveRequests(ctx context.Context, entityID string, data dto.CreateApproveRequestsData) ([]domain.ApproveRequest, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if len(data.ApproverIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one approver is required", apperrors.ErrValidation)
	}

	entity, err := s.financialRepo.FindEntityByID(ctx, s.kind, entityID)
	if err != nil {
		return nil, err
	}
	if entity.Status == domain.StatusApproved {
		return nil, fmt.Errorf("%w: %s %s is already approved", apperrors.ErrNotAllowed, s.kind, entityID)
	}

	totals, err := s.entityTotals(ctx, entity)
	if err != nil {
		return nil, err
	}

	for _, approverID := range data.ApproverIDs {
		approver, err := s.userRepo.FindUserByID(ctx, approverID)
		if err != nil {
			return nil, fmt.Errorf("approver %s: %w", approverID, err)
		}
		if !approver.BelongsToLocation(entity.LocationID) || approver.ApproveLimit(s.kind).LessThan(totals.GrossTotal) {
			return nil, fmt.Errorf("%w: User %s can't be an approver of %s %s",
				apperrors.ErrNotAllowed, approverID, s.kind, entityID)
		}
	}

	existing, err := s.financialRepo.FindApproveRequests(ctx, s.kind, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch approve requests: %w", err)
	}
	outstanding := make(map[string]bool, len(existing))
	for _, req := range existing {
		if req.ApprovedAt == nil {
			outstanding[req.ApproverID] = true
		}
	}

	now := time.Now().UTC()
	newRequests := make([]domain.ApproveRequest, 0, len(data.ApproverIDs))
	for _, approverID := range data.ApproverIDs {
		if outstanding[approverID] {
			continue
		}
		newRequests = append(newRequests, domain.ApproveRequest{
			ApproveRequestID: uuid.NewString(),
			EntityID:         entityID,
			EntityKind:       s.kind,
			RequesterID:      data.RequesterID,
			ApproverID:       approverID,
			CreatedAt:        now,
		})
	}

	if len(newRequests) > 0 {
		if err := s.financialRepo.SaveApproveRequests(ctx, newRequests); err != nil {
			logger.Error("Failed to save approve requests", slog.String("error", err.Error()), slog.String("entity_id", entityID))
			return nil, fmt.Errorf("failed to save approve requests: %w", err)
		}
	}

	if entity.Status == domain.StatusDraft {
		if err := s.financialRepo.UpdateEntityStatus(ctx, s.kind, entityID, domain.StatusPendingApproval, nil, data.RequesterID, now); err != nil {
			logger.Error("Failed to transition entity to pending approval", slog.String("error", err.Error()), slog.String("entity_id", entityID))
			return nil, fmt.Errorf("failed to update %s status: %w", s.kind, err)
		}
	}

	logger.Info("Approve requests created",
		slog.String("kind", string(s.kind)),
		slog.String("entity_id", entityID),
		slog.Int("created", len(newRequests)))
	return newRequests, nil
}

// Approve finalizes the entity: the approver's limit must cover the gross
// total, zero-total entities are rejected, and approval posts one balanced GL
// transaction with exactly one record per distinct account.
func (s *financialEntityService) Approve(ctx context.Context, entityID string, approverID string) (*domain.FinancialEntity, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	entity, err := s.financialRepo.FindEntityByID(ctx, s.kind, entityID)
	if err != nil {
		return nil, err
	}
	if entity.Status == domain.StatusApproved {
		return nil, fmt.Errorf("%w: %s %s is already approved", apperrors.ErrNotAllowed, s.kind, entityID)
	}

	approver, err := s.userRepo.FindUserByID(ctx, approverID)
	if err != nil {
		return nil, fmt.Errorf("approver %s: %w", approverID, err)
	}

	// The approver must hold an outstanding request. Checked before the
	// posting draft is committed so a rejected approval writes nothing.
	requests, err := s.financialRepo.FindApproveRequests(ctx, s.kind, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch approve requests: %w", err)
	}
	hasOutstanding := false
	for _, req := range requests {
		if req.ApproverID == approverID && req.ApprovedAt == nil {
			hasOutstanding = true
			break
		}
	}
	if !hasOutstanding {
		return nil, fmt.Errorf("%w: User %s has no outstanding approve request for %s %s",
			apperrors.ErrNotAllowed, approverID, s.kind, entityID)
	}

	totals, err := s.entityTotals(ctx, entity)
	if err != nil {
		return nil, err
	}
	if totals.GrossTotal.IsZero() {
		return nil, fmt.Errorf("%w: %s %s", ErrZeroBalanceApproval, s.kind, entityID)
	}
	if approver.ApproveLimit(s.kind).LessThan(totals.GrossTotal) {
		return nil, fmt.Errorf("%w: User %s can't be an approver of %s %s",
			apperrors.ErrNotAllowed, approverID, s.kind, entityID)
	}

	org, err := s.organizationRepo.FindOrganizationByID(ctx, entity.AccountingOrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve organization: %w", err)
	}

	draft, err := s.buildPostingDraft(entity, org, totals)
	if err != nil {
		return nil, err
	}

	transactionID, err := s.transactionSvc.Commit(ctx, draft, approverID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.financialRepo.MarkApproveRequestApproved(ctx, s.kind, entityID, approverID, now); err != nil {
		logger.Error("Failed to stamp approve request", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to stamp approve request: %w", err)
	}
	if err := s.financialRepo.UpdateEntityStatus(ctx, s.kind, entityID, domain.StatusApproved, &transactionID, approverID, now); err != nil {
		logger.Error("Failed to transition entity to approved", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to update %s status: %w", s.kind, err)
	}

	entity.Status = domain.StatusApproved
	entity.TransactionID = &transactionID
	entity.LastUpdatedAt = now
	entity.LastUpdatedBy = approverID

	logger.Info("Financial entity approved",
		slog.String("kind", string(s.kind)),
		slog.String("entity_id", entityID),
		slog.String("transaction_id", transactionID),
		slog.String("gross_total", totals.GrossTotal.String()))
	return entity, nil
}

// checkCutoff rejects dates on or before the most recent lock-day boundary.
func (s *financialEntityService) checkCutoff(date time.Time, lockDayOfMonth int) error {
	cutoff := accounting.FinancialCutoff(time.Now().UTC(), lockDayOfMonth)
	if !date.After(cutoff) {
		return fmt.Errorf("%w: %s is not after %s",
			ErrBeforeFinancialCutoff, date.Format("2006-01-02"), cutoff.Format("2006-01-02"))
	}
	return nil
}

func (s *financialEntityService) entityTotals(ctx context.Context, entity *domain.FinancialEntity) (accounting.EntityTotals, error) {
	taxRateIDs := make([]string, 0, len(entity.Items))
	for _, item := range entity.Items {
		taxRateIDs = append(taxRateIDs, item.TaxRateID)
	}
	taxRates, err := s.taxRateRepo.FindTaxRatesByIDs(ctx, uniqueStrings(taxRateIDs))
	if err != nil {
		return accounting.EntityTotals{}, fmt.Errorf("failed to fetch tax rates: %w", err)
	}
	totals, err := accounting.ComputeEntityTotals(entity.Items, taxRates)
	if err != nil {
		return accounting.EntityTotals{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return totals, nil
}

// buildPostingDraft shapes the approval transaction per entity kind:
//
//	invoice:        debit receivable (gross), credit item accounts (net), credit tax payable (tax)
//	credit note:    credit receivable (gross), debit item accounts (net), debit tax payable (tax)
//	purchase order: credit accounts payable (gross), debit item accounts (net), debit tax payable (tax)
func (s *financialEntityService) buildPostingDraft(entity *domain.FinancialEntity, org *domain.AccountingOrganization, totals accounting.EntityTotals) (*domain.TransactionDraft, error) {
	draft := domain.NewTransactionDraft(entity.AccountingOrganizationID).
		WithNotes(fmt.Sprintf("%s %s approval", entity.Kind, entity.EntityID))

	var controlAccountID string
	var controlIsDebit bool
	switch entity.Kind {
	case domain.KindInvoice:
		controlAccountID, controlIsDebit = org.GLAccountReceivableID, true
	case domain.KindCreditNote:
		controlAccountID, controlIsDebit = org.GLAccountReceivableID, false
	case domain.KindPurchaseOrder:
		controlAccountID, controlIsDebit = org.GLAccountAccountsPayableID, false
	default:
		return nil, fmt.Errorf("unknown entity kind %q", entity.Kind)
	}
	if controlAccountID == "" {
		return nil, fmt.Errorf("%w: organization %s has no designated control account for %s",
			apperrors.ErrNotAllowed, org.AccountingOrganizationID, entity.Kind)
	}

	draft.AddRecord(controlAccountID, totals.GrossTotal, controlIsDebit)
	for _, accountID := range sortedKeys(totals.NetByAccount) {
		net := totals.NetByAccount[accountID]
		if net.IsZero() {
			continue
		}
		draft.AddRecord(accountID, net, !controlIsDebit)
	}
	if !totals.TaxTotal.IsZero() {
		if org.GLAccountTaxPayableID == "" {
			return nil, fmt.Errorf("%w: organization %s has no designated tax payable account",
				apperrors.ErrNotAllowed, org.AccountingOrganizationID)
		}
		draft.AddRecord(org.GLAccountTaxPayableID, totals.TaxTotal, !controlIsDebit)
	}
	return draft, nil
}

// sortedKeys gives a deterministic posting order for grouped accounts.
func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func buildItems(entityID string, reqs []dto.CreateItemRequest) []domain.Item {
	items := make([]domain.Item, len(reqs))
	for i, req := range reqs {
		items[i] = domain.Item{
			ItemID:      uuid.NewString(),
			EntityID:    entityID,
			GLAccountID: req.GLAccountID,
			TaxRateID:   req.TaxRateID,
			Description: req.Description,
			UnitCost:    req.UnitCost,
			Quantity:    req.Quantity,
			Discount:    req.Discount,
		}
	}
	return items
}
