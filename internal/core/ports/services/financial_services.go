package services

import (
	"context"

	"github.com/steadybooks/backoffice/internal/core/domain"
	"github.com/steadybooks/backoffice/internal/dto"
)

// FinancialEntitySvcFacade is the shared contract of the invoice, purchase
// order and credit note services: CRUD guarded by the locked-period rules
// plus the approval workflow.
type FinancialEntitySvcFacade interface {
	// CreateEntity creates a DRAFT entity dated after the financial cutoff of
	// the location's active accounting organization.
	CreateEntity(ctx context.Context, req dto.CreateEntityRequest, userID string) (*domain.FinancialEntity, error)

	GetEntityByID(ctx context.Context, entityID string) (*domain.FinancialEntity, error)

	// UpdateEntity applies edits; locked entities are rejected unless the
	// request carries the bypass flag.
	UpdateEntity(ctx context.Context, entityID string, req dto.UpdateEntityRequest, userID string) (*domain.FinancialEntity, error)

	// DeleteEntity soft-deletes; approved entities or entities with approve
	// requests are rejected.
	DeleteEntity(ctx context.Context, entityID string, userID string) error

	// CreateApproveRequests registers candidate approvers after verifying
	// location membership and approval limits.
	CreateApproveRequests(ctx context.Context, entityID string, data dto.CreateApproveRequestsData) ([]domain.ApproveRequest, error)

	// Approve finalizes the entity and posts the GL transaction.
	Approve(ctx context.Context, entityID string, approverID string) (*domain.FinancialEntity, error)
}

// OrganizationSvcFacade manages accounting organizations and their location
// attachments.
type OrganizationSvcFacade interface {
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, userID string) (*domain.AccountingOrganization, error)
	GetOrganizationByID(ctx context.Context, organizationID string) (*domain.AccountingOrganization, error)

	// AttachToLocation makes the organization the single active one for the
	// location, deactivating any previous attachment.
	AttachToLocation(ctx context.Context, organizationID, locationID, userID string) error

	// GetActiveForLocation resolves the active organization for a location.
	GetActiveForLocation(ctx context.Context, locationID string) (*domain.AccountingOrganization, error)
}

// ServiceContainer bundles every service for wiring at the entrypoint.
type ServiceContainer struct {
	Transaction       TransactionSvcFacade
	GLAccount         GLAccountSvcFacade
	Payments          PaymentsSvcFacade
	ForwardedPayments ForwardedPaymentsSvcFacade
	Invoices          FinancialEntitySvcFacade
	PurchaseOrders    FinancialEntitySvcFacade
	CreditNotes       FinancialEntitySvcFacade
	Organizations     OrganizationSvcFacade
}
