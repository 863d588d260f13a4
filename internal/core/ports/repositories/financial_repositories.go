package repositories

import (
	"context"
	"time"

	"github.com/steadybooks/backoffice/internal/core/domain"
)

// FinancialEntityReader defines read operations for invoices, purchase orders
// and credit notes. The kind selects the backing table.
type FinancialEntityReader interface {
	// FindEntityByID retrieves an entity with its items. Soft-deleted
	// entities are reported as ErrNotFound.
	FindEntityByID(ctx context.Context, kind domain.EntityKind, entityID string) (*domain.FinancialEntity, error)

	// FindApproveRequests returns all approve requests for the entity,
	// oldest first.
	FindApproveRequests(ctx context.Context, kind domain.EntityKind, entityID string) ([]domain.ApproveRequest, error)
}

// FinancialEntityWriter defines write operations for financial entities.
type FinancialEntityWriter interface {
	// SaveEntity persists the entity and its items atomically.
	SaveEntity(ctx context.Context, entity domain.FinancialEntity) error

	// UpdateEntity updates the entity header and replaces its items
	// atomically.
	UpdateEntity(ctx context.Context, entity domain.FinancialEntity) error

	// UpdateEntityStatus transitions the entity's status, optionally linking
	// the ledger transaction created on approval.
	UpdateEntityStatus(ctx context.Context, kind domain.EntityKind, entityID string, status domain.EntityStatus, transactionID *string, userID string, at time.Time) error

	// MarkEntityDeleted soft-deletes the entity.
	MarkEntityDeleted(ctx context.Context, kind domain.EntityKind, entityID string, userID string, at time.Time) error

	// SaveApproveRequests persists a batch of approve requests atomically.
	SaveApproveRequests(ctx context.Context, requests []domain.ApproveRequest) error

	// MarkApproveRequestApproved stamps the approver's outstanding request.
	MarkApproveRequestApproved(ctx context.Context, kind domain.EntityKind, entityID, approverID string, at time.Time) error
}

// FinancialEntityRepositoryFacade combines the financial entity interfaces.
type FinancialEntityRepositoryFacade interface {
	FinancialEntityReader
	FinancialEntityWriter
}
