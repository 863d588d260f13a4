package repositories

import (
	"context"
	"time"

	"github.com/steadybooks/backoffice/internal/core/domain"
)

// OrganizationReader defines read operations for accounting organizations.
type OrganizationReader interface {
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.AccountingOrganization, error)

	// FindActiveOrganizationByLocation resolves the single active organization
	// for a location, or ErrNotFound when none is attached.
	FindActiveOrganizationByLocation(ctx context.Context, locationID string) (*domain.AccountingOrganization, error)
}

// OrganizationWriter defines write operations for accounting organizations.
type OrganizationWriter interface {
	SaveOrganization(ctx context.Context, org domain.AccountingOrganization) error

	// AttachOrganizationToLocation links the organization to the location and
	// deactivates any previously active link, atomically.
	AttachOrganizationToLocation(ctx context.Context, organizationID, locationID, userID string, at time.Time) error
}

// OrganizationRepositoryFacade combines all organization repository interfaces.
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}
