package repositories

import (
	"context"

	"github.com/steadybooks/backoffice/internal/core/domain"
)

// UserReader defines read operations for users (resolved caller identities
// with their approval limits and location membership).
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// TaxRateReader exposes the immutable tax rate catalog.
type TaxRateReader interface {
	FindTaxRatesByIDs(ctx context.Context, taxRateIDs []string) (map[string]domain.TaxRate, error)
	ListTaxRates(ctx context.Context) ([]domain.TaxRate, error)
}
