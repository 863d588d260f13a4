package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/steadybooks/backoffice/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository onto the shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		GLAccountRepo:    newPgxGLAccountRepository(pool),
		TransactionRepo:  newPgxTransactionRepository(pool),
		PaymentRepo:      newPgxPaymentRepository(pool),
		OrganizationRepo: newPgxOrganizationRepository(pool),
		FinancialRepo:    newPgxFinancialEntityRepository(pool),
		UserRepo:         newPgxUserRepository(pool),
		TaxRateRepo:      newPgxTaxRateRepository(pool),
	}
}
