package services

import (
	portsrepo "github.com/steadybooks/backoffice/internal/core/ports/repositories"
	portssvc "github.com/steadybooks/backoffice/internal/core/ports/services"
)

// NewServiceContainer wires every service with its dependencies. The
// transaction service comes first since payments, forwarded payments and the
// financial entity services all commit through it.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.GLAccountRepo)
	container.GLAccount = NewGLAccountService(repos.GLAccountRepo)
	container.Organizations = NewOrganizationService(repos.OrganizationRepo)

	container.Payments = NewPaymentsService(repos.GLAccountRepo, container.Transaction, repos.PaymentRepo)
	container.ForwardedPayments = NewForwardedPaymentsService(repos.GLAccountRepo, container.Transaction, repos.PaymentRepo)

	container.Invoices = NewInvoicesService(repos, container.Transaction)
	container.PurchaseOrders = NewPurchaseOrdersService(repos, container.Transaction)
	container.CreditNotes = NewCreditNotesService(repos, container.Transaction)

	return container
}
