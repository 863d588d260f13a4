package repositories

// RepositoryProvider bundles every repository the service layer needs.
type RepositoryProvider struct {
	GLAccountRepo    GLAccountRepositoryFacade
	TransactionRepo  TransactionRepositoryFacade
	PaymentRepo      PaymentRepositoryFacade
	OrganizationRepo OrganizationRepositoryFacade
	FinancialRepo    FinancialEntityRepositoryFacade
	UserRepo         UserRepositoryFacade
	TaxRateRepo      TaxRateReader
}
