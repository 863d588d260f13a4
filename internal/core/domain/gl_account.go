package domain

// AccountType is immutable reference data describing the debit/credit polarity
// of a class of GL accounts. IncreaseActionIsDebit is true for asset-like
// accounts (a debit increases the balance) and false for liability-like ones.
type AccountType struct {
	AccountTypeID         string `json:"accountTypeID"`
	Name                  string `json:"name"`
	IncreaseActionIsDebit bool   `json:"increaseActionIsDebit"`
}

// GLAccount is a node in the chart of accounts. Accounts are created
// administratively and are never deleted while transaction records reference
// them.
type GLAccount struct {
	GLAccountID              string      `json:"glAccountID"` // Primary Key (UUID)
	AccountingOrganizationID string      `json:"accountingOrganizationID"`
	AccountType              AccountType `json:"accountType"`
	Code                     string      `json:"code"` // Unique lookup code
	Name                     string      `json:"name"`
	IsBankAccount            bool        `json:"isBankAccount"`
	EnablePaymentsToAccount  bool        `json:"enablePaymentsToAccount"`
	AuditFields
}
