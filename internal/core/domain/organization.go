package domain

// AccountingOrganization is the tenant of the ledger. Exactly one organization
// is active per location at a time; attaching a new one deactivates the
// previous. LockDayOfMonth is the financial-period cutoff: financial entities
// may only be dated after the most recent lock day.
type AccountingOrganization struct {
	AccountingOrganizationID string `json:"accountingOrganizationID"` // Primary Key (UUID)
	Name                     string `json:"name"`
	LockDayOfMonth           int    `json:"lockDayOfMonth"` // 1..31, clamped to month length
	IsActive                 bool   `json:"isActive"`

	// Designated GL accounts used by posting and payments.
	GLAccountReceivableID        string `json:"glAccountReceivableID"`
	GLAccountTaxPayableID        string `json:"glAccountTaxPayableID"`
	GLAccountAccountsPayableID   string `json:"glAccountAccountsPayableID"`
	GLAccountPaymentDetailsID    string `json:"glAccountPaymentDetailsID"`
	GLAccountFranchisePaymentsID string `json:"glAccountFranchisePaymentsID"`

	AuditFields
}
