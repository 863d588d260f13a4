package dto

// CreateOrganizationRequest carries the data to create an accounting
// organization with its designated GL accounts.
type CreateOrganizationRequest struct {
	Name                         string `json:"name"`
	LockDayOfMonth               int    `json:"lockDayOfMonth"`
	GLAccountReceivableID        string `json:"glAccountReceivableID"`
	GLAccountTaxPayableID        string `json:"glAccountTaxPayableID"`
	GLAccountAccountsPayableID   string `json:"glAccountAccountsPayableID"`
	GLAccountPaymentDetailsID    string `json:"glAccountPaymentDetailsID"`
	GLAccountFranchisePaymentsID string `json:"glAccountFranchisePaymentsID"`
}
