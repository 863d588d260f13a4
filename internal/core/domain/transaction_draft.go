package domain

import "github.com/shopspring/decimal"

// TransactionDraft is an uncommitted, in-memory transaction being assembled by
// a calling service. It is a pure value object: AddRecord only mutates the
// record list, no I/O happens until the draft is committed.
type TransactionDraft struct {
	AccountingOrganizationID string
	Notes                    string
	Records                  []TransactionRecord
}

// NewTransactionDraft starts a draft transaction for the given organization.
func NewTransactionDraft(accountingOrganizationID string) *TransactionDraft {
	return &TransactionDraft{AccountingOrganizationID: accountingOrganizationID}
}

// WithNotes sets a free-text note carried onto the committed transaction.
func (d *TransactionDraft) WithNotes(notes string) *TransactionDraft {
	d.Notes = notes
	return d
}

// AddRecord appends a debit or credit line against a GL account. Amounts are
// rounded to 2 decimal places at this boundary so the balance check is exact.
func (d *TransactionDraft) AddRecord(glAccountID string, amount decimal.Decimal, isDebit bool) *TransactionDraft {
	d.Records = append(d.Records, TransactionRecord{
		GLAccountID: glAccountID,
		Amount:      amount.Round(2),
		IsDebit:     isDebit,
	})
	return d
}
