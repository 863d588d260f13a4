package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a committed, balanced set of debit/credit records against a
// single accounting organization. Transactions are immutable once committed;
// corrections are made by committing a reversing transaction, never by
// editing records in place.
type Transaction struct {
	TransactionID            string              `json:"transactionID"` // Primary Key (UUID)
	AccountingOrganizationID string              `json:"accountingOrganizationID"`
	Notes                    string              `json:"notes"`
	Records                  []TransactionRecord `json:"records,omitempty"`
	CreatedAt                time.Time           `json:"createdAt"`
	CreatedBy                string              `json:"createdBy"` // UserID reference
}

// TransactionRecord is a single debit or credit line against one GL account.
// Amount is always non-negative; direction is carried by IsDebit.
type TransactionRecord struct {
	TransactionRecordID string          `json:"transactionRecordID"` // Primary Key (UUID)
	TransactionID       string          `json:"transactionID"`
	GLAccountID         string          `json:"glAccountID"`
	Amount              decimal.Decimal `json:"amount"`
	IsDebit             bool            `json:"isDebit"`
	CreatedAt           time.Time       `json:"createdAt"`
}
