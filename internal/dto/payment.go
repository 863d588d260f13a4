package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentLine is one {account, amount} entry on either side of a payment.
type PaymentLine struct {
	GLAccountID string          `json:"glAccountID"`
	Amount      decimal.Decimal `json:"amount"`
}

// CreatePaymentData carries the data to create a payment backed by a single
// balanced ledger transaction. Multiple payable/receivable lines are
// supported; each produces one transaction record.
type CreatePaymentData struct {
	AccountingOrganizationID string        `json:"accountingOrganizationID"`
	PayableLines             []PaymentLine `json:"payableLines"`
	ReceivableLines          []PaymentLine `json:"receivableLines"`
	PaidAt                   time.Time     `json:"paidAt"`
	Reference                string        `json:"reference"`
}

// ForwardedPaymentData carries the data to transfer funds from a bank GL
// account to a destination account, optionally linking remitted invoices.
type ForwardedPaymentData struct {
	AccountingOrganizationID string          `json:"accountingOrganizationID"`
	SourceGLAccountID        string          `json:"sourceGLAccountID"`
	DestinationGLAccountID   string          `json:"destinationGLAccountID"`
	Amount                   decimal.Decimal `json:"amount"`
	Remittance               string          `json:"remittance"`
	TransferredAt            time.Time       `json:"transferredAt"`
	InvoiceIDs               []string        `json:"invoiceIDs,omitempty"`
}
