package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType distinguishes how a payment was made.
type PaymentType string

const (
	PaymentDirectDeposit PaymentType = "DIRECT_DEPOSIT"
	PaymentCreditNote    PaymentType = "CREDIT_NOTE"
	PaymentForwarded     PaymentType = "FORWARDED"
)

// Payment references the committed ledger transaction that backs it.
type Payment struct {
	PaymentID     string          `json:"paymentID"` // Primary Key (UUID)
	TransactionID string          `json:"transactionID"`
	Type          PaymentType     `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	PaidAt        time.Time       `json:"paidAt"`
	Reference     string          `json:"reference"`
	AuditFields
}

// ForwardedPayment records a transfer from a bank GL account to a destination
// account, typically remitting collected franchise payments.
type ForwardedPayment struct {
	ForwardedPaymentID     string          `json:"forwardedPaymentID"` // Primary Key (UUID)
	PaymentID              string          `json:"paymentID"`
	SourceGLAccountID      string          `json:"sourceGLAccountID"`
	DestinationGLAccountID string          `json:"destinationGLAccountID"`
	Amount                 decimal.Decimal `json:"amount"`
	Remittance             string          `json:"remittance"`
	TransferredAt          time.Time       `json:"transferredAt"`
}

// ForwardedPaymentInvoice links a forwarded payment to an invoice it remits.
type ForwardedPaymentInvoice struct {
	ForwardedPaymentID string `json:"forwardedPaymentID"`
	InvoiceID          string `json:"invoiceID"`
}
