package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntityKind discriminates the three financial entity flavours that share the
// approval and locking state machine.
type EntityKind string

const (
	KindInvoice       EntityKind = "INVOICE"
	KindPurchaseOrder EntityKind = "PURCHASE_ORDER"
	KindCreditNote    EntityKind = "CREDIT_NOTE"
)

// EntityStatus is the lifecycle state of a financial entity.
// DRAFT -> PENDING_APPROVAL -> APPROVED; DRAFT/PENDING may move to DELETED.
// APPROVED is terminal; corrections happen at the ledger level via reversal.
type EntityStatus string

const (
	StatusDraft           EntityStatus = "DRAFT"
	StatusPendingApproval EntityStatus = "PENDING_APPROVAL"
	StatusApproved        EntityStatus = "APPROVED"
	StatusDeleted         EntityStatus = "DELETED"
)

// TaxRate is immutable reference data. Rate is a fraction (0.10 for 10%).
type TaxRate struct {
	TaxRateID string          `json:"taxRateID"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
}

// Item is a single line of a financial entity. Discount is a percentage
// (0..100) applied to unit cost * quantity.
type Item struct {
	ItemID      string          `json:"itemID"` // Primary Key (UUID)
	EntityID    string          `json:"entityID"`
	GLAccountID string          `json:"glAccountID"`
	TaxRateID   string          `json:"taxRateID"`
	Description string          `json:"description"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Quantity    int64           `json:"quantity"`
	Discount    decimal.Decimal `json:"discount"`
}

// Subtotal is the net (ex-tax) amount of the line, rounded to 2dp.
func (i Item) Subtotal() decimal.Decimal {
	gross := i.UnitCost.Mul(decimal.NewFromInt(i.Quantity))
	if !i.Discount.IsZero() {
		factor := decimal.NewFromInt(1).Sub(i.Discount.Div(decimal.NewFromInt(100)))
		gross = gross.Mul(factor)
	}
	return gross.Round(2)
}

// Tax computes the tax on the line for the given rate fraction, rounded to 2dp.
func (i Item) Tax(rate decimal.Decimal) decimal.Decimal {
	return i.Subtotal().Mul(rate).Round(2)
}

// FinancialEntity is the shared shape of invoices, purchase orders and credit
// notes. The kind decides which table it lives in, which approval limit
// applies, and how approval posts to the ledger.
type FinancialEntity struct {
	EntityID                 string       `json:"entityID"` // Primary Key (UUID)
	Kind                     EntityKind   `json:"kind"`
	LocationID               string       `json:"locationID"`
	AccountingOrganizationID string       `json:"accountingOrganizationID"` // Resolved at creation time
	Date                     time.Time    `json:"date"`
	Status                   EntityStatus `json:"status"`
	Reference                string       `json:"reference"`
	RecipientName            string       `json:"recipientName"`
	TransactionID            *string      `json:"transactionID,omitempty"` // Set on approval
	Items                    []Item       `json:"items,omitempty"`
	AuditFields
}

// Locked reports whether the entity is immutable to ordinary edits: once it is
// approved, deleted, or has any approve requests outstanding.
func (e FinancialEntity) Locked(hasApproveRequests bool) bool {
	return e.Status != StatusDraft || hasApproveRequests
}

// ApproveRequest is an outstanding (or satisfied) request for a user to
// approve a financial entity.
type ApproveRequest struct {
	ApproveRequestID string     `json:"approveRequestID"` // Primary Key (UUID)
	EntityID         string     `json:"entityID"`
	EntityKind       EntityKind `json:"entityKind"`
	RequesterID      string     `json:"requesterID"`
	ApproverID       string     `json:"approverID"`
	ApprovedAt       *time.Time `json:"approvedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}
