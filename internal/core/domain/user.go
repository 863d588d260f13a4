package domain

import "github.com/shopspring/decimal"

// User is the resolved caller identity the ledger core receives from the
// authorization layer. Only the fields the approval checks need are carried.
type User struct {
	UserID                    string          `json:"userID"` // Primary Key (UUID)
	Name                      string          `json:"name"`
	LocationIDs               []string        `json:"locationIDs"`
	InvoiceApproveLimit       decimal.Decimal `json:"invoiceApproveLimit"`
	PurchaseOrderApproveLimit decimal.Decimal `json:"purchaseOrderApproveLimit"`
	CreditNoteApproveLimit    decimal.Decimal `json:"creditNoteApproveLimit"`
	AuditFields
}

// ApproveLimit returns the user's approval limit for the given entity kind.
func (u User) ApproveLimit(kind EntityKind) decimal.Decimal {
	switch kind {
	case KindInvoice:
		return u.InvoiceApproveLimit
	case KindPurchaseOrder:
		return u.PurchaseOrderApproveLimit
	case KindCreditNote:
		return u.CreditNoteApproveLimit
	}
	return decimal.Zero
}

// BelongsToLocation reports whether the user is attached to the location.
func (u User) BelongsToLocation(locationID string) bool {
	for _, id := range u.LocationIDs {
		if id == locationID {
			return true
		}
	}
	return false
}
