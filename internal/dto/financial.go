package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest is one line of a financial entity being created or
// replaced. Discount is a percentage (0..100).
type CreateItemRequest struct {
	GLAccountID string          `json:"glAccountID"`
	TaxRateID   string          `json:"taxRateID"`
	Description string          `json:"description"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Quantity    int64           `json:"quantity"`
	Discount    decimal.Decimal `json:"discount"`
}

// CreateEntityRequest carries the data to create an invoice, purchase order
// or credit note. The accounting organization is resolved from the active one
// for the location at creation time, not supplied by the caller.
type CreateEntityRequest struct {
	LocationID    string              `json:"locationID"`
	Date          time.Time           `json:"date"`
	Reference     string              `json:"reference"`
	RecipientName string              `json:"recipientName"`
	Items         []CreateItemRequest `json:"items"`
}

// UpdateEntityRequest carries partial updates. Locked entities reject updates
// unless BypassLock is set by trusted internal callers.
type UpdateEntityRequest struct {
	Date          *time.Time           `json:"date,omitempty"`
	Reference     *string              `json:"reference,omitempty"`
	RecipientName *string              `json:"recipientName,omitempty"`
	Items         *[]CreateItemRequest `json:"items,omitempty"`
	BypassLock    bool                 `json:"-"`
}

// CreateApproveRequestsData names the candidate approvers for an entity.
type CreateApproveRequestsData struct {
	RequesterID string   `json:"requesterID"`
	ApproverIDs []string `json:"approverIDs"`
}
