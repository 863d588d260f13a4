package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/steadybooks/backoffice/internal/core/domain"
)

func TestItem_Subtotal(t *testing.T) {
	tests := []struct {
		name     string
		unitCost string
		quantity int64
		discount string
		want     string
	}{
		{"no discount", "100", 2, "0", "200"},
		{"half off", "100", 2, "50", "100"},
		{"rounds to cents", "10.333", 3, "0", "31"},
		{"discount rounds to cents", "9.99", 1, "15", "8.49"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := domain.Item{
				UnitCost: decimal.RequireFromString(tt.unitCost),
				Quantity: tt.quantity,
				Discount: decimal.RequireFromString(tt.discount),
			}
			want := decimal.RequireFromString(tt.want)
			got := item.Subtotal()
			assert.True(t, want.Equal(got), "want %s got %s", want, got)
		})
	}
}

func TestItem_Tax(t *testing.T) {
	item := domain.Item{UnitCost: decimal.NewFromInt(100), Quantity: 1}
	tax := item.Tax(decimal.NewFromFloat(0.10))
	assert.True(t, decimal.NewFromInt(10).Equal(tax), "want 10 got %s", tax)
}

func TestFinancialEntity_Locked(t *testing.T) {
	tests := []struct {
		name               string
		status             domain.EntityStatus
		hasApproveRequests bool
		want               bool
	}{
		{"draft without requests", domain.StatusDraft, false, false},
		{"draft with requests", domain.StatusDraft, true, true},
		{"pending approval", domain.StatusPendingApproval, false, true},
		{"approved", domain.StatusApproved, false, true},
		{"deleted", domain.StatusDeleted, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entity := domain.FinancialEntity{Status: tt.status}
			assert.Equal(t, tt.want, entity.Locked(tt.hasApproveRequests))
		})
	}
}

func TestUser_ApproveLimit(t *testing.T) {
	user := domain.User{
		InvoiceApproveLimit:       decimal.NewFromInt(500),
		PurchaseOrderApproveLimit: decimal.NewFromInt(1000),
		CreditNoteApproveLimit:    decimal.NewFromInt(250),
	}

	assert.True(t, decimal.NewFromInt(500).Equal(user.ApproveLimit(domain.KindInvoice)))
	assert.True(t, decimal.NewFromInt(1000).Equal(user.ApproveLimit(domain.KindPurchaseOrder)))
	assert.True(t, decimal.NewFromInt(250).Equal(user.ApproveLimit(domain.KindCreditNote)))
	assert.True(t, user.ApproveLimit(domain.EntityKind("OTHER")).IsZero())
}

func TestUser_BelongsToLocation(t *testing.T) {
	user := domain.User{LocationIDs: []string{"loc-1", "loc-2"}}

	assert.True(t, user.BelongsToLocation("loc-1"))
	assert.False(t, user.BelongsToLocation("loc-3"))
}
