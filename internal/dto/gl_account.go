package dto

import (
	"time"

	"github.com/steadybooks/backoffice/internal/core/domain"
)

// CreateGLAccountRequest carries the data to create a chart-of-accounts node.
type CreateGLAccountRequest struct {
	AccountingOrganizationID string `json:"accountingOrganizationID"`
	AccountTypeID            string `json:"accountTypeID"`
	Code                     string `json:"code"`
	Name                     string `json:"name"`
	IsBankAccount            bool   `json:"isBankAccount"`
	EnablePaymentsToAccount  bool   `json:"enablePaymentsToAccount"`
}

// RecordFilter optionally bounds balance and history queries by the owning
// transaction's creation time.
type RecordFilter struct {
	DateFrom *time.Time `json:"dateFrom,omitempty"`
	DateTo   *time.Time `json:"dateTo,omitempty"`
}

// ListRecordsParams holds parameters for listing transaction records of an
// account, with optional cursor-token pagination.
type ListRecordsParams struct {
	Filter    RecordFilter `json:"filter"`
	Limit     int          `json:"limit"`
	NextToken *string      `json:"nextToken,omitempty"`
}

// ListRecordsResponse is a page of transaction records.
type ListRecordsResponse struct {
	Records   []domain.TransactionRecord `json:"records"`
	NextToken *string                    `json:"nextToken,omitempty"`
}
