package repositories

import (
	"context"

	"github.com/steadybooks/backoffice/internal/core/domain"
)

// PaymentReader defines read operations for payments.
type PaymentReader interface {
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	FindForwardedPaymentByID(ctx context.Context, forwardedPaymentID string) (*domain.ForwardedPayment, error)
}

// PaymentWriter defines write operations for payments.
type PaymentWriter interface {
	// SavePayment persists a payment referencing its committed transaction.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// SaveForwardedPayment persists the payment, forwarded-payment metadata
	// and invoice linkage rows atomically.
	SaveForwardedPayment(ctx context.Context, payment domain.Payment, forwarded domain.ForwardedPayment, invoiceIDs []string) error
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
