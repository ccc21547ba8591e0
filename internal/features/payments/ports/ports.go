package ports

import (
	"context"

	"github.com/OTISDav/vehiculesplatform/internal/features/payments/domain"

	"github.com/shopspring/decimal"
)

// PaymentRepository defines the secondary port for payment storage.
type PaymentRepository interface {
	// Create persists a new payment; the invoice number is assigned on insert.
	Create(ctx context.Context, payment *domain.Payment) error
	// FindByID returns the payment, or nil when absent.
	FindByID(ctx context.Context, id uint) (*domain.Payment, error)
	// Update persists the payment's changed fields.
	Update(ctx context.Context, payment *domain.Payment) error
}

// TransportAccrual is the transport-side collaborator: confirming a
// transport_advance payment adds its amount to the request's advance.
// Implemented by the transport service.
type TransportAccrual interface {
	RecordAdvancePayment(ctx context.Context, requestID uint, amount decimal.Decimal) error
}
