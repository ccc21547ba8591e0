package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/OTISDav/vehiculesplatform/internal/features/payments/domain"

	"gorm.io/gorm"
)

// GormPaymentRepository implements ports.PaymentRepository on PostgreSQL.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository.
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create persists the payment; the BeforeCreate hook assigns the invoice
// number.
func (r *GormPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// FindByID returns the payment with the given ID, or nil when absent.
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uint) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.WithContext(ctx).First(&payment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find payment %d: %w", id, err)
	}
	return &payment, nil
}

// Update persists the payment's changed fields.
func (r *GormPaymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	if err := r.db.WithContext(ctx).Save(payment).Error; err != nil {
		return fmt.Errorf("failed to update payment %d: %w", payment.ID, err)
	}
	return nil
}
