package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/OTISDav/vehiculesplatform/internal/core/logger"
	"github.com/OTISDav/vehiculesplatform/internal/features/payments/domain"
	"github.com/OTISDav/vehiculesplatform/internal/features/payments/ports"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	// ErrPaymentNotFound is returned when the payment identifier is unknown.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrPaymentNotPending is returned when confirming or failing a payment
	// that already settled.
	ErrPaymentNotPending = errors.New("payment is not pending")
	// ErrInvalidAmount is returned for non-positive amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrUnknownType is returned for an unrecognized payment type.
	ErrUnknownType = errors.New("unknown payment type")
	// ErrUnknownMethod is returned for an unrecognized payment method.
	ErrUnknownMethod = errors.New("unknown payment method")
	// ErrMissingReference is returned when the business object reference is absent.
	ErrMissingReference = errors.New("reference_id is required")
)

// CreateInput carries a new pending payment.
type CreateInput struct {
	Type        domain.Type
	Method      domain.Method
	ReferenceID uint
	Amount      decimal.Decimal
	PayerName   string
	PayerPhone  string
}

// PaymentService records payments and settles them. Confirmation of a
// transport advance forwards the amount to the transport feature.
type PaymentService struct {
	payments ports.PaymentRepository
	accrual  ports.TransportAccrual
	log      *zap.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(payments ports.PaymentRepository, accrual ports.TransportAccrual) *PaymentService {
	return &PaymentService{
		payments: payments,
		accrual:  accrual,
		log:      logger.Named("payments.service"),
	}
}

// CreatePending records a new payment in the pending state.
func (s *PaymentService) CreatePending(ctx context.Context, in CreateInput) (*domain.Payment, error) {
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, in.Type)
	}
	if !in.Method.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, in.Method)
	}
	if in.ReferenceID == 0 {
		return nil, ErrMissingReference
	}
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	payment := &domain.Payment{
		Type:       in.Type,
		Method:     in.Method,
		Status:     domain.StatusPending,
		Amount:     in.Amount,
		Currency:   "XOF",
		PayerName:  strings.TrimSpace(in.PayerName),
		PayerPhone: strings.TrimSpace(in.PayerPhone),
	}
	payment.SetReference(in.ReferenceID)

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	s.log.Info("payment recorded",
		zap.Uint("payment_id", payment.ID),
		zap.String("invoice", payment.InvoiceNumber),
		zap.String("type", string(payment.Type)),
		zap.String("amount", payment.Amount.String()),
	)
	return payment, nil
}

// Confirm settles a pending payment. For a transport advance the amount is
// accrued on the transport request first; if the accrual is rejected the
// payment stays pending.
func (s *PaymentService) Confirm(ctx context.Context, paymentID uint) (*domain.Payment, error) {
	payment, err := s.load(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: %s", ErrPaymentNotPending, payment.Status)
	}

	if payment.Type == domain.TypeTransportAdvance && payment.RequestID != nil {
		if err := s.accrual.RecordAdvancePayment(ctx, *payment.RequestID, payment.Amount); err != nil {
			return nil, fmt.Errorf("advance accrual failed: %w", err)
		}
	}

	payment.Status = domain.StatusCompleted
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to confirm payment %d: %w", paymentID, err)
	}

	s.log.Info("payment confirmed",
		zap.Uint("payment_id", payment.ID),
		zap.String("invoice", payment.InvoiceNumber),
	)
	return payment, nil
}

// Fail marks a pending payment as failed. Nothing accrues.
func (s *PaymentService) Fail(ctx context.Context, paymentID uint) (*domain.Payment, error) {
	payment, err := s.load(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: %s", ErrPaymentNotPending, payment.Status)
	}

	payment.Status = domain.StatusFailed
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to fail payment %d: %w", paymentID, err)
	}
	return payment, nil
}

// GetByID returns one payment.
func (s *PaymentService) GetByID(ctx context.Context, paymentID uint) (*domain.Payment, error) {
	return s.load(ctx, paymentID)
}

func (s *PaymentService) load(ctx context.Context, paymentID uint) (*domain.Payment, error) {
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment %d: %w", paymentID, err)
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}
