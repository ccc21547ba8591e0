package service

import (
	"context"
	"testing"

	"github.com/OTISDav/vehiculesplatform/internal/features/payments/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPaymentRepository struct {
	payments map[uint]*domain.Payment
	nextID   uint
}

func newMockPaymentRepository() *mockPaymentRepository {
	return &mockPaymentRepository{payments: make(map[uint]*domain.Payment), nextID: 1}
}

func (m *mockPaymentRepository) Create(_ context.Context, payment *domain.Payment) error {
	payment.ID = m.nextID
	m.nextID++
	if payment.InvoiceNumber == "" {
		payment.InvoiceNumber = domain.NewInvoiceNumber()
	}
	cp := *payment
	m.payments[payment.ID] = &cp
	return nil
}

func (m *mockPaymentRepository) FindByID(_ context.Context, id uint) (*domain.Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockPaymentRepository) Update(_ context.Context, payment *domain.Payment) error {
	cp := *payment
	m.payments[payment.ID] = &cp
	return nil
}

type mockAccrual struct {
	calls     int
	requestID uint
	amount    decimal.Decimal
	err       error
}

func (m *mockAccrual) RecordAdvancePayment(_ context.Context, requestID uint, amount decimal.Decimal) error {
	m.calls++
	m.requestID = requestID
	m.amount = amount
	return m.err
}

func advanceInput() CreateInput {
	return CreateInput{
		Type:        domain.TypeTransportAdvance,
		Method:      domain.MethodTMoney,
		ReferenceID: 12,
		Amount:      decimal.NewFromInt(1_020_000),
		PayerName:   "Kossi Mensah",
	}
}

// TestPaymentService_CreatePending verifies invoice assignment and reference
// binding by type.
func TestPaymentService_CreatePending(t *testing.T) {
	repo := newMockPaymentRepository()
	svc := NewPaymentService(repo, &mockAccrual{})

	payment, err := svc.CreatePending(context.Background(), advanceInput())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, payment.Status)
	assert.Equal(t, "XOF", payment.Currency)
	assert.Regexp(t, `^FAC-[0-9A-F]{8}$`, payment.InvoiceNumber)
	require.NotNil(t, payment.RequestID)
	assert.Equal(t, uint(12), *payment.RequestID)
	assert.Nil(t, payment.RentalID)
	assert.Nil(t, payment.OrderID)
}

// TestPaymentService_CreatePending_Validation verifies input rejection.
func TestPaymentService_CreatePending_Validation(t *testing.T) {
	svc := NewPaymentService(newMockPaymentRepository(), &mockAccrual{})
	ctx := context.Background()

	in := advanceInput()
	in.Type = "donation"
	_, err := svc.CreatePending(ctx, in)
	assert.ErrorIs(t, err, ErrUnknownType)

	in = advanceInput()
	in.Method = "check"
	_, err = svc.CreatePending(ctx, in)
	assert.ErrorIs(t, err, ErrUnknownMethod)

	in = advanceInput()
	in.ReferenceID = 0
	_, err = svc.CreatePending(ctx, in)
	assert.ErrorIs(t, err, ErrMissingReference)

	in = advanceInput()
	in.Amount = decimal.Zero
	_, err = svc.CreatePending(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

// TestPaymentService_Confirm_AccruesAdvance verifies that confirming a
// transport advance forwards the amount to the transport side.
func TestPaymentService_Confirm_AccruesAdvance(t *testing.T) {
	repo := newMockPaymentRepository()
	accrual := &mockAccrual{}
	svc := NewPaymentService(repo, accrual)
	ctx := context.Background()

	payment, err := svc.CreatePending(ctx, advanceInput())
	require.NoError(t, err)

	confirmed, err := svc.Confirm(ctx, payment.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, confirmed.Status)
	assert.Equal(t, 1, accrual.calls)
	assert.Equal(t, uint(12), accrual.requestID)
	assert.True(t, accrual.amount.Equal(decimal.NewFromInt(1_020_000)))
}

// TestPaymentService_Confirm_RentalSkipsAccrual verifies that only transport
// advances touch the transport side.
func TestPaymentService_Confirm_RentalSkipsAccrual(t *testing.T) {
	repo := newMockPaymentRepository()
	accrual := &mockAccrual{}
	svc := NewPaymentService(repo, accrual)
	ctx := context.Background()

	in := advanceInput()
	in.Type = domain.TypeRental
	payment, err := svc.CreatePending(ctx, in)
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, accrual.calls)
}

// TestPaymentService_Confirm_NotPending verifies double confirmation is
// rejected, so an advance can never accrue twice.
func TestPaymentService_Confirm_NotPending(t *testing.T) {
	repo := newMockPaymentRepository()
	accrual := &mockAccrual{}
	svc := NewPaymentService(repo, accrual)
	ctx := context.Background()

	payment, err := svc.CreatePending(ctx, advanceInput())
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, payment.ID)
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, payment.ID)
	assert.ErrorIs(t, err, ErrPaymentNotPending)
	assert.Equal(t, 1, accrual.calls)
}

// TestPaymentService_Confirm_AccrualFailureKeepsPending verifies that a
// rejected accrual leaves the payment pending for a retry.
func TestPaymentService_Confirm_AccrualFailureKeepsPending(t *testing.T) {
	repo := newMockPaymentRepository()
	accrual := &mockAccrual{err: assert.AnError}
	svc := NewPaymentService(repo, accrual)
	ctx := context.Background()

	payment, err := svc.CreatePending(ctx, advanceInput())
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, payment.ID)
	require.Error(t, err)

	stored, err := svc.GetByID(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

// TestPaymentService_Fail verifies the failure path never accrues.
func TestPaymentService_Fail(t *testing.T) {
	repo := newMockPaymentRepository()
	accrual := &mockAccrual{}
	svc := NewPaymentService(repo, accrual)
	ctx := context.Background()

	payment, err := svc.CreatePending(ctx, advanceInput())
	require.NoError(t, err)

	failed, err := svc.Fail(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, failed.Status)
	assert.Equal(t, 0, accrual.calls)

	_, err = svc.Confirm(ctx, payment.ID)
	assert.ErrorIs(t, err, ErrPaymentNotPending)
}

// TestPaymentService_GetByID_Unknown verifies the not-found path.
func TestPaymentService_GetByID_Unknown(t *testing.T) {
	svc := NewPaymentService(newMockPaymentRepository(), &mockAccrual{})

	_, err := svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
