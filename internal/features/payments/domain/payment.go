package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Method is the channel a payment came through.
type Method string

const (
	MethodStripe     Method = "stripe"
	MethodTMoney     Method = "tmoney"
	MethodFlooz      Method = "flooz"
	MethodCashOffice Method = "cash_office"
)

// Valid reports whether the method is one of the supported channels.
func (m Method) Valid() bool {
	switch m {
	case MethodStripe, MethodTMoney, MethodFlooz, MethodCashOffice:
		return true
	}
	return false
}

// Status is the settlement state of a payment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

// Type tells which business object a payment settles.
type Type string

const (
	TypeRental           Type = "rental"
	TypePartOrder        Type = "part_order"
	TypeTransportAdvance Type = "transport_advance"
)

// Valid reports whether the type is known.
func (t Type) Valid() bool {
	switch t {
	case TypeRental, TypePartOrder, TypeTransportAdvance:
		return true
	}
	return false
}

// Payment is a single settlement attempt. Amounts are whole FCFA.
//
// Exactly one of RentalID, OrderID and RequestID is set, picked from the
// client-provided reference by Type. A completed transport_advance payment is
// what feeds the transport request's advance accrual.
type Payment struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	InvoiceNumber string          `gorm:"size:20;not null;uniqueIndex" json:"invoice_number"`
	Type          Type            `gorm:"type:varchar(20);not null;index" json:"type"`
	Method        Method          `gorm:"type:varchar(15);not null" json:"method"`
	Status        Status          `gorm:"type:varchar(15);not null;default:'pending';index" json:"status"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency      string          `gorm:"size:3;not null;default:'XOF'" json:"currency"`

	RentalID  *uint `gorm:"index" json:"rental_id,omitempty"`
	OrderID   *uint `gorm:"index" json:"order_id,omitempty"`
	RequestID *uint `gorm:"index" json:"request_id,omitempty"`

	PayerName  string `gorm:"size:150" json:"payer_name,omitempty"`
	PayerPhone string `gorm:"size:30" json:"payer_phone,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the table name aligned with the rest of the platform schema.
func (Payment) TableName() string { return "payments" }

// BeforeCreate assigns the invoice number if the caller did not.
func (p *Payment) BeforeCreate(_ *gorm.DB) error {
	if p.InvoiceNumber == "" {
		p.InvoiceNumber = NewInvoiceNumber()
	}
	return nil
}

// NewInvoiceNumber generates an invoice reference like "FAC-1A2B3C4D".
func NewInvoiceNumber() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "FAC-" + strings.ToUpper(id[:8])
}

// SetReference binds the payment to its business object based on Type.
func (p *Payment) SetReference(referenceID uint) {
	switch p.Type {
	case TypeRental:
		p.RentalID = &referenceID
	case TypePartOrder:
		p.OrderID = &referenceID
	case TypeTransportAdvance:
		p.RequestID = &referenceID
	}
}

// ReferenceID returns the bound business object ID, or 0 when unbound.
func (p *Payment) ReferenceID() uint {
	switch {
	case p.RentalID != nil:
		return *p.RentalID
	case p.OrderID != nil:
		return *p.OrderID
	case p.RequestID != nil:
		return *p.RequestID
	}
	return 0
}
