package domain

import (
	"time"

	catalogdomain "github.com/OTISDav/vehiculesplatform/internal/features/catalog/domain"
	tariffdomain "github.com/OTISDav/vehiculesplatform/internal/features/tariffs/domain"

	"github.com/shopspring/decimal"
)

// Request is the aggregate root of the transport core: one client's demand to
// ship one international vehicle to the platform's home city.
//
// Cost fields: EstimatedCost and AdvanceRequired are computed once at creation
// when a zone was resolved and never recomputed afterward. FinalCost is an
// unconstrained staff write, independent of the estimate. AdvancePaid only
// grows, fed by confirmed payments.
//
// The Status field is a cached pointer to the most recent ledger entry; Steps
// is the authoritative history.
type Request struct {
	ID uint `gorm:"primaryKey" json:"id"`

	VehicleID uint                  `gorm:"index;not null" json:"vehicle_id"`
	Vehicle   catalogdomain.Vehicle `gorm:"constraint:OnDelete:RESTRICT" json:"-"`

	ClientName  string `gorm:"size:150;not null" json:"client_name"`
	ClientEmail string `gorm:"size:150;not null" json:"client_email"`
	ClientPhone string `gorm:"size:30" json:"client_phone,omitempty"`

	OriginCountry   string `gorm:"size:100;not null" json:"origin_country"`
	OriginCity      string `gorm:"size:100" json:"origin_city,omitempty"`
	DestinationCity string `gorm:"size:100;not null" json:"destination_city"`

	ZoneID          *uint             `gorm:"index" json:"zone_id,omitempty"`
	Zone            *tariffdomain.Zone `json:"-"`
	VehicleWeightKg *int              `json:"vehicle_weight_kg,omitempty"`

	EstimatedCost   *decimal.Decimal `gorm:"type:decimal(12,2)" json:"estimated_cost,omitempty"`
	FinalCost       *decimal.Decimal `gorm:"type:decimal(12,2)" json:"final_cost,omitempty"`
	AdvanceRequired *decimal.Decimal `gorm:"type:decimal(12,2)" json:"advance_required,omitempty"`
	AdvancePaid     decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"advance_paid"`

	TransporterID *uint                     `gorm:"index" json:"transporter_id,omitempty"`
	Transporter   *tariffdomain.Transporter `json:"-"`

	Status Status `gorm:"type:varchar(20);not null;default:'quote_requested';index" json:"status"`

	CustomsNote string `gorm:"size:255;not null" json:"customs_note"`
	ClientNote  string `gorm:"type:text" json:"client_note,omitempty"`
	AdminNote   string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Steps []Step `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE" json:"steps,omitempty"`
}

// TableName keeps the table name aligned with the rest of the platform schema.
func (Request) TableName() string { return "transport_requests" }

// Step is one immutable entry of a request's tracking ledger, appended exactly
// once per status transition (including the initial one at creation). Steps
// are never updated or deleted individually; they vanish only with their
// parent request.
type Step struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RequestID uint      `gorm:"index;not null" json:"-"`
	Status    Status    `gorm:"type:varchar(20);not null" json:"status"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Location  string    `gorm:"size:150" json:"location,omitempty"`
	ReachedAt time.Time `gorm:"not null;index" json:"reached_at"`
}

// TableName keeps the table name aligned with the rest of the platform schema.
func (Step) TableName() string { return "transport_steps" }
