package domain

import "time"

// VehicleOrigin tells whether a listing sits in the local showroom or abroad.
type VehicleOrigin string

const (
	// OriginLocal marks a vehicle already in the country.
	OriginLocal VehicleOrigin = "local"
	// OriginInternational marks a vehicle abroad, eligible for transport requests.
	OriginInternational VehicleOrigin = "international"
)

// VehicleStatus represents the listing availability.
type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusReserved    VehicleStatus = "reserved"
	VehicleStatusSold        VehicleStatus = "sold"
	VehicleStatusUnavailable VehicleStatus = "unavailable"
)

// Vehicle is the catalog listing referenced by transport requests. Catalog
// management (CRUD, search, media) lives outside this service; the logistics
// core only reads the fields below and never mutates them.
type Vehicle struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Title     string        `gorm:"size:200;not null" json:"title"`
	Brand     string        `gorm:"size:100" json:"brand,omitempty"`
	Model     string        `gorm:"size:100" json:"model,omitempty"`
	Year      int           `json:"year,omitempty"`
	Origin    VehicleOrigin `gorm:"type:varchar(15);not null;default:'local';index" json:"origin"`
	Status    VehicleStatus `gorm:"type:varchar(15);not null;default:'available';index" json:"status"`
	City      string        `gorm:"size:100" json:"city,omitempty"`
	Country   string        `gorm:"size:100" json:"country,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"-"`
}

// TableName keeps the table name aligned with the rest of the platform schema.
func (Vehicle) TableName() string { return "vehicles" }

// Display renders the brand/model pair, falling back to the listing title.
func (v *Vehicle) Display() string {
	if v.Brand != "" && v.Model != "" {
		return v.Brand + " " + v.Model
	}
	return v.Title
}
