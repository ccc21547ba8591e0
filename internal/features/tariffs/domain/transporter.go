package domain

import "time"

// Transporter is a partner shipping company. It services a set of zones but
// does not own them; the association is purely informative for staff picking
// a carrier for a request.
type Transporter struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:150;not null;uniqueIndex" json:"name"`
	ContactName string    `gorm:"size:150" json:"contact_name,omitempty"`
	Phone       string    `gorm:"size:30" json:"phone,omitempty"`
	Email       string    `gorm:"size:150" json:"email,omitempty"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	Notes       string    `gorm:"type:text" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`

	Zones []Zone `gorm:"many2many:transporter_zones" json:"zones,omitempty"`
}

// TableName keeps the table name aligned with the rest of the platform schema.
func (Transporter) TableName() string { return "transporters" }
