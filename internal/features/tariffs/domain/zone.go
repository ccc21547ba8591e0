package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Zone is a geographic pricing zone for international vehicle transport.
// Countries holds one country name per line; membership is tested
// case-insensitively on trimmed values.
type Zone struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Countries    string          `gorm:"type:text;not null" json:"countries"`
	BasePrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"base_price"`
	PricePerKg   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price_per_kg"`
	DelayDaysMin int             `gorm:"not null" json:"delay_days_min"`
	DelayDaysMax int             `gorm:"not null" json:"delay_days_max"`
	IsActive     bool            `gorm:"default:true;index" json:"is_active"`
	Notes        string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"-"`
}

// TableName keeps the table name aligned with the rest of the platform schema.
func (Zone) TableName() string { return "transport_zones" }

// CountryList returns the zone's countries as a cleaned slice.
func (z *Zone) CountryList() []string {
	lines := strings.Split(z.Countries, "\n")
	countries := make([]string, 0, len(lines))
	for _, line := range lines {
		if c := strings.TrimSpace(line); c != "" {
			countries = append(countries, c)
		}
	}
	return countries
}

// MatchesCountry reports whether the given free-text country belongs to this
// zone. Matching is case-insensitive and exact (no fuzzy matching).
func (z *Zone) MatchesCountry(country string) bool {
	country = strings.TrimSpace(country)
	if country == "" {
		return false
	}
	for _, c := range z.CountryList() {
		if strings.EqualFold(c, country) {
			return true
		}
	}
	return false
}

// DelayDisplay renders the delivery window, e.g. "25–35 jours".
func (z *Zone) DelayDisplay() string {
	return fmt.Sprintf("%d–%d jours", z.DelayDaysMin, z.DelayDaysMax)
}
