package ports

import (
	"context"

	"github.com/OTISDav/vehiculesplatform/internal/features/tariffs/domain"
)

// ZoneRepository defines the secondary port for tariff zone storage.
// Zones are administrator-managed elsewhere; this core only reads them.
type ZoneRepository interface {
	// ListActive returns all active zones ordered by ID ascending. The order
	// is part of the contract: zone resolution is first-match and must be
	// reproducible.
	ListActive(ctx context.Context) ([]domain.Zone, error)
	// FindByID returns the zone with the given ID, or nil when absent.
	FindByID(ctx context.Context, id uint) (*domain.Zone, error)
}

// TransporterRepository defines the secondary port for transporter lookups.
type TransporterRepository interface {
	// FindByID returns the transporter with the given ID, or nil when absent.
	FindByID(ctx context.Context, id uint) (*domain.Transporter, error)
}
