package ports

import (
	"context"

	"github.com/OTISDav/vehiculesplatform/internal/features/catalog/domain"
)

// VehicleRepository defines the read-only secondary port the logistics core
// uses to look up catalog vehicles.
type VehicleRepository interface {
	// FindByID returns the vehicle with the given ID, or nil when absent.
	FindByID(ctx context.Context, id uint) (*domain.Vehicle, error)
}
