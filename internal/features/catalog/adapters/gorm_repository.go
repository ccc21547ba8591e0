package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/OTISDav/vehiculesplatform/internal/features/catalog/domain"

	"gorm.io/gorm"
)

// GormVehicleRepository implements ports.VehicleRepository on PostgreSQL.
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository.
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByID returns the vehicle with the given ID, or nil when absent.
func (r *GormVehicleRepository) FindByID(ctx context.Context, id uint) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := r.db.WithContext(ctx).First(&vehicle, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicle %d: %w", id, err)
	}
	return &vehicle, nil
}
