package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/OTISDav/vehiculesplatform/internal/features/tariffs/domain"

	"gorm.io/gorm"
)

// GormZoneRepository implements ports.ZoneRepository on PostgreSQL.
type GormZoneRepository struct {
	db *gorm.DB
}

// NewGormZoneRepository creates a new GormZoneRepository.
func NewGormZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

// ListActive returns active zones ordered by ID ascending.
func (r *GormZoneRepository) ListActive(ctx context.Context) ([]domain.Zone, error) {
	var zones []domain.Zone
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&zones).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active zones: %w", err)
	}
	return zones, nil
}

// FindByID returns the zone with the given ID, or nil when absent.
func (r *GormZoneRepository) FindByID(ctx context.Context, id uint) (*domain.Zone, error) {
	var zone domain.Zone
	err := r.db.WithContext(ctx).First(&zone, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find zone %d: %w", id, err)
	}
	return &zone, nil
}

// GormTransporterRepository implements ports.TransporterRepository on PostgreSQL.
type GormTransporterRepository struct {
	db *gorm.DB
}

// NewGormTransporterRepository creates a new GormTransporterRepository.
func NewGormTransporterRepository(db *gorm.DB) *GormTransporterRepository {
	return &GormTransporterRepository{db: db}
}

// FindByID returns the transporter with the given ID, or nil when absent.
func (r *GormTransporterRepository) FindByID(ctx context.Context, id uint) (*domain.Transporter, error) {
	var transporter domain.Transporter
	err := r.db.WithContext(ctx).Preload("Zones").First(&transporter, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transporter %d: %w", id, err)
	}
	return &transporter, nil
}
