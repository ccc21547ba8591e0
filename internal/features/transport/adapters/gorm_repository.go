package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/OTISDav/vehiculesplatform/internal/features/transport/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRequestRepository implements ports.RequestRepository on PostgreSQL.
//
// Associations (Vehicle, Zone, Transporter) are never written through this
// repository: they are owned by their own features, so every write omits them
// and only sets the foreign keys.
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository.
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// Create persists the request and its first ledger step in one transaction.
func (r *GormRequestRepository) Create(ctx context.Context, req *domain.Request, firstStep *domain.Step) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(req).Error; err != nil {
			return err
		}
		firstStep.RequestID = req.ID
		return tx.Create(firstStep).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create transport request: %w", err)
	}
	return nil
}

// FindByID returns the request with its related entities and the ledger
// ordered oldest first, or nil when absent.
func (r *GormRequestRepository) FindByID(ctx context.Context, id uint) (*domain.Request, error) {
	var req domain.Request
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("Zone").
		Preload("Transporter").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("reached_at ASC, id ASC")
		}).
		First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transport request %d: %w", id, err)
	}
	return &req, nil
}

// AppendStep saves the request's fields and appends the ledger step in one
// transaction.
func (r *GormRequestRepository) AppendStep(ctx context.Context, req *domain.Request, step *domain.Step) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(req).Error; err != nil {
			return err
		}
		step.RequestID = req.ID
		return tx.Create(step).Error
	})
	if err != nil {
		return fmt.Errorf("failed to append step to request %d: %w", req.ID, err)
	}
	return nil
}

// Update saves the request's fields without touching the ledger.
func (r *GormRequestRepository) Update(ctx context.Context, req *domain.Request) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(req).Error; err != nil {
		return fmt.Errorf("failed to update transport request %d: %w", req.ID, err)
	}
	return nil
}
