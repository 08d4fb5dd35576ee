package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "aerocost/api/internal/models/gorm"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CostRepo stores the fixed and variable cost records, one of each per aircraft.
type CostRepo struct {
	db *gorm.DB
}

func NewCostRepo(db *gorm.DB) *CostRepo {
	return &CostRepo{db: db}
}

func (r *CostRepo) GetFixedCost(ctx context.Context, aircraftID string) (*gormModels.FixedCost, error) {
	var cost gormModels.FixedCost
	if err := r.findByAircraft(ctx, aircraftID, &cost); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch fixed cost: %w", err)
	}
	return &cost, nil
}

func (r *CostRepo) GetVariableCost(ctx context.Context, aircraftID string) (*gormModels.VariableCost, error) {
	var cost gormModels.VariableCost
	if err := r.findByAircraft(ctx, aircraftID, &cost); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch variable cost: %w", err)
	}
	return &cost, nil
}

// UpsertFixedCost inserts or replaces the aircraft's fixed cost record,
// keeping the original id and creation time.
func (r *CostRepo) UpsertFixedCost(ctx context.Context, cost *gormModels.FixedCost) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing gormModels.FixedCost
		err := tx.Where("aircraft_id = ?", cost.AircraftID).First(&existing).Error
		switch {
		case err == nil:
			cost.ID = existing.ID
			cost.CreatedAt = existing.CreatedAt
			if err := tx.Save(cost).Error; err != nil {
				return fmt.Errorf("failed to update fixed cost: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			cost.ID = uuid.NewString()
			if err := tx.Create(cost).Error; err != nil {
				return fmt.Errorf("failed to create fixed cost: %w", err)
			}
		default:
			return fmt.Errorf("failed to fetch fixed cost: %w", err)
		}
		return nil
	})
}

func (r *CostRepo) UpsertVariableCost(ctx context.Context, cost *gormModels.VariableCost) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing gormModels.VariableCost
		err := tx.Where("aircraft_id = ?", cost.AircraftID).First(&existing).Error
		switch {
		case err == nil:
			cost.ID = existing.ID
			cost.CreatedAt = existing.CreatedAt
			if err := tx.Save(cost).Error; err != nil {
				return fmt.Errorf("failed to update variable cost: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			cost.ID = uuid.NewString()
			if err := tx.Create(cost).Error; err != nil {
				return fmt.Errorf("failed to create variable cost: %w", err)
			}
		default:
			return fmt.Errorf("failed to fetch variable cost: %w", err)
		}
		return nil
	})
}

func (r *CostRepo) DeleteFixedCost(ctx context.Context, aircraftID string) (bool, error) {
	res := r.db.WithContext(ctx).Where("aircraft_id = ?", aircraftID).Delete(&gormModels.FixedCost{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete fixed cost: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *CostRepo) DeleteVariableCost(ctx context.Context, aircraftID string) (bool, error) {
	res := r.db.WithContext(ctx).Where("aircraft_id = ?", aircraftID).Delete(&gormModels.VariableCost{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete variable cost: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *CostRepo) findByAircraft(ctx context.Context, aircraftID string, dest interface{}) error {
	return r.db.WithContext(ctx).
		Where("aircraft_id = ?", aircraftID).
		First(dest).Error
}
