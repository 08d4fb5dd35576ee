package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "aerocost/api/internal/models/gorm"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AircraftRepo handles aircraft table operations using GORM
type AircraftRepo struct {
	db *gorm.DB
}

func NewAircraftRepo(db *gorm.DB) *AircraftRepo {
	return &AircraftRepo{db: db}
}

// GetByID returns nil, nil when the aircraft does not exist
func (r *AircraftRepo) GetByID(ctx context.Context, id string) (*gormModels.Aircraft, error) {
	var aircraft gormModels.Aircraft

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&aircraft).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch aircraft: %w", err)
	}

	return &aircraft, nil
}

func (r *AircraftRepo) List(ctx context.Context) ([]gormModels.Aircraft, error) {
	var aircraft []gormModels.Aircraft

	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&aircraft).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list aircraft: %w", err)
	}

	return aircraft, nil
}

func (r *AircraftRepo) Create(ctx context.Context, aircraft *gormModels.Aircraft) error {
	if aircraft.ID == "" {
		aircraft.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(aircraft).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create aircraft: %w", err)
	}
	return nil
}

func (r *AircraftRepo) Update(ctx context.Context, aircraft *gormModels.Aircraft) error {
	if err := r.db.WithContext(ctx).Save(aircraft).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to update aircraft: %w", err)
	}
	return nil
}

// DeleteCascade removes the aircraft with its cost records, owned routes,
// flights and calculation logs in one transaction. Reports false when the
// aircraft did not exist.
func (r *AircraftRepo) DeleteCascade(ctx context.Context, id string) (bool, error) {
	deleted := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dependents := []interface{}{
			&gormModels.CalculationLog{},
			&gormModels.Flight{},
			&gormModels.FixedCost{},
			&gormModels.VariableCost{},
			&gormModels.Route{},
		}
		for _, model := range dependents {
			if err := tx.Where("aircraft_id = ?", id).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to delete %T rows: %w", model, err)
			}
		}

		res := tx.Where("id = ?", id).Delete(&gormModels.Aircraft{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete aircraft: %w", res.Error)
		}
		deleted = res.RowsAffected > 0
		return nil
	})

	return deleted, err
}
