package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "aerocost/api/internal/models/gorm"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FxRateRepo struct {
	db *gorm.DB
}

func NewFxRateRepo(db *gorm.DB) *FxRateRepo {
	return &FxRateRepo{db: db}
}

// GetCurrent returns the rate with the latest effective date, newest entry
// first on ties. nil, nil when no rate was ever entered.
func (r *FxRateRepo) GetCurrent(ctx context.Context) (*gormModels.FxRate, error) {
	var rate gormModels.FxRate

	err := r.db.WithContext(ctx).
		Order("effective_date DESC").
		Order("created_at DESC").
		First(&rate).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch current fx rate: %w", err)
	}

	return &rate, nil
}

func (r *FxRateRepo) List(ctx context.Context, limit int) ([]gormModels.FxRate, error) {
	var rates []gormModels.FxRate

	err := r.db.WithContext(ctx).
		Order("effective_date DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&rates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list fx rates: %w", err)
	}

	return rates, nil
}

func (r *FxRateRepo) Create(ctx context.Context, rate *gormModels.FxRate) error {
	if rate.ID == "" {
		rate.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(rate).Error; err != nil {
		return fmt.Errorf("failed to create fx rate: %w", err)
	}
	return nil
}

func (r *FxRateRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&gormModels.FxRate{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete fx rate: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
