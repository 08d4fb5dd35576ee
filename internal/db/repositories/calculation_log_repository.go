package repositories

import (
	"context"
	"fmt"

	gormModels "aerocost/api/internal/models/gorm"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CalculationLogRepo keeps calculation logs in the main database.
type CalculationLogRepo struct {
	db *gorm.DB
}

func NewCalculationLogRepo(db *gorm.DB) *CalculationLogRepo {
	return &CalculationLogRepo{db: db}
}

func (r *CalculationLogRepo) Record(ctx context.Context, entry *gormModels.CalculationLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record calculation: %w", err)
	}
	return nil
}

// ListRecent returns the newest entries for an aircraft first
func (r *CalculationLogRepo) ListRecent(ctx context.Context, aircraftID string, limit int) ([]gormModels.CalculationLog, error) {
	var entries []gormModels.CalculationLog

	err := r.db.WithContext(ctx).
		Where("aircraft_id = ?", aircraftID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list calculation logs: %w", err)
	}

	return entries, nil
}

func (r *CalculationLogRepo) DeleteByAircraft(ctx context.Context, aircraftID string) error {
	err := r.db.WithContext(ctx).Where("aircraft_id = ?", aircraftID).Delete(&gormModels.CalculationLog{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete calculation logs: %w", err)
	}
	return nil
}
