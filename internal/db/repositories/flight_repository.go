package repositories

import (
	"context"
	"errors"
	"fmt"

	"aerocost/api/internal/constants"
	gormModels "aerocost/api/internal/models/gorm"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FlightFilter narrows flight listings. Zero values mean "no filter";
// Limit <= 0 returns every matching row.
type FlightFilter struct {
	AircraftID      string
	FlightType      constants.FlightType
	MissingCostOnly bool
	Limit           int
}

type FlightRepo struct {
	db *gorm.DB
}

func NewFlightRepo(db *gorm.DB) *FlightRepo {
	return &FlightRepo{db: db}
}

// GetByID returns the flight with its route preloaded, nil, nil when absent
func (r *FlightRepo) GetByID(ctx context.Context, id string) (*gormModels.Flight, error) {
	var flight gormModels.Flight

	err := r.db.WithContext(ctx).
		Preload("Route").
		Where("id = ?", id).
		First(&flight).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch flight: %w", err)
	}

	return &flight, nil
}

// List returns flights newest scheduled first
func (r *FlightRepo) List(ctx context.Context, filter FlightFilter) ([]gormModels.Flight, error) {
	var flights []gormModels.Flight

	query := r.db.WithContext(ctx).
		Preload("Route").
		Order("scheduled_date DESC").
		Order("created_at DESC")

	if filter.AircraftID != "" {
		query = query.Where("aircraft_id = ?", filter.AircraftID)
	}
	if filter.FlightType != "" {
		query = query.Where("flight_type = ?", filter.FlightType)
	}
	if filter.MissingCostOnly {
		query = query.Where("cost_calculated IS NULL OR cost_calculated = 0")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&flights).Error; err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}
	return flights, nil
}

func (r *FlightRepo) Create(ctx context.Context, flight *gormModels.Flight) error {
	if flight.ID == "" {
		flight.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(flight).Error; err != nil {
		return fmt.Errorf("failed to create flight: %w", err)
	}
	return nil
}

func (r *FlightRepo) Update(ctx context.Context, flight *gormModels.Flight) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(flight).Error; err != nil {
		return fmt.Errorf("failed to update flight: %w", err)
	}
	return nil
}

// UpdateCost writes only the cached cost column.
func (r *FlightRepo) UpdateCost(ctx context.Context, id string, cost float64) error {
	err := r.db.WithContext(ctx).
		Model(&gormModels.Flight{}).
		Where("id = ?", id).
		Update("cost_calculated", cost).Error
	if err != nil {
		return fmt.Errorf("failed to update flight cost: %w", err)
	}
	return nil
}

func (r *FlightRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&gormModels.Flight{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete flight: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
