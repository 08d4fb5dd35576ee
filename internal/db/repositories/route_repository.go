package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "aerocost/api/internal/models/gorm"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RouteRepo struct {
	db *gorm.DB
}

func NewRouteRepo(db *gorm.DB) *RouteRepo {
	return &RouteRepo{db: db}
}

func (r *RouteRepo) GetByID(ctx context.Context, id string) (*gormModels.Route, error) {
	var route gormModels.Route

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&route).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch route: %w", err)
	}

	return &route, nil
}

// List returns every route, or only the routes owned by aircraftID when it
// is not empty.
func (r *RouteRepo) List(ctx context.Context, aircraftID string) ([]gormModels.Route, error) {
	var routes []gormModels.Route

	query := r.db.WithContext(ctx).Order("origin ASC, destination ASC")
	if aircraftID != "" {
		query = query.Where("aircraft_id = ?", aircraftID)
	}

	if err := query.Find(&routes).Error; err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	return routes, nil
}

func (r *RouteRepo) Create(ctx context.Context, route *gormModels.Route) error {
	if route.ID == "" {
		route.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(route).Error; err != nil {
		return fmt.Errorf("failed to create route: %w", err)
	}
	return nil
}

func (r *RouteRepo) Update(ctx context.Context, route *gormModels.Route) error {
	if err := r.db.WithContext(ctx).Save(route).Error; err != nil {
		return fmt.Errorf("failed to update route: %w", err)
	}
	return nil
}

// Delete removes the route and detaches it from flights that referenced it.
func (r *RouteRepo) Delete(ctx context.Context, id string) (bool, error) {
	deleted := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&gormModels.Flight{}).
			Where("route_id = ?", id).
			Update("route_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach flights from route: %w", err)
		}

		res := tx.Where("id = ?", id).Delete(&gormModels.Route{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete route: %w", res.Error)
		}
		deleted = res.RowsAffected > 0
		return nil
	})

	return deleted, err
}
