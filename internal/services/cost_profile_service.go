package services

import (
	"context"

	"aerocost/api/internal/constants"
	"aerocost/api/internal/models/dtos"
	gormModels "aerocost/api/internal/models/gorm"
)

// CostProfileService manages the fixed and variable cost records of an
// aircraft. Writes are upserts keyed by aircraft.
type CostProfileService struct {
	aircraft AircraftRepository
	costs    CostRepository
}

func NewCostProfileService(aircraft AircraftRepository, costs CostRepository) *CostProfileService {
	return &CostProfileService{aircraft: aircraft, costs: costs}
}

func (s *CostProfileService) GetFixedCost(ctx context.Context, aircraftID string) (*gormModels.FixedCost, error) {
	if err := s.requireAircraft(ctx, aircraftID); err != nil {
		return nil, err
	}
	cost, err := s.costs.GetFixedCost(ctx, aircraftID)
	if err != nil {
		return nil, NewInternalError("failed to load fixed cost", err)
	}
	if cost == nil {
		return nil, NewNotFoundError(constants.MsgFixedCostNotFound)
	}
	return cost, nil
}

func (s *CostProfileService) UpsertFixedCost(ctx context.Context, aircraftID string, req dtos.FixedCostRequest) (*gormModels.FixedCost, error) {
	if err := s.requireAircraft(ctx, aircraftID); err != nil {
		return nil, err
	}

	cost := &gormModels.FixedCost{
		AircraftID:      aircraftID,
		CrewMonthly:     req.CrewMonthly,
		HangarMonthly:   req.HangarMonthly,
		ECFixedUSD:      req.ECFixedUSD,
		Insurance:       req.Insurance,
		Administration:  req.Administration,
		PilotHourlyRate: req.PilotHourlyRate,
	}
	if err := s.costs.UpsertFixedCost(ctx, cost); err != nil {
		return nil, NewInternalError("failed to save fixed cost", err)
	}
	return cost, nil
}

func (s *CostProfileService) DeleteFixedCost(ctx context.Context, aircraftID string) error {
	deleted, err := s.costs.DeleteFixedCost(ctx, aircraftID)
	if err != nil {
		return NewInternalError("failed to delete fixed cost", err)
	}
	if !deleted {
		return NewNotFoundError(constants.MsgFixedCostNotFound)
	}
	return nil
}

func (s *CostProfileService) GetVariableCost(ctx context.Context, aircraftID string) (*gormModels.VariableCost, error) {
	if err := s.requireAircraft(ctx, aircraftID); err != nil {
		return nil, err
	}
	cost, err := s.costs.GetVariableCost(ctx, aircraftID)
	if err != nil {
		return nil, NewInternalError("failed to load variable cost", err)
	}
	if cost == nil {
		return nil, NewNotFoundError(constants.MsgVariableCostNotFound)
	}
	return cost, nil
}

func (s *CostProfileService) UpsertVariableCost(ctx context.Context, aircraftID string, req dtos.VariableCostRequest) (*gormModels.VariableCost, error) {
	if err := s.requireAircraft(ctx, aircraftID); err != nil {
		return nil, err
	}

	cost := &gormModels.VariableCost{
		AircraftID:            aircraftID,
		FuelLitersPerHour:     req.FuelLitersPerHour,
		FuelConsumptionKmPerL: req.FuelConsumptionKmPerL,
		FuelPricePerLiter:     req.FuelPricePerLiter,
		ECVariableUSD:         req.ECVariableUSD,
		RUPerLeg:              req.RUPerLeg,
		CCRPerLeg:             req.CCRPerLeg,
	}
	if err := s.costs.UpsertVariableCost(ctx, cost); err != nil {
		return nil, NewInternalError("failed to save variable cost", err)
	}
	return cost, nil
}

func (s *CostProfileService) DeleteVariableCost(ctx context.Context, aircraftID string) error {
	deleted, err := s.costs.DeleteVariableCost(ctx, aircraftID)
	if err != nil {
		return NewInternalError("failed to delete variable cost", err)
	}
	if !deleted {
		return NewNotFoundError(constants.MsgVariableCostNotFound)
	}
	return nil
}

func (s *CostProfileService) requireAircraft(ctx context.Context, aircraftID string) error {
	aircraft, err := s.aircraft.GetByID(ctx, aircraftID)
	if err != nil {
		return NewInternalError("failed to load aircraft", err)
	}
	if aircraft == nil {
		return NewNotFoundError(constants.MsgAircraftNotFound)
	}
	return nil
}
