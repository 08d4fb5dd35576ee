package services

import (
	"context"
	"errors"
	"strings"

	"aerocost/api/internal/constants"
	"aerocost/api/internal/db/repositories"
	"aerocost/api/internal/logging"
	"aerocost/api/internal/models/dtos"
	gormModels "aerocost/api/internal/models/gorm"
)

type AircraftService struct {
	aircraft AircraftRepository
	logs     CalculationLogStore
}

// NewAircraftService builds the service. logs may be nil when calculation
// logs live in the main database and go with the cascade.
func NewAircraftService(aircraft AircraftRepository, logs CalculationLogStore) *AircraftService {
	return &AircraftService{aircraft: aircraft, logs: logs}
}

func (s *AircraftService) List(ctx context.Context) ([]gormModels.Aircraft, error) {
	aircraft, err := s.aircraft.List(ctx)
	if err != nil {
		return nil, NewInternalError("failed to list aircraft", err)
	}
	return aircraft, nil
}

func (s *AircraftService) Get(ctx context.Context, id string) (*gormModels.Aircraft, error) {
	aircraft, err := s.aircraft.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load aircraft", err)
	}
	if aircraft == nil {
		return nil, NewNotFoundError(constants.MsgAircraftNotFound)
	}
	return aircraft, nil
}

func (s *AircraftService) Create(ctx context.Context, req dtos.AircraftRequest) (*gormModels.Aircraft, error) {
	aircraft := &gormModels.Aircraft{}
	applyAircraftRequest(aircraft, req)

	if err := s.aircraft.Create(ctx, aircraft); err != nil {
		return nil, mapAircraftWriteError(err)
	}

	logging.Info("[Aircraft] Created aircraft", "aircraft_id", aircraft.ID, "registration", aircraft.Registration)
	return aircraft, nil
}

func (s *AircraftService) Update(ctx context.Context, id string, req dtos.AircraftRequest) (*gormModels.Aircraft, error) {
	aircraft, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applyAircraftRequest(aircraft, req)
	if err := s.aircraft.Update(ctx, aircraft); err != nil {
		return nil, mapAircraftWriteError(err)
	}
	return aircraft, nil
}

// Delete removes the aircraft and everything that belongs to it. Logs are
// cleared first so a failed log delete leaves the aircraft in place for a
// retry.
func (s *AircraftService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if s.logs != nil {
		if err := s.logs.DeleteByAircraft(ctx, id); err != nil {
			return NewInternalError("failed to delete calculation logs", err)
		}
	}

	deleted, err := s.aircraft.DeleteCascade(ctx, id)
	if err != nil {
		return NewInternalError("failed to delete aircraft", err)
	}
	if !deleted {
		return NewNotFoundError(constants.MsgAircraftNotFound)
	}

	logging.Info("[Aircraft] Deleted aircraft", "aircraft_id", id)
	return nil
}

func applyAircraftRequest(aircraft *gormModels.Aircraft, req dtos.AircraftRequest) {
	aircraft.Name = strings.TrimSpace(req.Name)
	aircraft.Registration = strings.ToUpper(strings.TrimSpace(req.Registration))
	aircraft.Model = strings.TrimSpace(req.Model)
	if req.MonthlyHours != nil {
		aircraft.MonthlyHours = *req.MonthlyHours
	}
	if req.AvgLegTime != nil {
		aircraft.AvgLegTime = *req.AvgLegTime
	}
}

func mapAircraftWriteError(err error) error {
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return NewConflictError(constants.MsgRegistrationTaken)
	}
	return NewInternalError("failed to save aircraft", err)
}
