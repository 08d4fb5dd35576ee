package services

import (
	"context"
	"time"

	"aerocost/api/internal/constants"
	"aerocost/api/internal/models/dtos"
	gormModels "aerocost/api/internal/models/gorm"
)

// FxRateService manages manually entered USD to BRL rates.
type FxRateService struct {
	rates FxRateRepository
	now   func() time.Time
}

func NewFxRateService(rates FxRateRepository) *FxRateService {
	return &FxRateService{rates: rates, now: time.Now}
}

func (s *FxRateService) List(ctx context.Context, limit int) ([]gormModels.FxRate, error) {
	if limit <= 0 {
		limit = constants.DefaultFxRateListLimit
	}
	rates, err := s.rates.List(ctx, limit)
	if err != nil {
		return nil, NewInternalError("failed to list fx rates", err)
	}
	return rates, nil
}

func (s *FxRateService) Current(ctx context.Context) (*gormModels.FxRate, error) {
	rate, err := s.rates.GetCurrent(ctx)
	if err != nil {
		return nil, NewInternalError("failed to load exchange rate", err)
	}
	if rate == nil {
		return nil, NewNotFoundError(constants.MsgFxRateNotFound)
	}
	return rate, nil
}

// Create records a rate. Without an effective date it takes effect today.
func (s *FxRateService) Create(ctx context.Context, req dtos.FxRateRequest) (*gormModels.FxRate, error) {
	effective := s.now().UTC()
	if req.EffectiveDate != nil {
		effective = req.EffectiveDate.Time
	}

	rate := &gormModels.FxRate{
		USDToBRL:      req.USDToBRL,
		EffectiveDate: effective,
	}
	if err := s.rates.Create(ctx, rate); err != nil {
		return nil, NewInternalError("failed to create fx rate", err)
	}
	return rate, nil
}

func (s *FxRateService) Delete(ctx context.Context, id string) error {
	deleted, err := s.rates.Delete(ctx, id)
	if err != nil {
		return NewInternalError("failed to delete fx rate", err)
	}
	if !deleted {
		return NewNotFoundError(constants.MsgFxRateNotFound)
	}
	return nil
}
