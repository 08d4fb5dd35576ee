package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aerocost/api/internal/models/dtos"
	gormModels "aerocost/api/internal/models/gorm"
	"aerocost/api/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCalculationService struct {
	mock.Mock
}

func (m *MockCalculationService) CalculateBaseCost(ctx context.Context, aircraftID string) (*services.BaseCostBreakdown, error) {
	args := m.Called(ctx, aircraftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.BaseCostBreakdown), args.Error(1)
}

func (m *MockCalculationService) CalculateLegCost(ctx context.Context, aircraftID string, legTime *float64, routeID *string) (*services.LegCostBreakdown, error) {
	args := m.Called(ctx, aircraftID, legTime, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LegCostBreakdown), args.Error(1)
}

func (m *MockCalculationService) CalculateRouteCost(ctx context.Context, aircraftID, routeID string) (*services.LegCostBreakdown, error) {
	args := m.Called(ctx, aircraftID, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LegCostBreakdown), args.Error(1)
}

func (m *MockCalculationService) CalculateMonthlyProjection(ctx context.Context, aircraftID string) (*services.MonthlyProjection, error) {
	args := m.Called(ctx, aircraftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.MonthlyProjection), args.Error(1)
}

func (m *MockCalculationService) CalculateComplete(ctx context.Context, aircraftID string) (*services.CompleteCalculation, error) {
	args := m.Called(ctx, aircraftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CompleteCalculation), args.Error(1)
}

type MockFlightService struct {
	mock.Mock
}

func (m *MockFlightService) List(ctx context.Context, params services.FlightListParams) ([]gormModels.Flight, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]gormModels.Flight), args.Error(1)
}

func (m *MockFlightService) Get(ctx context.Context, id string) (*gormModels.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gormModels.Flight), args.Error(1)
}

func (m *MockFlightService) Create(ctx context.Context, req dtos.FlightRequest) (*gormModels.Flight, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gormModels.Flight), args.Error(1)
}

func (m *MockFlightService) Update(ctx context.Context, id string, req dtos.FlightRequest) (*gormModels.Flight, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gormModels.Flight), args.Error(1)
}

func (m *MockFlightService) Complete(ctx context.Context, id string, actualLegTime *float64) (*gormModels.Flight, error) {
	args := m.Called(ctx, id, actualLegTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gormModels.Flight), args.Error(1)
}

func (m *MockFlightService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFlightService) RecalculateCosts(ctx context.Context, aircraftID string, opts services.RecalculateOptions) (*services.RecalculationResult, error) {
	args := m.Called(ctx, aircraftID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.RecalculationResult), args.Error(1)
}

type MockAircraftService struct {
	mock.Mock
}

func (m *MockAircraftService) List(ctx context.Context) ([]gormModels.Aircraft, error) {
	args := m.Called(ctx)
	return args.Get(0).([]gormModels.Aircraft), args.Error(1)
}

func (m *MockAircraftService) Get(ctx context.Context, id string) (*gormModels.Aircraft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gormModels.Aircraft), args.Error(1)
}

func (m *MockAircraftService) Create(ctx context.Context, req dtos.AircraftRequest) (*gormModels.Aircraft, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gormModels.Aircraft), args.Error(1)
}

func (m *MockAircraftService) Update(ctx context.Context, id string, req dtos.AircraftRequest) (*gormModels.Aircraft, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gormModels.Aircraft), args.Error(1)
}

func (m *MockAircraftService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// withURLParams attaches chi route params the way the router would.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func floatPtr(v float64) *float64 { return &v }

func testStart() time.Time { return time.Now() }
