package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"aerocost/api/internal/constants"
	"aerocost/api/internal/jobs"
	"aerocost/api/internal/models/dtos"
	gormModels "aerocost/api/internal/models/gorm"
	"aerocost/api/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind services.ErrorKind
		want int
	}{
		{services.KindValidation, http.StatusBadRequest},
		{services.KindPrecondition, http.StatusBadRequest},
		{services.KindNotFound, http.StatusNotFound},
		{services.KindConflict, http.StatusConflict},
		{services.KindUnauthorized, http.StatusUnauthorized},
		{services.KindForbidden, http.StatusForbidden},
		{services.KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, statusForKind(tt.kind))
		})
	}
}

func TestRespondServiceError_PlainErrorIsInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	respondServiceError(rec, req, testStart(), errors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, constants.MsgInternalError, body.Error)
	assert.Contains(t, string(body.Details), "connection reset")
}

func TestLegCostHandler(t *testing.T) {
	t.Run("passes leg time and route through", func(t *testing.T) {
		svc := &MockCalculationService{}
		routeID := "route-1"
		svc.On("CalculateLegCost", mock.Anything, "aircraft-1", floatPtr(3), &routeID).
			Return(&services.LegCostBreakdown{AircraftID: "aircraft-1", TotalLegCost: 5094}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/calculations/aircraft-1/leg-cost?legTime=3&routeId=route-1", nil)
		req = withURLParams(req, map[string]string{"aircraftId": "aircraft-1"})
		rec := httptest.NewRecorder()
		LegCostHandler(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeEnvelope(t, rec)
		assert.Equal(t, string(constants.APIStatusOk), body.Status)
		assert.Contains(t, string(body.Data), `"total_leg_cost":5094`)
		svc.AssertExpectations(t)
	})

	t.Run("omitted parameters are nil", func(t *testing.T) {
		svc := &MockCalculationService{}
		svc.On("CalculateLegCost", mock.Anything, "aircraft-1", (*float64)(nil), (*string)(nil)).
			Return(&services.LegCostBreakdown{}, nil)

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/leg-cost", nil), map[string]string{"aircraftId": "aircraft-1"})
		rec := httptest.NewRecorder()
		LegCostHandler(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("non-numeric leg time is rejected before the service", func(t *testing.T) {
		svc := &MockCalculationService{}

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/leg-cost?legTime=abc", nil), map[string]string{"aircraftId": "aircraft-1"})
		rec := httptest.NewRecorder()
		LegCostHandler(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeEnvelope(t, rec)
		assert.Equal(t, constants.MsgInvalidQueryParam, body.Error)
		assert.Contains(t, string(body.Details), `"field":"legTime"`)
		svc.AssertNotCalled(t, "CalculateLegCost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	for _, raw := range []string{"Inf", "-Inf", "NaN", "-1", "1e400"} {
		t.Run("leg time "+raw+" is rejected", func(t *testing.T) {
			svc := &MockCalculationService{}

			req := withURLParams(httptest.NewRequest(http.MethodGet, "/leg-cost?legTime="+url.QueryEscape(raw), nil), map[string]string{"aircraftId": "aircraft-1"})
			rec := httptest.NewRecorder()
			LegCostHandler(svc).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeEnvelope(t, rec)
			assert.Equal(t, constants.MsgInvalidQueryParam, body.Error)
			assert.Contains(t, string(body.Details), `"field":"legTime"`)
			svc.AssertNotCalled(t, "CalculateLegCost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("precondition maps to 400", func(t *testing.T) {
		svc := &MockCalculationService{}
		svc.On("CalculateLegCost", mock.Anything, "aircraft-1", (*float64)(nil), (*string)(nil)).
			Return(nil, services.NewPreconditionError(constants.MsgLegTimeMissing))

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/leg-cost", nil), map[string]string{"aircraftId": "aircraft-1"})
		rec := httptest.NewRecorder()
		LegCostHandler(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, constants.MsgLegTimeMissing, decodeEnvelope(t, rec).Error)
	})
}

func TestRouteCostHandler(t *testing.T) {
	t.Run("route id is required", func(t *testing.T) {
		svc := &MockCalculationService{}
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/route-cost", nil), map[string]string{"aircraftId": "aircraft-1"})
		rec := httptest.NewRecorder()
		RouteCostHandler(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeEnvelope(t, rec)
		assert.Equal(t, constants.MsgRouteIDRequired, body.Error)
		assert.Contains(t, string(body.Details), `"field":"routeId"`)
	})

	t.Run("unknown route is 404", func(t *testing.T) {
		svc := &MockCalculationService{}
		svc.On("CalculateRouteCost", mock.Anything, "aircraft-1", "nope").
			Return(nil, services.NewNotFoundError(constants.MsgRouteNotFound))

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/route-cost?routeId=nope", nil), map[string]string{"aircraftId": "aircraft-1"})
		rec := httptest.NewRecorder()
		RouteCostHandler(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, constants.MsgRouteNotFound, decodeEnvelope(t, rec).Error)
	})
}

func TestListFlightsHandler(t *testing.T) {
	t.Run("invalid flight type", func(t *testing.T) {
		svc := &MockFlightService{}
		rec := httptest.NewRecorder()
		ListFlightsHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/flights?flight_type=cancelled", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, string(decodeEnvelope(t, rec).Details), "flight_type")
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("filters are forwarded", func(t *testing.T) {
		svc := &MockFlightService{}
		svc.On("List", mock.Anything, services.FlightListParams{
			AircraftID: "aircraft-1",
			FlightType: constants.FlightTypeCompleted,
			Limit:      20,
		}).Return([]gormModels.Flight{{ID: "f1"}}, nil)

		rec := httptest.NewRecorder()
		ListFlightsHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/flights?aircraft_id=aircraft-1&flight_type=completed&limit=20", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("negative limit", func(t *testing.T) {
		svc := &MockFlightService{}
		rec := httptest.NewRecorder()
		ListFlightsHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/flights?limit=-1", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRecalculateCostsHandler(t *testing.T) {
	svc := &MockFlightService{}
	result := &services.RecalculationResult{
		Total:   2,
		Updated: 1,
		Errors:  1,
		ErrorDetails: []services.RecalculationFailure{
			{FlightID: "f2", Route: "GRU → SDU", Error: constants.MsgLegTimeMissing},
		},
	}
	svc.On("RecalculateCosts", mock.Anything, "aircraft-1", services.RecalculateOptions{Force: true}).Return(result, nil)

	req := withURLParams(httptest.NewRequest(http.MethodPost, "/recalculate-costs?force=true", nil), map[string]string{"id": "aircraft-1"})
	rec := httptest.NewRecorder()
	RecalculateCostsHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "per-flight failures do not fail the request")
	data := string(decodeEnvelope(t, rec).Data)
	assert.Contains(t, data, `"errors":1`)
	assert.Contains(t, data, "GRU → SDU")
	svc.AssertExpectations(t)

	t.Run("invalid boolean", func(t *testing.T) {
		req := withURLParams(httptest.NewRequest(http.MethodPost, "/recalculate-costs?all=maybe", nil), map[string]string{"id": "aircraft-1"})
		rec := httptest.NewRecorder()
		RecalculateCostsHandler(&MockFlightService{}).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCompleteFlightHandler(t *testing.T) {
	t.Run("empty body completes with planned leg time", func(t *testing.T) {
		svc := &MockFlightService{}
		svc.On("Complete", mock.Anything, "f1", (*float64)(nil)).
			Return(&gormModels.Flight{ID: "f1", FlightType: constants.FlightTypeCompleted}, nil)

		req := withURLParams(httptest.NewRequest(http.MethodPost, "/complete", nil), map[string]string{"id": "f1"})
		rec := httptest.NewRecorder()
		CompleteFlightHandler(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("already completed is 409", func(t *testing.T) {
		svc := &MockFlightService{}
		svc.On("Complete", mock.Anything, "f1", floatPtr(2.5)).
			Return(nil, services.NewConflictError(constants.MsgFlightAlreadyCompleted))

		req := httptest.NewRequest(http.MethodPost, "/complete", strings.NewReader(`{"actual_leg_time":2.5}`))
		req = withURLParams(req, map[string]string{"id": "f1"})
		rec := httptest.NewRecorder()
		CompleteFlightHandler(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, constants.MsgFlightAlreadyCompleted, decodeEnvelope(t, rec).Error)
	})

	t.Run("non-positive actual leg time fails validation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/complete", strings.NewReader(`{"actual_leg_time":0}`))
		req = withURLParams(req, map[string]string{"id": "f1"})
		rec := httptest.NewRecorder()
		CompleteFlightHandler(&MockFlightService{}).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateAircraftHandler_Validation(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"missing registration", `{"name":"CJ3","monthly_hours":100}`, "registration"},
		{"missing monthly hours", `{"name":"CJ3","registration":"PR-ABC"}`, "monthly_hours"},
		{"negative monthly hours", `{"name":"CJ3","registration":"PR-ABC","monthly_hours":-1}`, "monthly_hours"},
		{"wrong type", `{"name":"CJ3","registration":"PR-ABC","monthly_hours":"lots"}`, "monthly_hours"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAircraftService{}
			rec := httptest.NewRecorder()
			CreateAircraftHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/aircraft", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, string(decodeEnvelope(t, rec).Details), `"field":"`+tt.wantField+`"`)
			svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateAircraftHandler_Created(t *testing.T) {
	svc := &MockAircraftService{}
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req dtos.AircraftRequest) bool {
		return req.Registration == "PR-ABC" && req.MonthlyHours != nil && *req.MonthlyHours == 100
	})).Return(&gormModels.Aircraft{ID: "aircraft-1", Registration: "PR-ABC"}, nil)

	rec := httptest.NewRecorder()
	body := `{"name":"CJ3","registration":"PR-ABC","monthly_hours":100}`
	CreateAircraftHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/aircraft", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

type stubReconcileRunner struct {
	summaries []services.ReconcileSummary
	err       error
}

func (s stubReconcileRunner) Run(context.Context) ([]services.ReconcileSummary, error) {
	return s.summaries, s.err
}

func TestJobsHandler_TriggerCostReconcile(t *testing.T) {
	t.Run("sums healed flights", func(t *testing.T) {
		handler := NewJobsHandler(stubReconcileRunner{summaries: []services.ReconcileSummary{
			{AircraftID: "a", Checked: 3, Healed: 1},
			{AircraftID: "b", Checked: 2, Healed: 2},
		}})
		rec := httptest.NewRecorder()
		handler.TriggerCostReconcile().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/jobs/reconcile-costs", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(decodeEnvelope(t, rec).Data), `"healed":3`)
	})

	t.Run("already running is 409", func(t *testing.T) {
		handler := NewJobsHandler(stubReconcileRunner{err: jobs.ErrJobRunning})
		rec := httptest.NewRecorder()
		handler.TriggerCostReconcile().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("other failures are 500", func(t *testing.T) {
		handler := NewJobsHandler(stubReconcileRunner{err: errors.New("db down")})
		rec := httptest.NewRecorder()
		handler.TriggerCostReconcile().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
