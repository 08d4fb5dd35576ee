package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for AeroCost
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Engine Metrics
	CalculationsTotal      *prometheus.CounterVec
	FlightCostsHealedTotal prometheus.Counter
	RecalculatedFlights    *prometheus.CounterVec

	// Job Metrics
	ReconcileJobDuration *prometheus.HistogramVec
}

// NewMetricsRegistry registers every metric against reg. The server passes
// prometheus.DefaultRegisterer, tests pass a fresh prometheus.NewRegistry().
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aerocost_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aerocost_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "aerocost_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		CalculationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aerocost_calculations_total",
				Help: "Cost calculations by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		FlightCostsHealedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "aerocost_flight_costs_healed_total",
				Help: "Stored flight costs rewritten because they drifted from current inputs",
			},
		),
		RecalculatedFlights: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aerocost_recalculated_flights_total",
				Help: "Flights processed by bulk recalculation by outcome",
			},
			[]string{"outcome"},
		),

		ReconcileJobDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aerocost_reconcile_job_duration_seconds",
				Help:    "Cost reconciliation job execution time in seconds",
				Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600},
			},
			[]string{"job_name"},
		),
	}
}
