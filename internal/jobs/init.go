package jobs

import (
	"context"

	"aerocost/api/internal/config"
	"aerocost/api/internal/metrics"
)

// InitializeJobs builds the background jobs and starts their schedules.
func InitializeJobs(
	ctx context.Context,
	cfg config.JobsConfig,
	aircraft AircraftLister,
	reconciler FlightCostReconciler,
	metricsReg *metrics.MetricsRegistry,
) *CostReconcileJob {
	costReconcileJob := NewCostReconcileJob(aircraft, reconciler, metricsReg, cfg.ReconcileParallelism)

	go costReconcileJob.RunScheduled(ctx, cfg.ReconcileInterval())

	return costReconcileJob
}
