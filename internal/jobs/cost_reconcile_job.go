package jobs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"aerocost/api/internal/logging"
	"aerocost/api/internal/metrics"
	gormModels "aerocost/api/internal/models/gorm"
	"aerocost/api/internal/services"

	"golang.org/x/sync/errgroup"
)

const costReconcileJobName = "cost_reconcile"

// ErrJobRunning is returned when a run is requested while another is active.
var ErrJobRunning = errors.New("cost reconcile job is already running")

type AircraftLister interface {
	List(ctx context.Context) ([]gormModels.Aircraft, error)
}

type FlightCostReconciler interface {
	ReconcileAircraft(ctx context.Context, aircraftID string) (*services.ReconcileSummary, error)
}

// CostReconcileJob re-prices the stored cost of every flight against current
// inputs, fanning out across aircraft. Flights of a single aircraft are
// handled sequentially.
type CostReconcileJob struct {
	aircraft    AircraftLister
	reconciler  FlightCostReconciler
	metrics     *metrics.MetricsRegistry
	parallelism int
	running     sync.Mutex
}

func NewCostReconcileJob(
	aircraft AircraftLister,
	reconciler FlightCostReconciler,
	metricsReg *metrics.MetricsRegistry,
	parallelism int,
) *CostReconcileJob {
	if parallelism <= 0 {
		parallelism = 1
	}
	return &CostReconcileJob{
		aircraft:    aircraft,
		reconciler:  reconciler,
		metrics:     metricsReg,
		parallelism: parallelism,
	}
}

// Run reconciles every aircraft once and returns one summary per aircraft,
// ordered by aircraft id. An aircraft that fails is logged and reported with
// its flights unchecked; it does not stop the others.
func (j *CostReconcileJob) Run(ctx context.Context) ([]services.ReconcileSummary, error) {
	if !j.running.TryLock() {
		return nil, ErrJobRunning
	}
	defer j.running.Unlock()

	start := time.Now()
	defer func() {
		if j.metrics != nil {
			j.metrics.ReconcileJobDuration.WithLabelValues(costReconcileJobName).Observe(time.Since(start).Seconds())
		}
	}()

	aircraft, err := j.aircraft.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list aircraft: %w", err)
	}
	logging.Info("[CostReconcileJob] Starting run", "aircraft", len(aircraft), "parallelism", j.parallelism)

	summaries := make([]services.ReconcileSummary, len(aircraft))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.parallelism)

	for i := range aircraft {
		i, id := i, aircraft[i].ID
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			summary, err := j.reconciler.ReconcileAircraft(gctx, id)
			if err != nil {
				logging.Warn("[CostReconcileJob] Aircraft reconcile failed", "aircraft_id", id, "error", err)
				summaries[i] = services.ReconcileSummary{AircraftID: id}
				return nil
			}
			summaries[i] = *summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(summaries, func(a, b int) bool { return summaries[a].AircraftID < summaries[b].AircraftID })

	healed := 0
	for _, s := range summaries {
		healed += s.Healed
	}
	logging.Info("[CostReconcileJob] Run finished",
		"aircraft", len(summaries),
		"healed", healed,
		"duration", time.Since(start).String(),
	)
	return summaries, nil
}

// RunScheduled runs the job every interval until ctx is cancelled. A zero
// interval disables the schedule.
func (j *CostReconcileJob) RunScheduled(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		logging.Info("[CostReconcileJob] Schedule disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := j.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logging.Error("[CostReconcileJob] Scheduled run failed", "error", err)
			}
		case <-ctx.Done():
			logging.Info("[CostReconcileJob] Shutting down scheduled reconcile")
			return
		}
	}
}
