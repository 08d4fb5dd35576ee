package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"aerocost/api/internal/auth"
	"aerocost/api/internal/common"
	"aerocost/api/internal/jobs"
	"aerocost/api/internal/logging"
	"aerocost/api/internal/services"
)

type CostReconcileRunner interface {
	Run(ctx context.Context) ([]services.ReconcileSummary, error)
}

// JobsHandler handles manual job triggering endpoints
type JobsHandler struct {
	costReconcile CostReconcileRunner
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(costReconcile CostReconcileRunner) *JobsHandler {
	return &JobsHandler{
		costReconcile: costReconcile,
	}
}

type CostReconcileResult struct {
	TriggeredBy string                      `json:"triggered_by"`
	TriggeredAt string                      `json:"triggered_at"`
	CompletedAt string                      `json:"completed_at"`
	DurationMs  int64                       `json:"duration_ms"`
	Healed      int                         `json:"healed"`
	Aircraft    []services.ReconcileSummary `json:"aircraft"`
}

// TriggerCostReconcile handles POST /api/v1/admin/jobs/reconcile-costs
func (h *JobsHandler) TriggerCostReconcile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		triggeredBy := ""
		if claims := auth.GetUserClaims(r.Context()); claims != nil {
			triggeredBy = claims.UserID()
		}
		logging.Info("[JobsHandler] Cost reconcile manually triggered", "user_id", triggeredBy)

		summaries, err := h.costReconcile.Run(r.Context())
		if err != nil {
			if errors.Is(err, jobs.ErrJobRunning) {
				respondServiceError(w, r, start, services.NewConflictError(err.Error()))
				return
			}
			respondServiceError(w, r, start, services.NewInternalError("Failed to run cost reconcile", err))
			return
		}

		healed := 0
		for _, s := range summaries {
			healed += s.Healed
		}

		common.RespondSuccess(w, start, "Cost reconcile completed", CostReconcileResult{
			TriggeredBy: triggeredBy,
			TriggeredAt: start.UTC().Format(time.RFC3339),
			CompletedAt: time.Now().UTC().Format(time.RFC3339),
			DurationMs:  time.Since(start).Milliseconds(),
			Healed:      healed,
			Aircraft:    summaries,
		})
	}
}
