package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"aerocost/api/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// HealthCheckHandler handles GET /healthCheck
//
// Reports 200 while the database answers a ping, 503 otherwise.
func HealthCheckHandler(db *sqlx.DB, appEnv string, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		dependencies := make(map[string]entities.DependencyStatus)

		dbStatus := entities.DependencyStatus{Status: "ok", Details: "Database connected"}
		if db == nil {
			dbStatus = entities.DependencyStatus{Status: "down", Details: "Database not configured"}
		} else {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			pingStart := time.Now()
			if err := db.PingContext(ctx); err != nil {
				dbStatus.Status = "down"
				dbStatus.Details = err.Error()
			}
			cancel()
			dbStatus.LatencyMs = time.Since(pingStart).Milliseconds()
		}
		dependencies["database"] = dbStatus

		overallStatus := "ok"
		for _, dep := range dependencies {
			if dep.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		now := time.Now()
		uptime := now.Sub(upSince).Round(time.Second).String()

		resp := entities.HealthCheckResponse{
			Status:       overallStatus,
			Environment:  appEnv,
			Dependencies: dependencies,
			UpSince:      upSince,
			Uptime:       uptime,
		}

		code := http.StatusOK
		if overallStatus != "ok" {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *Handlers) HealthCheck() http.HandlerFunc {
	return HealthCheckHandler(h.deps.SQLX, h.deps.Config.AppEnv, h.deps.UpSince)
}
