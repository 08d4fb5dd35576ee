package entities

import "time"

type DependencyStatus struct {
	Status    string `json:"status"`
	Details   string `json:"details,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
}

type HealthCheckResponse struct {
	Status       string                      `json:"status"`
	Environment  string                      `json:"environment"`
	Dependencies map[string]DependencyStatus `json:"dependencies"`
	UpSince      time.Time                   `json:"up_since"`
	Uptime       string                      `json:"uptime"`
}
