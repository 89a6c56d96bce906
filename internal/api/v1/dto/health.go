package dto

import "time"

// Check statuses
const (
	CheckPass = "pass"
	CheckWarn = "warn"
	CheckFail = "fail"
)

// Overall statuses
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// CheckResult is the status of one dependency
type CheckResult struct {
	Status  string                 `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status        string                 `json:"status"`
	Timestamp     time.Time              `json:"timestamp"`
	Version       string                 `json:"version"`
	Environment   string                 `json:"environment"`
	UptimeSeconds float64                `json:"uptime_seconds"`
	Checks        map[string]CheckResult `json:"checks"`
}

// RuntimeInfo describes the running process
type RuntimeInfo struct {
	GoVersion        string `json:"go_version"`
	OS               string `json:"os"`
	Arch             string `json:"arch"`
	CPUs             int    `json:"cpus"`
	Goroutines       int    `json:"goroutines"`
	TotalMemoryBytes uint64 `json:"total_memory_bytes"`
}

// StatusResponse is returned by GET /status
type StatusResponse struct {
	Service       string          `json:"service"`
	Version       string          `json:"version"`
	Environment   string          `json:"environment"`
	StartedAt     time.Time       `json:"started_at"`
	UptimeSeconds float64         `json:"uptime_seconds"`
	Provider      string          `json:"transcription_provider"`
	Model         string          `json:"transcription_model"`
	MaxUploadMB   int64           `json:"max_upload_mb"`
	Features      map[string]bool `json:"features"`
	Runtime       RuntimeInfo     `json:"runtime"`
}
