package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	OverallHealthy   = "healthy"
	OverallUnhealthy = "unhealthy"
)

// CheckResult is the outcome of probing one endpoint
type CheckResult struct {
	Status         string                 `json:"status"`
	ResponseTimeMS float64                `json:"response_time_ms,omitempty"`
	Error          string                 `json:"error,omitempty"`
	Data           map[string]interface{} `json:"data,omitempty"`
}

// Report summarises a full probe of a running instance
type Report struct {
	Timestamp     time.Time              `json:"timestamp"`
	BaseURL       string                 `json:"base_url"`
	OverallStatus string                 `json:"overall_status"`
	Checks        map[string]CheckResult `json:"checks"`
}

// Healthy reports whether the instance passed every critical check
func (r *Report) Healthy() bool {
	return r.OverallStatus == OverallHealthy
}

type probe struct {
	name     string
	path     string
	critical bool
	decode   bool
}

// health and root failures make the instance unhealthy; status and metrics
// failures are only reported
var probes = []probe{
	{name: "health_endpoint", path: "/health", critical: true, decode: true},
	{name: "root_endpoint", path: "/", critical: true},
	{name: "status_endpoint", path: "/status", decode: true},
	{name: "metrics_endpoint", path: "/metrics"},
}

// Checker probes a deployed instance over HTTP
type Checker struct {
	client *http.Client
}

// NewChecker creates a checker with a per-request timeout
func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Checker{client: &http.Client{Timeout: timeout}}
}

// Check probes every endpoint of the instance at baseURL
func (c *Checker) Check(ctx context.Context, baseURL string) *Report {
	baseURL = strings.TrimRight(baseURL, "/")
	report := &Report{
		Timestamp:     time.Now().UTC(),
		BaseURL:       baseURL,
		OverallStatus: OverallHealthy,
		Checks:        make(map[string]CheckResult, len(probes)),
	}

	for _, p := range probes {
		result := c.probe(ctx, baseURL+p.path, p.decode)
		report.Checks[p.name] = result
		if result.Status != "pass" && p.critical {
			report.OverallStatus = OverallUnhealthy
		}
	}
	return report
}

func (c *Checker) probe(ctx context.Context, url string, decode bool) CheckResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return CheckResult{Status: "fail", Error: err.Error()}
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return CheckResult{Status: "fail", Error: err.Error()}
	}
	defer resp.Body.Close()
	elapsed := float64(time.Since(start).Microseconds()) / 1000

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return CheckResult{Status: "fail", Error: err.Error(), ResponseTimeMS: elapsed}
	}

	if resp.StatusCode != http.StatusOK {
		return CheckResult{Status: "fail", Error: fmt.Sprintf("HTTP %d", resp.StatusCode), ResponseTimeMS: elapsed}
	}

	result := CheckResult{Status: "pass", ResponseTimeMS: elapsed}
	if decode {
		var data map[string]interface{}
		if err := json.Unmarshal(body, &data); err == nil {
			result.Data = data
		}
	}
	return result
}
