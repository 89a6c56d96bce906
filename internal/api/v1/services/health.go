package services

import (
	"context"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"transcript-sheets/internal/api/v1/dto"
	"transcript-sheets/internal/app/persistence"
	"transcript-sheets/internal/app/sysinfo"
	"transcript-sheets/internal/app/transcriber"
	"transcript-sheets/internal/config"
)

// ServiceName is reported by /status and /
const ServiceName = "transcript-sheets"

// Resource usage above this share of capacity turns the system check into a warning
const usageWarnPercent = 90.0

// Check names
const (
	CheckSystem        = "system"
	CheckSpreadsheet   = "spreadsheet"
	CheckTranscriber   = "transcriber"
	CheckBackupStorage = "backup_storage"
)

// HealthServiceImpl implements HealthService
type HealthServiceImpl struct {
	config      *config.Config
	sampler     sysinfo.Sampler
	transcriber transcriber.Transcriber
	adapter     *persistence.Adapter
	logger      *zap.Logger
	started     time.Time
	now         func() time.Time
}

// NewHealthService creates a new health service. started is the process start time.
func NewHealthService(
	cfg *config.Config,
	sampler sysinfo.Sampler,
	t transcriber.Transcriber,
	adapter *persistence.Adapter,
	logger *zap.Logger,
	started time.Time,
) HealthService {
	return &HealthServiceImpl{
		config:      cfg,
		sampler:     sampler,
		transcriber: t,
		adapter:     adapter,
		logger:      logger,
		started:     started,
		now:         time.Now,
	}
}

// Health runs every dependency check concurrently. Each check is bounded, so
// the report is returned within probeTimeout.
func (s *HealthServiceImpl) Health(ctx context.Context) *dto.HealthResponse {
	checks := map[string]func(context.Context) dto.CheckResult{
		CheckSystem:        s.checkSystem,
		CheckSpreadsheet:   s.checkSpreadsheet,
		CheckTranscriber:   s.checkTranscriber,
		CheckBackupStorage: s.checkBackups,
	}

	results := make(map[string]dto.CheckResult, len(checks))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for name, check := range checks {
		wg.Add(1)
		go func(name string, check func(context.Context) dto.CheckResult) {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, probeTimeout)
			defer cancel()
			result := check(cctx)
			mu.Lock()
			results[name] = result
			mu.Unlock()
		}(name, check)
	}
	wg.Wait()

	now := s.now()
	status := OverallStatus(results)
	if status != dto.StatusHealthy {
		s.logger.Warn("Health check not passing", zap.String("status", status), zap.Any("checks", results))
	}

	return &dto.HealthResponse{
		Status:        status,
		Timestamp:     now.UTC(),
		Version:       s.config.Version,
		Environment:   s.config.Environment,
		UptimeSeconds: now.Sub(s.started).Seconds(),
		Checks:        results,
	}
}

// OverallStatus folds per-dependency results. The service is unhealthy when
// it cannot sample its host or when nothing could store a result.
func OverallStatus(results map[string]dto.CheckResult) string {
	failed := func(name string) bool {
		r, ok := results[name]
		return ok && r.Status == dto.CheckFail
	}

	if failed(CheckSystem) || (failed(CheckSpreadsheet) && failed(CheckBackupStorage)) {
		return dto.StatusUnhealthy
	}
	for _, r := range results {
		if r.Status != dto.CheckPass {
			return dto.StatusDegraded
		}
	}
	return dto.StatusHealthy
}

func (s *HealthServiceImpl) checkSystem(ctx context.Context) dto.CheckResult {
	snap, err := s.sampler.Sample(ctx)
	if err != nil {
		return dto.CheckResult{Status: dto.CheckFail, Error: err.Error()}
	}

	status := dto.CheckPass
	if snap.MemoryPercent >= usageWarnPercent || snap.DiskPercent >= usageWarnPercent {
		status = dto.CheckWarn
	}
	return dto.CheckResult{
		Status: status,
		Details: map[string]interface{}{
			"memory_percent":    snap.MemoryPercent,
			"disk_percent":      snap.DiskPercent,
			"disk_free_bytes":   snap.DiskFreeBytes,
			"cpu_percent":       snap.CPUPercent,
			"process_rss_bytes": snap.ProcessRSSBytes,
			"goroutines":        snap.Goroutines,
		},
	}
}

// checkSpreadsheet pings the transcript document and, when it is a different
// one, the webhook document. One unreachable document only warns.
func (s *HealthServiceImpl) checkSpreadsheet(ctx context.Context) dto.CheckResult {
	client := s.adapter.Sheets()
	if client == nil {
		return dto.CheckResult{Status: dto.CheckFail, Error: "spreadsheet client not configured"}
	}

	targets := map[string]config.SheetTarget{"transcripts": s.config.Sheets.Transcripts}
	if s.config.Sheets.Webhook.SpreadsheetID != s.config.Sheets.Transcripts.SpreadsheetID {
		targets["webhook"] = s.config.Sheets.Webhook
	}

	start := s.now()
	details := make(map[string]interface{})
	var failures []string
	for _, name := range lo.Keys(targets) {
		target := targets[name]
		titles, err := client.Ping(ctx, target.SpreadsheetID)
		if err != nil {
			failures = append(failures, name+": "+err.Error())
			continue
		}
		if name == "transcripts" {
			details["worksheets"] = len(titles)
			details["worksheet_exists"] = lo.Contains(titles, target.Worksheet)
		} else {
			details["webhook_worksheet_exists"] = lo.Contains(titles, target.Worksheet)
		}
	}
	details["documents"] = len(targets)
	details["latency_ms"] = s.now().Sub(start).Milliseconds()

	sort.Strings(failures)
	switch {
	case len(failures) == len(targets):
		return dto.CheckResult{Status: dto.CheckFail, Details: details, Error: strings.Join(failures, "; ")}
	case len(failures) > 0:
		return dto.CheckResult{Status: dto.CheckWarn, Details: details, Error: strings.Join(failures, "; ")}
	}
	return dto.CheckResult{Status: dto.CheckPass, Details: details}
}

// checkTranscriber only warns: a flaky provider does not stop webhooks or backups
func (s *HealthServiceImpl) checkTranscriber(ctx context.Context) dto.CheckResult {
	info := s.transcriber.Info()
	details := map[string]interface{}{"provider": info.Name, "model": info.Model}
	if err := s.transcriber.HealthCheck(ctx); err != nil {
		return dto.CheckResult{Status: dto.CheckWarn, Details: details, Error: err.Error()}
	}
	return dto.CheckResult{Status: dto.CheckPass, Details: details}
}

func (s *HealthServiceImpl) checkBackups(ctx context.Context) dto.CheckResult {
	stores := s.adapter.Backups()
	if len(stores) == 0 {
		return dto.CheckResult{Status: dto.CheckFail, Error: "no backup stores configured"}
	}

	details := make(map[string]interface{}, len(stores))
	healthy := 0
	var lastErr string
	for _, store := range stores {
		if err := store.Check(ctx); err != nil {
			details[store.Name()] = dto.CheckFail
			lastErr = store.Name() + ": " + err.Error()
			continue
		}
		details[store.Name()] = dto.CheckPass
		healthy++
	}

	switch {
	case healthy == 0:
		return dto.CheckResult{Status: dto.CheckFail, Details: details, Error: lastErr}
	case healthy < len(stores):
		return dto.CheckResult{Status: dto.CheckWarn, Details: details, Error: lastErr}
	default:
		return dto.CheckResult{Status: dto.CheckPass, Details: details}
	}
}

// Status describes the running service
func (s *HealthServiceImpl) Status(ctx context.Context) *dto.StatusResponse {
	info := s.transcriber.Info()
	now := s.now()

	return &dto.StatusResponse{
		Service:       ServiceName,
		Version:       s.config.Version,
		Environment:   s.config.Environment,
		StartedAt:     s.started.UTC(),
		UptimeSeconds: now.Sub(s.started).Seconds(),
		Provider:      info.Name,
		Model:         info.Model,
		MaxUploadMB:   s.config.Upload.MaxBytes >> 20,
		Features: map[string]bool{
			"spreadsheet":       s.adapter.Sheets() != nil,
			"object_backup":     s.config.Backup.MinIO.Enabled(),
			"error_tracking":    s.config.Monitoring.SentryDSN != "",
			"custom_schema":     s.config.Webhook.SchemaFile != "",
			"local_transcripts": s.config.Upload.TranscriptDir != "",
		},
		Runtime: dto.RuntimeInfo{
			GoVersion:        runtime.Version(),
			OS:               runtime.GOOS,
			Arch:             runtime.GOARCH,
			CPUs:             runtime.NumCPU(),
			Goroutines:       runtime.NumGoroutine(),
			TotalMemoryBytes: sysinfo.TotalMemory(ctx),
		},
	}
}
