// Package app wires the service's components together.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"

	"transcript-sheets/internal/api/v1/routes"
	"transcript-sheets/internal/api/v1/services"
	"transcript-sheets/internal/app/mapper"
	"transcript-sheets/internal/app/metrics"
	"transcript-sheets/internal/app/persistence"
	"transcript-sheets/internal/app/sysinfo"
	"transcript-sheets/internal/app/transcriber"
	"transcript-sheets/internal/config"
)

// Application is everything the commands need from the wired graph
type Application struct {
	Config        *config.Config
	Logger        *zap.Logger
	Container     *routes.ServiceContainer
	Transcription services.TranscriptionService
	Adapter       *persistence.Adapter
	Metrics       *metrics.Metrics
}

// ProviderSet is the full dependency graph
var ProviderSet = wire.NewSet(
	provideStartTime,
	provideSampler,
	metrics.New,
	transcriber.New,
	provideSheetsClient,
	provideBackupStores,
	provideRetryPolicy,
	persistence.NewAdapter,
	provideMapper,
	services.NewTranscriptionService,
	services.NewWebhookService,
	services.NewHealthService,
	provideServiceContainer,
	wire.Struct(new(Application), "*"),
)

func provideStartTime() time.Time {
	return time.Now()
}

func provideSampler() sysinfo.Sampler {
	return sysinfo.NewHostSampler("/")
}

// provideSheetsClient fails when the credentials cannot be used at all, so the
// service never starts without a spreadsheet client
func provideSheetsClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (persistence.SheetsClient, error) {
	client, err := persistence.NewGoogleSheets(ctx, cfg.Sheets.CredentialsJSON)
	if err != nil {
		return nil, err
	}
	logger.Info("Google Sheets client ready",
		zap.String("credentials_source", cfg.Sheets.CredentialsSource),
		zap.String("service_account", cfg.Sheets.ServiceAccountEmail))
	return client, nil
}

func provideBackupStores(cfg *config.Config, logger *zap.Logger) ([]persistence.BackupStore, error) {
	if err := os.MkdirAll(cfg.Backup.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}
	stores := []persistence.BackupStore{persistence.NewLocalBackup(cfg.Backup.Dir)}

	if cfg.Backup.MinIO.Enabled() {
		object, err := persistence.NewObjectBackup(cfg.Backup.MinIO)
		if err != nil {
			return nil, err
		}
		stores = append(stores, object)
		logger.Info("Object storage backup enabled",
			zap.String("endpoint", cfg.Backup.MinIO.Endpoint),
			zap.String("bucket", cfg.Backup.MinIO.Bucket))
	}
	return stores, nil
}

func provideRetryPolicy(cfg *config.Config) persistence.RetryPolicy {
	return persistence.RetryPolicy{
		Attempts: cfg.Sheets.RetryAttempts,
		Timeout:  cfg.Sheets.Timeout,
		Delay:    cfg.Sheets.RetryDelay,
	}
}

func provideMapper(cfg *config.Config) (*mapper.Mapper, error) {
	schema, err := mapper.LoadSchema(cfg.Webhook.SchemaFile)
	if err != nil {
		return nil, err
	}
	return mapper.New(schema), nil
}

func provideServiceContainer(
	cfg *config.Config,
	transcription services.TranscriptionService,
	webhook services.WebhookService,
	health services.HealthService,
	m *metrics.Metrics,
) *routes.ServiceContainer {
	return &routes.ServiceContainer{
		TranscriptionService: transcription,
		WebhookService:       webhook,
		HealthService:        health,
		Metrics:              m,
		MaxUploadBytes:       cfg.Upload.MaxBytes,
	}
}
