package config

import (
	"time"
)

// Config is the immutable service configuration. It is loaded once at startup
// and handed to every component at construction.
type Config struct {
	Environment string
	Version     string
	LogLevel    string

	Server        ServerConfig
	Transcription TranscriptionConfig
	Upload        UploadConfig
	Sheets        SheetsConfig
	Backup        BackupConfig
	Webhook       WebhookConfig
	Monitoring    MonitoringConfig

	present map[string]bool
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// TranscriptionConfig selects and configures the external speech-to-text provider
type TranscriptionConfig struct {
	Provider         string
	Model            string
	Language         string
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	WhisperServerURL string
	Timeout          time.Duration
}

// UploadConfig bounds uploads and names the local working directories
type UploadConfig struct {
	MaxBytes      int64
	TempDir       string
	TranscriptDir string
}

// SheetTarget identifies one worksheet inside one spreadsheet document
type SheetTarget struct {
	SpreadsheetID string
	Worksheet     string
}

// SheetsConfig holds spreadsheet credentials, targets and the remote write policy
type SheetsConfig struct {
	CredentialsJSON     []byte
	CredentialsSource   string
	ServiceAccountEmail string

	Transcripts SheetTarget
	Webhook     SheetTarget

	RetryAttempts int
	Timeout       time.Duration
	RetryDelay    time.Duration
}

// MinIOConfig configures the optional object-storage mirror for backups
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether a MinIO endpoint was configured
func (m MinIOConfig) Enabled() bool {
	return m.Endpoint != ""
}

// BackupConfig configures where degraded writes land
type BackupConfig struct {
	Dir   string
	MinIO MinIOConfig
}

// WebhookConfig configures the webhook receiver
type WebhookConfig struct {
	SchemaFile string
}

// MonitoringConfig holds optional error-reporting and alerting endpoints
type MonitoringConfig struct {
	SentryDSN         string
	SlackWebhookURL   string
	DiscordWebhookURL string
	CustomWebhookURL  string
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// EnvironmentReport returns, per known variable, whether it was set.
// Values are never exposed.
func (c *Config) EnvironmentReport() map[string]bool {
	report := make(map[string]bool, len(reportedVariables))
	for _, name := range reportedVariables {
		report[name] = c.present[name]
	}
	return report
}

// Summary returns a loggable view of the configuration without secrets
func (c *Config) Summary() map[string]interface{} {
	return map[string]interface{}{
		"environment":            c.Environment,
		"version":                c.Version,
		"log_level":              c.LogLevel,
		"address":                c.Server.Host + ":" + c.Server.Port,
		"transcription_provider": c.Transcription.Provider,
		"transcription_model":    c.Transcription.Model,
		"max_upload_bytes":       c.Upload.MaxBytes,
		"transcript_sheet":       c.Sheets.Transcripts.SpreadsheetID,
		"transcript_worksheet":   c.Sheets.Transcripts.Worksheet,
		"webhook_sheet":          c.Sheets.Webhook.SpreadsheetID,
		"webhook_worksheet":      c.Sheets.Webhook.Worksheet,
		"credentials_source":     c.Sheets.CredentialsSource,
		"service_account":        c.Sheets.ServiceAccountEmail,
		"backup_dir":             c.Backup.Dir,
		"minio_enabled":          c.Backup.MinIO.Enabled(),
		"sentry_enabled":         c.Monitoring.SentryDSN != "",
	}
}
