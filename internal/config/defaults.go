package config

import "time"

// Default configuration values
const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = "8080"
	DefaultEnvironment = "production"
	DefaultVersion     = "1.0.0"
	DefaultLogLevel    = "info"

	DefaultReadTimeout = 60 * time.Second
	DefaultIdleTimeout = 120 * time.Second

	DefaultProvider             = "openai"
	DefaultLanguage             = "en"
	DefaultTranscriptionTimeout = 10 * time.Minute
	DefaultMaxUploadMB          = 100
	DefaultUploadFolder         = "uploads"
	DefaultTranscriptsDir       = "transcripts"
	DefaultBackupDir            = "webhook_data"
	DefaultCredentialsFile      = "service-account.json"
	DefaultTranscriptsWorksheet = "TRANSCRIPT FINAL"
	DefaultWebhookWorksheet     = "VideoAsk Responses"
	DefaultSheetsRetryAttempts  = 3
	DefaultSheetsTimeout        = 10 * time.Second
	DefaultSheetsRetryDelay     = 500 * time.Millisecond
	DefaultMinIOBucket          = "transcript-backups"
	writeTimeoutSlack           = time.Minute
)

// TempUploadPrefix names the server's in-flight upload files inside UPLOAD_FOLDER
const TempUploadPrefix = "upload-"

// Supported transcription providers
const (
	ProviderOpenAI        = "openai"
	ProviderWhisperServer = "whisper_server"
)

// reportedVariables are surfaced (as presence flags only) by the webhook validation endpoint
var reportedVariables = []string{
	"GOOGLE_SHEET_ID",
	"GSHEET_WORKSHEET_NAME",
	"VIDEOASK_GOOGLE_SHEET_ID",
	"VIDEOASK_GSHEET_WORKSHEET_NAME",
	"GOOGLE_SERVICE_ACCOUNT_JSON",
	"GOOGLE_SERVICE_ACCOUNT_KEY",
	"GOOGLE_APPLICATION_CREDENTIALS",
	"GOOGLE_SERVICE_ACCOUNT_EMAIL",
	"TRANSCRIPTION_PROVIDER",
	"WHISPER_MODEL",
	"OPENAI_API_KEY",
	"WHISPER_SERVER_URL",
	"MAX_UPLOAD_MB",
	"SENTRY_DSN",
	"SLACK_WEBHOOK_URL",
	"DISCORD_WEBHOOK_URL",
	"CUSTOM_WEBHOOK_URL",
}
