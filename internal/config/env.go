package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from the first .env file found.
// A missing file is not an error; variables may be set by the platform.
func LoadEnv() (string, error) {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}

	return "", nil
}

// Load builds the configuration from getenv and validates it.
// It fails fast: a returned error means the service must not start.
func Load(getenv func(string) string) (*Config, error) {
	env := envReader{getenv: getenv}

	cfg := &Config{
		Environment: env.str("APP_ENV", DefaultEnvironment),
		Version:     env.str("APP_VERSION", DefaultVersion),
		LogLevel:    strings.ToLower(env.str("LOG_LEVEL", DefaultLogLevel)),
		Server: ServerConfig{
			Host:        env.str("HOST", DefaultHost),
			Port:        env.str("PORT", DefaultPort),
			ReadTimeout: env.duration("SERVER_READ_TIMEOUT", DefaultReadTimeout),
			IdleTimeout: env.duration("SERVER_IDLE_TIMEOUT", DefaultIdleTimeout),
		},
		Transcription: TranscriptionConfig{
			Provider:         strings.ToLower(env.str("TRANSCRIPTION_PROVIDER", DefaultProvider)),
			Model:            env.str("WHISPER_MODEL", ""),
			Language:         env.str("WHISPER_LANGUAGE", DefaultLanguage),
			OpenAIAPIKey:     env.str("OPENAI_API_KEY", ""),
			OpenAIBaseURL:    env.str("OPENAI_BASE_URL", ""),
			WhisperServerURL: env.str("WHISPER_SERVER_URL", ""),
			Timeout:          env.duration("TRANSCRIPTION_TIMEOUT", DefaultTranscriptionTimeout),
		},
		Upload: UploadConfig{
			MaxBytes:      int64(env.integer("MAX_UPLOAD_MB", DefaultMaxUploadMB)) << 20,
			TempDir:       env.str("UPLOAD_FOLDER", DefaultUploadFolder),
			TranscriptDir: env.str("TRANSCRIPTS_DIR", DefaultTranscriptsDir),
		},
		Sheets: SheetsConfig{
			ServiceAccountEmail: env.str("GOOGLE_SERVICE_ACCOUNT_EMAIL", ""),
			RetryAttempts:       env.integer("SHEETS_RETRY_ATTEMPTS", DefaultSheetsRetryAttempts),
			Timeout:             env.duration("SHEETS_TIMEOUT", DefaultSheetsTimeout),
			RetryDelay:          env.duration("SHEETS_RETRY_DELAY", DefaultSheetsRetryDelay),
		},
		Backup: BackupConfig{
			Dir: env.str("BACKUP_DIR", DefaultBackupDir),
			MinIO: MinIOConfig{
				Endpoint:  env.str("MINIO_ENDPOINT", ""),
				AccessKey: env.str("MINIO_ACCESS_KEY", ""),
				SecretKey: env.str("MINIO_SECRET_KEY", ""),
				Bucket:    env.str("MINIO_BUCKET", DefaultMinIOBucket),
				UseSSL:    env.str("MINIO_USE_SSL", "") == "true",
			},
		},
		Webhook: WebhookConfig{
			SchemaFile: env.str("WEBHOOK_SCHEMA_FILE", ""),
		},
		Monitoring: LoadMonitoring(getenv),
	}

	cfg.Server.WriteTimeout = env.duration("SERVER_WRITE_TIMEOUT", cfg.Transcription.Timeout+writeTimeoutSlack)

	sheetID := env.str("GOOGLE_SHEET_ID", "")
	worksheet := env.str("GSHEET_WORKSHEET_NAME", env.str("GOOGLE_WORKSHEET_NAME", DefaultTranscriptsWorksheet))
	cfg.Sheets.Transcripts = SheetTarget{SpreadsheetID: sheetID, Worksheet: worksheet}
	cfg.Sheets.Webhook = SheetTarget{
		SpreadsheetID: env.str("VIDEOASK_GOOGLE_SHEET_ID", sheetID),
		Worksheet:     env.str("VIDEOASK_GSHEET_WORKSHEET_NAME", DefaultWebhookWorksheet),
	}

	if err := env.err(); err != nil {
		return nil, err
	}

	creds, source, err := loadCredentials(getenv)
	if err != nil {
		return nil, err
	}
	cfg.Sheets.CredentialsJSON = creds
	cfg.Sheets.CredentialsSource = source
	if cfg.Sheets.ServiceAccountEmail == "" {
		cfg.Sheets.ServiceAccountEmail = clientEmail(creds)
	}

	cfg.present = make(map[string]bool, len(reportedVariables))
	for _, name := range reportedVariables {
		cfg.present[name] = strings.TrimSpace(getenv(name)) != ""
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadMonitoring reads only the alerting settings. The check command uses it
// on hosts that carry no spreadsheet credentials.
func LoadMonitoring(getenv func(string) string) MonitoringConfig {
	return MonitoringConfig{
		SentryDSN:         strings.TrimSpace(getenv("SENTRY_DSN")),
		SlackWebhookURL:   strings.TrimSpace(getenv("SLACK_WEBHOOK_URL")),
		DiscordWebhookURL: strings.TrimSpace(getenv("DISCORD_WEBHOOK_URL")),
		CustomWebhookURL:  strings.TrimSpace(getenv("CUSTOM_WEBHOOK_URL")),
	}
}

// loadCredentials resolves service-account credentials from, in order, inline JSON,
// base64 encoded JSON, or a credentials file.
func loadCredentials(getenv func(string) string) ([]byte, string, error) {
	if raw := strings.TrimSpace(getenv("GOOGLE_SERVICE_ACCOUNT_JSON")); raw != "" {
		if !json.Valid([]byte(raw)) {
			return nil, "", fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_JSON is not valid JSON")
		}
		return []byte(raw), "GOOGLE_SERVICE_ACCOUNT_JSON", nil
	}

	if encoded := strings.TrimSpace(getenv("GOOGLE_SERVICE_ACCOUNT_KEY")); encoded != "" {
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, "", fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_KEY is not valid base64: %w", err)
		}
		if !json.Valid(decoded) {
			return nil, "", fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_KEY does not decode to JSON")
		}
		return decoded, "GOOGLE_SERVICE_ACCOUNT_KEY", nil
	}

	path := strings.TrimSpace(getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	if path == "" {
		path = DefaultCredentialsFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to read credentials file %s: %w", path, err)
	}
	if !json.Valid(data) {
		return nil, "", fmt.Errorf("credentials file %s is not valid JSON", path)
	}
	return data, path, nil
}

func clientEmail(creds []byte) string {
	if len(creds) == 0 {
		return ""
	}
	var key struct {
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal(creds, &key); err != nil {
		return ""
	}
	return key.ClientEmail
}

// envReader reads typed values and remembers the first parse error
type envReader struct {
	getenv func(string) string
	errs   []string
}

func (r *envReader) str(key, defaultValue string) string {
	if value := strings.TrimSpace(r.getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func (r *envReader) integer(key string, defaultValue int) int {
	value := strings.TrimSpace(r.getenv(key))
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		r.errs = append(r.errs, fmt.Sprintf("%s must be an integer", key))
		return defaultValue
	}
	return n
}

func (r *envReader) duration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(r.getenv(key))
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		r.errs = append(r.errs, fmt.Sprintf("%s must be a duration (e.g. 30s, 5m)", key))
		return defaultValue
	}
	return d
}

func (r *envReader) err() error {
	if len(r.errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(r.errs, "; "))
}
