package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCredentials = `{"type":"service_account","client_email":"transcript@example.iam.gserviceaccount.com"}`

func mapEnv(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func baseEnv() map[string]string {
	return map[string]string{
		"GOOGLE_SHEET_ID":             "sheet-123",
		"GOOGLE_SERVICE_ACCOUNT_JSON": testCredentials,
		"OPENAI_API_KEY":              "sk-1234567890abcdef1234567890abcdef",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(mapEnv(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, ProviderOpenAI, cfg.Transcription.Provider)
	assert.Equal(t, int64(100<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, DefaultTranscriptionTimeout+writeTimeoutSlack, cfg.Server.WriteTimeout)
	assert.Equal(t, SheetTarget{SpreadsheetID: "sheet-123", Worksheet: DefaultTranscriptsWorksheet}, cfg.Sheets.Transcripts)
	assert.Equal(t, SheetTarget{SpreadsheetID: "sheet-123", Worksheet: DefaultWebhookWorksheet}, cfg.Sheets.Webhook)
	assert.Equal(t, "transcript@example.iam.gserviceaccount.com", cfg.Sheets.ServiceAccountEmail)
	assert.Equal(t, "GOOGLE_SERVICE_ACCOUNT_JSON", cfg.Sheets.CredentialsSource)
	assert.Equal(t, DefaultSheetsRetryAttempts, cfg.Sheets.RetryAttempts)
	assert.False(t, cfg.Backup.MinIO.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	env := baseEnv()
	env["VIDEOASK_GOOGLE_SHEET_ID"] = "sheet-456"
	env["VIDEOASK_GSHEET_WORKSHEET_NAME"] = "Responses"
	env["GOOGLE_WORKSHEET_NAME"] = "Legacy Name"
	env["MAX_UPLOAD_MB"] = "25"
	env["SHEETS_TIMEOUT"] = "3s"
	env["TRANSCRIPTION_PROVIDER"] = "WHISPER_SERVER"
	env["WHISPER_SERVER_URL"] = "http://whisper.local:8080"

	cfg, err := Load(mapEnv(env))
	require.NoError(t, err)

	assert.Equal(t, "Legacy Name", cfg.Sheets.Transcripts.Worksheet)
	assert.Equal(t, SheetTarget{SpreadsheetID: "sheet-456", Worksheet: "Responses"}, cfg.Sheets.Webhook)
	assert.Equal(t, int64(25<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, 3*time.Second, cfg.Sheets.Timeout)
	assert.Equal(t, ProviderWhisperServer, cfg.Transcription.Provider)
}

func TestLoadCredentialSources(t *testing.T) {
	t.Run("base64 key", func(t *testing.T) {
		env := baseEnv()
		delete(env, "GOOGLE_SERVICE_ACCOUNT_JSON")
		env["GOOGLE_SERVICE_ACCOUNT_KEY"] = base64.StdEncoding.EncodeToString([]byte(testCredentials))

		cfg, err := Load(mapEnv(env))
		require.NoError(t, err)
		assert.JSONEq(t, testCredentials, string(cfg.Sheets.CredentialsJSON))
		assert.Equal(t, "GOOGLE_SERVICE_ACCOUNT_KEY", cfg.Sheets.CredentialsSource)
	})

	t.Run("credentials file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sa.json")
		require.NoError(t, os.WriteFile(path, []byte(testCredentials), 0o600))

		env := baseEnv()
		delete(env, "GOOGLE_SERVICE_ACCOUNT_JSON")
		env["GOOGLE_APPLICATION_CREDENTIALS"] = path

		cfg, err := Load(mapEnv(env))
		require.NoError(t, err)
		assert.Equal(t, path, cfg.Sheets.CredentialsSource)
	})

	t.Run("invalid base64", func(t *testing.T) {
		env := baseEnv()
		delete(env, "GOOGLE_SERVICE_ACCOUNT_JSON")
		env["GOOGLE_SERVICE_ACCOUNT_KEY"] = "%%%"

		_, err := Load(mapEnv(env))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not valid base64")
	})
}

func TestLoadFailsFast(t *testing.T) {
	testCases := []struct {
		name          string
		mutate        func(map[string]string)
		errorContains string
	}{
		{
			name:          "missing sheet id",
			mutate:        func(env map[string]string) { delete(env, "GOOGLE_SHEET_ID") },
			errorContains: "GOOGLE_SHEET_ID is required",
		},
		{
			name: "missing credentials",
			mutate: func(env map[string]string) {
				delete(env, "GOOGLE_SERVICE_ACCOUNT_JSON")
				env["GOOGLE_APPLICATION_CREDENTIALS"] = filepath.Join(os.TempDir(), "does-not-exist.json")
			},
			errorContains: "spreadsheet credentials are required",
		},
		{
			name:          "missing openai key",
			mutate:        func(env map[string]string) { delete(env, "OPENAI_API_KEY") },
			errorContains: "OpenAI API key is required",
		},
		{
			name:          "unknown provider",
			mutate:        func(env map[string]string) { env["TRANSCRIPTION_PROVIDER"] = "carrier-pigeon" },
			errorContains: "unsupported TRANSCRIPTION_PROVIDER",
		},
		{
			name:          "unknown log level",
			mutate:        func(env map[string]string) { env["LOG_LEVEL"] = "chatty" },
			errorContains: "unsupported LOG_LEVEL",
		},
		{
			name:          "bad duration",
			mutate:        func(env map[string]string) { env["SHEETS_TIMEOUT"] = "soon" },
			errorContains: "SHEETS_TIMEOUT must be a duration",
		},
		{
			name:          "bad upload size",
			mutate:        func(env map[string]string) { env["MAX_UPLOAD_MB"] = "0" },
			errorContains: "MAX_UPLOAD_MB must be positive",
		},
		{
			name: "minio without keys",
			mutate: func(env map[string]string) {
				env["MINIO_ENDPOINT"] = "localhost:9000"
			},
			errorContains: "MINIO_ACCESS_KEY",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := baseEnv()
			tc.mutate(env)

			cfg, err := Load(mapEnv(env))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tc.errorContains)
		})
	}
}

func TestLoadErrorsNeverLeakSecrets(t *testing.T) {
	env := baseEnv()
	env["OPENAI_API_KEY"] = "not-a-real-key-but-secret"

	_, err := Load(mapEnv(env))
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "not-a-real-key-but-secret")
}

func TestEnvironmentReport(t *testing.T) {
	cfg, err := Load(mapEnv(baseEnv()))
	require.NoError(t, err)

	report := cfg.EnvironmentReport()
	assert.True(t, report["GOOGLE_SHEET_ID"])
	assert.True(t, report["OPENAI_API_KEY"])
	assert.False(t, report["SENTRY_DSN"])
	assert.Len(t, report, len(reportedVariables))

	summary := cfg.Summary()
	for key, value := range summary {
		if s, ok := value.(string); ok {
			assert.NotContains(t, s, "sk-1234567890", key)
		}
	}
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort("8080", "server"))
	assert.Error(t, ValidatePort("", "server"))
	assert.Error(t, ValidatePort("http", "server"))
	assert.Error(t, ValidatePort("70000", "server"))
}

func TestLoadMonitoringWithoutCredentials(t *testing.T) {
	cfg := LoadMonitoring(mapEnv(map[string]string{
		"SLACK_WEBHOOK_URL": " https://hooks.slack.com/services/T/B/X ",
	}))

	assert.Equal(t, "https://hooks.slack.com/services/T/B/X", cfg.SlackWebhookURL)
	assert.Empty(t, cfg.DiscordWebhookURL)
	assert.Empty(t, cfg.SentryDSN)
}
