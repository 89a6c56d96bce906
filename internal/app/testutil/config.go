package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"transcript-sheets/internal/config"
)

// TestCredentials is a syntactically valid service-account key with no secrets
const TestCredentials = `{"type":"service_account","client_email":"transcript@example.iam.gserviceaccount.com"}`

// NewTestConfig loads a valid configuration whose working directories live
// under t.TempDir(). overrides replace or add environment variables.
func NewTestConfig(t *testing.T, overrides map[string]string) *config.Config {
	t.Helper()
	dir := t.TempDir()

	env := map[string]string{
		"GOOGLE_SHEET_ID":             "sheet-123",
		"GOOGLE_SERVICE_ACCOUNT_JSON": TestCredentials,
		"OPENAI_API_KEY":              "sk-test-1234567890abcdef1234567890",
		"APP_ENV":                     "test",
		"UPLOAD_FOLDER":               filepath.Join(dir, "uploads"),
		"TRANSCRIPTS_DIR":             filepath.Join(dir, "transcripts"),
		"BACKUP_DIR":                  filepath.Join(dir, "webhook_data"),
		"SHEETS_RETRY_ATTEMPTS":       "2",
		"SHEETS_RETRY_DELAY":          "1ms",
		"SHEETS_TIMEOUT":              "1s",
	}
	for k, v := range overrides {
		env[k] = v
	}

	cfg, err := config.Load(func(key string) string { return env[key] })
	require.NoError(t, err)
	return cfg
}
