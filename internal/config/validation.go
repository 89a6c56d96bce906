package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Validate checks that every required value is present and every bound is sane.
// All problems are reported together.
func (c *Config) Validate() error {
	var problems []string
	check := func(err error) {
		if err != nil {
			problems = append(problems, err.Error())
		}
	}

	check(ValidatePort(c.Server.Port, "server"))

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("unsupported LOG_LEVEL %q (debug, info, warn, error)", c.LogLevel))
	}

	if c.Sheets.Transcripts.SpreadsheetID == "" {
		problems = append(problems, "GOOGLE_SHEET_ID is required")
	}
	if len(c.Sheets.CredentialsJSON) == 0 {
		problems = append(problems, "spreadsheet credentials are required (GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_KEY or GOOGLE_APPLICATION_CREDENTIALS)")
	}
	if c.Sheets.Transcripts.Worksheet == "" || c.Sheets.Webhook.Worksheet == "" {
		problems = append(problems, "worksheet names must not be empty")
	}

	switch c.Transcription.Provider {
	case ProviderOpenAI:
		check(ValidateAPIKey(c.Transcription.OpenAIAPIKey, "OpenAI"))
		if c.Transcription.OpenAIBaseURL != "" {
			check(ValidateURL(c.Transcription.OpenAIBaseURL, "OPENAI_BASE_URL"))
		}
	case ProviderWhisperServer:
		check(ValidateURL(c.Transcription.WhisperServerURL, "WHISPER_SERVER_URL"))
	default:
		problems = append(problems, fmt.Sprintf("unsupported TRANSCRIPTION_PROVIDER %q (supported: %s, %s)",
			c.Transcription.Provider, ProviderOpenAI, ProviderWhisperServer))
	}

	check(ValidateTimeout(c.Transcription.Timeout, "transcription", 30*time.Minute))
	check(ValidateTimeout(c.Sheets.Timeout, "spreadsheet", 2*time.Minute))
	check(ValidateRetries(c.Sheets.RetryAttempts, "spreadsheet"))
	check(ValidateRetryDelay(c.Sheets.RetryDelay, "spreadsheet"))

	if c.Upload.MaxBytes <= 0 {
		problems = append(problems, "MAX_UPLOAD_MB must be positive")
	}
	if c.Upload.TempDir == "" || c.Upload.TranscriptDir == "" || c.Backup.Dir == "" {
		problems = append(problems, "upload, transcript and backup directories must not be empty")
	}

	if c.Backup.MinIO.Enabled() && (c.Backup.MinIO.AccessKey == "" || c.Backup.MinIO.SecretKey == "") {
		problems = append(problems, "MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when MINIO_ENDPOINT is set")
	}

	for name, url := range map[string]string{
		"SLACK_WEBHOOK_URL":   c.Monitoring.SlackWebhookURL,
		"DISCORD_WEBHOOK_URL": c.Monitoring.DiscordWebhookURL,
		"CUSTOM_WEBHOOK_URL":  c.Monitoring.CustomWebhookURL,
	} {
		if url != "" {
			check(ValidateURL(url, name))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ValidateTimeout validates timeout duration
func ValidateTimeout(timeout time.Duration, name string, max time.Duration) error {
	if timeout <= 0 {
		return fmt.Errorf("%s timeout must be positive", name)
	}
	if timeout > max {
		return fmt.Errorf("%s timeout too large (max %s)", name, max)
	}
	return nil
}

// ValidateRetries validates attempt count
func ValidateRetries(attempts int, name string) error {
	if attempts < 1 {
		return fmt.Errorf("%s retry attempts must be at least 1", name)
	}
	if attempts > 10 {
		return fmt.Errorf("%s retry attempts too high (max 10)", name)
	}
	return nil
}

// ValidateRetryDelay validates retry delay
func ValidateRetryDelay(delay time.Duration, name string) error {
	if delay < 0 {
		return fmt.Errorf("%s retry delay cannot be negative", name)
	}
	if delay > time.Minute {
		return fmt.Errorf("%s retry delay too high (max 60 seconds)", name)
	}
	return nil
}

// ValidateAPIKey validates API key format. The key itself never appears in the error.
func ValidateAPIKey(apiKey string, keyType string) error {
	if apiKey == "" {
		return fmt.Errorf("%s API key is required", keyType)
	}

	switch keyType {
	case "OpenAI":
		if !strings.HasPrefix(apiKey, "sk-") {
			return fmt.Errorf("invalid OpenAI API key format: must start with 'sk-'")
		}
		if len(apiKey) < 20 {
			return fmt.Errorf("invalid OpenAI API key format: too short")
		}
	}

	return nil
}

// ValidateURL validates URL format
func ValidateURL(url string, name string) error {
	if url == "" {
		return fmt.Errorf("%s URL is required", name)
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%s URL must start with http:// or https://", name)
	}

	return nil
}

// ValidatePort validates port number
func ValidatePort(port string, name string) error {
	if port == "" {
		return fmt.Errorf("%s port is required", name)
	}

	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("%s port invalid", name)
	}

	return nil
}
