package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const providerWhisperServer = "whisper_server"

// WhisperServerConfig represents configuration for a whisper.cpp server
type WhisperServerConfig struct {
	BaseURL       string
	InferencePath string
	Language      string
	Timeout       time.Duration
}

// whisperServerResponse is the json response_format body
type whisperServerResponse struct {
	Text     string  `json:"text,omitempty"`
	Language string  `json:"language,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

// WhisperServerProvider implements transcription via HTTP to a whisper-server instance
type WhisperServerProvider struct {
	config WhisperServerConfig
	client *http.Client
}

// NewWhisperServerProvider creates a new whisper-server HTTP provider
func NewWhisperServerProvider(config WhisperServerConfig) *WhisperServerProvider {
	if config.InferencePath == "" {
		config.InferencePath = "/inference"
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Minute
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &WhisperServerProvider{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// Transcribe uploads the file to the inference endpoint
func (p *WhisperServerProvider) Transcribe(ctx context.Context, req *Request) (*Result, error) {
	if err := validateRequest(providerWhisperServer, req); err != nil {
		return nil, err
	}
	start := time.Now()

	body, contentType, err := p.createMultipartForm(req)
	if err != nil {
		return nil, &TranscriptionError{
			Code:     "form_creation_failed",
			Message:  fmt.Sprintf("failed to create multipart form: %v", err),
			Provider: providerWhisperServer,
			Err:      err,
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+p.config.InferencePath, body)
	if err != nil {
		return nil, &TranscriptionError{
			Code:     "request_creation_failed",
			Message:  fmt.Sprintf("failed to create HTTP request: %v", err),
			Provider: providerWhisperServer,
			Err:      err,
		}
	}
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &TranscriptionError{
			Code:      "request_failed",
			Message:   fmt.Sprintf("HTTP request failed: %v", err),
			Provider:  providerWhisperServer,
			Retryable: true,
			Err:       err,
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TranscriptionError{
			Code:      "response_read_failed",
			Message:   fmt.Sprintf("failed to read response: %v", err),
			Provider:  providerWhisperServer,
			Retryable: true,
			Err:       err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &TranscriptionError{
			Code:      "api_error",
			Message:   fmt.Sprintf("API returned status %d: %s", resp.StatusCode, truncate(string(data), 200)),
			Provider:  providerWhisperServer,
			Retryable: resp.StatusCode >= 500,
		}
	}

	var parsed whisperServerResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &TranscriptionError{
			Code:     "response_parse_failed",
			Message:  fmt.Sprintf("failed to parse response: %v", err),
			Provider: providerWhisperServer,
			Err:      err,
		}
	}

	text := strings.TrimSpace(parsed.Text)
	if text == "" {
		return nil, &TranscriptionError{
			Code:     "empty_transcription",
			Message:  "no transcription text found in response",
			Provider: providerWhisperServer,
		}
	}

	return &Result{
		Text:           text,
		Language:       firstNonEmpty(parsed.Language, req.Language, p.config.Language),
		Duration:       parsed.Duration,
		Provider:       providerWhisperServer,
		Model:          "whisper-server",
		ProcessingTime: time.Since(start),
	}, nil
}

func (p *WhisperServerProvider) createMultipartForm(req *Request) (*bytes.Buffer, string, error) {
	file, err := os.Open(req.FilePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filepath.Base(req.FilePath))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to copy file content: %w", err)
	}

	params := map[string]string{
		"response_format": "json",
		"temperature":     "0.00",
	}
	if language := firstNonEmpty(req.Language, p.config.Language); language != "" {
		params["language"] = language
	}
	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}

// Info returns provider metadata
func (p *WhisperServerProvider) Info() Info {
	return Info{Name: providerWhisperServer, Model: "whisper-server"}
}

// HealthCheck verifies the server answers at its base URL
func (p *WhisperServerProvider) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.BaseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("whisper-server not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("whisper-server health check failed with status %d", resp.StatusCode)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
