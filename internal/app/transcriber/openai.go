package transcriber

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"
)

const providerOpenAI = "openai"

// OpenAIConfig configures the OpenAI audio transcription endpoint
type OpenAIConfig struct {
	APIKey   string
	BaseURL  string
	Model    string
	Language string
}

// OpenAIProvider transcribes through the OpenAI audio API
type OpenAIProvider struct {
	client *openai.Client
	config OpenAIConfig
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config OpenAIConfig) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	if config.Model == "" {
		config.Model = openai.Whisper1
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}
}

// Transcribe sends the file to the audio transcription endpoint
func (p *OpenAIProvider) Transcribe(ctx context.Context, req *Request) (*Result, error) {
	if err := validateRequest(providerOpenAI, req); err != nil {
		return nil, err
	}
	if _, err := os.Stat(req.FilePath); err != nil {
		return nil, &TranscriptionError{
			Code:     "file_not_found",
			Message:  fmt.Sprintf("input file not accessible: %v", err),
			Provider: providerOpenAI,
			Err:      err,
		}
	}

	start := time.Now()
	language := req.Language
	if language == "" {
		language = p.config.Language
	}

	resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    p.config.Model,
		FilePath: req.FilePath,
		Language: language,
	})
	if err != nil {
		return nil, classifyOpenAIError(err)
	}

	if resp.Text == "" {
		return nil, &TranscriptionError{
			Code:     "empty_transcription",
			Message:  "no transcription text found in response",
			Provider: providerOpenAI,
		}
	}

	return &Result{
		Text:           resp.Text,
		Language:       firstNonEmpty(resp.Language, language),
		Duration:       resp.Duration,
		Provider:       providerOpenAI,
		Model:          p.config.Model,
		ProcessingTime: time.Since(start),
	}, nil
}

// Info returns provider metadata
func (p *OpenAIProvider) Info() Info {
	return Info{Name: providerOpenAI, Model: p.config.Model}
}

// HealthCheck lists models to verify the key and endpoint
func (p *OpenAIProvider) HealthCheck(ctx context.Context) error {
	if _, err := p.client.ListModels(ctx); err != nil {
		return classifyOpenAIError(err)
	}
	return nil
}

func classifyOpenAIError(err error) *TranscriptionError {
	te := &TranscriptionError{
		Code:     "api_error",
		Message:  err.Error(),
		Provider: providerOpenAI,
		Err:      err,
	}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		te.Code = "timeout"
		te.Retryable = true
	case errors.As(err, &apiErr):
		te.Retryable = apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
		if apiErr.HTTPStatusCode == 401 {
			te.Code = "unauthorized"
		}
	case errors.As(err, &reqErr):
		te.Retryable = reqErr.HTTPStatusCode >= 500
	default:
		te.Code = "request_failed"
		te.Retryable = true
	}
	return te
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
