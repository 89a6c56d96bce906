package services

import (
	"context"

	"transcript-sheets/internal/api/v1/dto"
)

// TranscriptionService validates uploads, transcribes them and stores the text
type TranscriptionService interface {
	Transcribe(ctx context.Context, upload *dto.Upload) (*dto.TranscribeResponse, error)
	// TranscribeFile runs a file already on disk through the same pipeline
	TranscribeFile(ctx context.Context, path string) (degraded bool, err error)
}

// WebhookService maps third-party form payloads into spreadsheet rows
type WebhookService interface {
	Receive(ctx context.Context, provider string, body []byte) (*dto.WebhookResponse, error)
	Test(ctx context.Context, body []byte) (*dto.WebhookTestResponse, error)
	Validate(ctx context.Context) *dto.WebhookValidationResponse
}

// HealthService reports liveness and runtime status
type HealthService interface {
	Health(ctx context.Context) *dto.HealthResponse
	Status(ctx context.Context) *dto.StatusResponse
}
