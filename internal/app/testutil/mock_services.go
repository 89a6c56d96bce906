package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"transcript-sheets/internal/api/v1/dto"
)

// MockServices contains all mock services for testing
type MockServices struct {
	TranscriptionService *MockTranscriptionService
	WebhookService       *MockWebhookService
	HealthService        *MockHealthService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	return &MockServices{
		TranscriptionService: NewMockTranscriptionService(t),
		WebhookService:       NewMockWebhookService(t),
		HealthService:        NewMockHealthService(t),
	}
}

// MockTranscriptionService is a mock implementation of TranscriptionService
type MockTranscriptionService struct {
	mock.Mock
}

func NewMockTranscriptionService(t *testing.T) *MockTranscriptionService {
	m := &MockTranscriptionService{}
	m.Mock.Test(t)
	return m
}

func (m *MockTranscriptionService) Transcribe(ctx context.Context, upload *dto.Upload) (*dto.TranscribeResponse, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TranscribeResponse), args.Error(1)
}

func (m *MockTranscriptionService) TranscribeFile(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

// MockWebhookService is a mock implementation of WebhookService
type MockWebhookService struct {
	mock.Mock
}

func NewMockWebhookService(t *testing.T) *MockWebhookService {
	m := &MockWebhookService{}
	m.Mock.Test(t)
	return m
}

func (m *MockWebhookService) Receive(ctx context.Context, provider string, body []byte) (*dto.WebhookResponse, error) {
	args := m.Called(ctx, provider, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.WebhookResponse), args.Error(1)
}

func (m *MockWebhookService) Test(ctx context.Context, body []byte) (*dto.WebhookTestResponse, error) {
	args := m.Called(ctx, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.WebhookTestResponse), args.Error(1)
}

func (m *MockWebhookService) Validate(ctx context.Context) *dto.WebhookValidationResponse {
	return m.Called(ctx).Get(0).(*dto.WebhookValidationResponse)
}

// MockHealthService is a mock implementation of HealthService
type MockHealthService struct {
	mock.Mock
}

func NewMockHealthService(t *testing.T) *MockHealthService {
	m := &MockHealthService{}
	m.Mock.Test(t)
	return m
}

func (m *MockHealthService) Health(ctx context.Context) *dto.HealthResponse {
	return m.Called(ctx).Get(0).(*dto.HealthResponse)
}

func (m *MockHealthService) Status(ctx context.Context) *dto.StatusResponse {
	return m.Called(ctx).Get(0).(*dto.StatusResponse)
}
