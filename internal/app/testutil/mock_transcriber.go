package testutil

import (
	"context"
	"os"
	"sync"

	"github.com/stretchr/testify/mock"

	"transcript-sheets/internal/app/transcriber"
)

// MockTranscriber is a testify mock of transcriber.Transcriber.
// Each call also records whether the input file existed at call time.
type MockTranscriber struct {
	mock.Mock

	mu          sync.Mutex
	SeenFiles   []string
	FileExisted []bool
}

// NewMockTranscriber creates a mock reporting the given provider info
func NewMockTranscriber() *MockTranscriber {
	m := &MockTranscriber{}
	m.On("Info").Return(transcriber.Info{Name: "mock", Model: "mock-1"}).Maybe()
	return m
}

// Transcribe implements transcriber.Transcriber
func (m *MockTranscriber) Transcribe(ctx context.Context, req *transcriber.Request) (*transcriber.Result, error) {
	m.mu.Lock()
	_, err := os.Stat(req.FilePath)
	m.SeenFiles = append(m.SeenFiles, req.FilePath)
	m.FileExisted = append(m.FileExisted, err == nil)
	m.mu.Unlock()

	args := m.Called(ctx, req)
	var result *transcriber.Result
	if r := args.Get(0); r != nil {
		result = r.(*transcriber.Result)
	}
	return result, args.Error(1)
}

// Info implements transcriber.Transcriber
func (m *MockTranscriber) Info() transcriber.Info {
	return m.Called().Get(0).(transcriber.Info)
}

// HealthCheck implements transcriber.Transcriber
func (m *MockTranscriber) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// TranscriptionResult builds the result the mock provider reports
func TranscriptionResult(text string) *transcriber.Result {
	return &transcriber.Result{
		Text:     text,
		Provider: "mock",
		Model:    "mock-1",
	}
}

// ReturnsText configures every Transcribe call to succeed with text
func (m *MockTranscriber) ReturnsText(text string) *MockTranscriber {
	m.On("Transcribe", mock.Anything, mock.Anything).Return(TranscriptionResult(text), nil)
	return m
}

// Fails configures every Transcribe call to fail with err
func (m *MockTranscriber) Fails(err error) *MockTranscriber {
	m.On("Transcribe", mock.Anything, mock.Anything).Return(nil, err)
	return m
}
