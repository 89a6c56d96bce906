// Package transcriber talks to external speech-to-text services.
package transcriber

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Transcriber converts a local audio or video file into text
type Transcriber interface {
	Transcribe(ctx context.Context, req *Request) (*Result, error)
	Info() Info
	HealthCheck(ctx context.Context) error
}

// Request describes one transcription job
type Request struct {
	FilePath string
	MimeType string
	Language string
}

// Result is the provider output
type Result struct {
	Text           string
	Language       string
	Duration       float64
	Provider       string
	Model          string
	ProcessingTime time.Duration
}

// Info identifies a provider
type Info struct {
	Name  string `json:"name"`
	Model string `json:"model"`
}

// TranscriptionError represents provider-specific errors. Message may contain
// upstream detail and is only ever logged.
type TranscriptionError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Provider  string `json:"provider"`
	Retryable bool   `json:"retryable"`
	Err       error  `json:"-"`
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

// IsTranscriptionError reports whether err is (or wraps) a TranscriptionError
func IsTranscriptionError(err error) bool {
	var te *TranscriptionError
	return errors.As(err, &te)
}

func validateRequest(provider string, req *Request) error {
	if req == nil || req.FilePath == "" {
		return &TranscriptionError{
			Code:     "invalid_input",
			Message:  "input file path is required",
			Provider: provider,
		}
	}
	return nil
}
