package dto

import (
	"strings"

	"transcript-sheets/internal/api/errors"
)

// TranscribeRequest is the JSON body of POST /transcribe
type TranscribeRequest struct {
	FileData string `json:"file_data" binding:"required"`
	MimeType string `json:"mime_type" binding:"required,max=255"`
	FileName string `json:"file_name" binding:"required,max=255"`
}

// Validate performs domain-specific validation
func (r *TranscribeRequest) Validate() error {
	validationErrors := make(map[string]string)

	if strings.TrimSpace(r.FileData) == "" {
		validationErrors["file_data"] = "is required"
	}
	if strings.TrimSpace(r.FileName) == "" {
		validationErrors["file_name"] = "is required"
	}
	if strings.TrimSpace(r.MimeType) == "" {
		validationErrors["mime_type"] = "is required"
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Invalid transcription request", validationErrors)
	}

	return nil
}

// Upload is a decoded file handed to the transcription service
type Upload struct {
	Data     []byte
	MimeType string
	FileName string
}

// TranscribeResponse is returned for a successful transcription
type TranscribeResponse struct {
	Transcription string   `json:"transcription"`
	FileName      string   `json:"file_name"`
	SheetsStatus  string   `json:"sheets_status"`
	Degraded      bool     `json:"degraded"`
	BackupFiles   []string `json:"backup_files,omitempty"`
	WorksheetName string   `json:"worksheet_name"`
	Provider      string   `json:"provider,omitempty"`
	Model         string   `json:"model,omitempty"`
}
