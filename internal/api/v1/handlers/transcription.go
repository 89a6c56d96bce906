package handlers

import (
	"encoding/base64"
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"transcript-sheets/internal/api/errors"
	"transcript-sheets/internal/api/middleware"
	"transcript-sheets/internal/api/v1/dto"
	"transcript-sheets/internal/api/v1/services"
)

// TranscriptionHandler handles transcription-related API endpoints
type TranscriptionHandler struct {
	service services.TranscriptionService
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService) *TranscriptionHandler {
	return &TranscriptionHandler{
		service: service,
	}
}

// Transcribe handles POST /transcribe
// Transcribes a base64 encoded upload and appends the text to the transcript worksheet
//
// @Summary Transcribe an audio or video file
// @Description Decodes file_data, transcribes it with the configured provider and appends a row to the transcript worksheet. When the spreadsheet cannot be reached the row is written to a local backup and degraded is true.
// @Tags transcription
// @Accept json
// @Produce json
// @Param request body dto.TranscribeRequest true "Base64 encoded file with its MIME type and name"
// @Success 200 {object} dto.TranscribeResponse "Transcription stored"
// @Failure 400 {object} errors.APIError "file_data is not valid base64"
// @Failure 413 {object} errors.APIError "File exceeds the upload limit"
// @Failure 422 {object} errors.APIError "Missing field or unsupported MIME type"
// @Failure 500 {object} errors.APIError "Result could not be stored"
// @Failure 502 {object} errors.APIError "Transcription provider failed"
// @Router /transcribe [post]
func (h *TranscriptionHandler) Transcribe(c *gin.Context) {
	var req dto.TranscribeRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	data, err := decodeFileData(req.FileData)
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("file_data is not valid base64"))
		return
	}

	response, err := h.service.Transcribe(c.Request.Context(), &dto.Upload{
		Data:     data,
		MimeType: req.MimeType,
		FileName: req.FileName,
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Upload handles POST /transcribe/upload
// Same pipeline as Transcribe for multipart form uploads
//
// @Summary Transcribe an uploaded file
// @Description Accepts a multipart form with a file field. The MIME type comes from the mime_type field or the part's Content-Type header.
// @Tags transcription
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio or video file"
// @Param mime_type formData string false "MIME type override"
// @Success 200 {object} dto.TranscribeResponse "Transcription stored"
// @Failure 400 {object} errors.APIError "No file uploaded"
// @Failure 413 {object} errors.APIError "File exceeds the upload limit"
// @Failure 422 {object} errors.APIError "Unsupported MIME type"
// @Failure 500 {object} errors.APIError "Result could not be stored"
// @Failure 502 {object} errors.APIError "Transcription provider failed"
// @Router /transcribe/upload [post]
func (h *TranscriptionHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		middleware.HandleError(c, bodyError(err, "No file uploaded"))
		return
	}
	defer file.Close()

	mimeType := c.PostForm("mime_type")
	if mimeType == "" {
		mimeType = header.Header.Get("Content-Type")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		middleware.HandleError(c, bodyError(err, "Failed to read uploaded file"))
		return
	}

	response, err := h.service.Transcribe(c.Request.Context(), &dto.Upload{
		Data:     data,
		MimeType: mimeType,
		FileName: header.Filename,
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// decodeFileData accepts plain base64, unpadded base64 and data URLs
func decodeFileData(value string) ([]byte, error) {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "data:") {
		if _, payload, ok := strings.Cut(value, ","); ok {
			value = payload
		}
	}

	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		if raw, rawErr := base64.RawStdEncoding.DecodeString(value); rawErr == nil {
			return raw, nil
		}
		return nil, err
	}
	return data, nil
}

// bodyError maps an oversized body to 413 and anything else to a bad request
func bodyError(err error, message string) error {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return errors.NewRequestTooLargeError(tooLarge.Limit)
	}
	return errors.NewBadRequestError(message)
}
