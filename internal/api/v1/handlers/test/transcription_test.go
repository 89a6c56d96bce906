package test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"transcript-sheets/internal/api/errors"
	"transcript-sheets/internal/api/middleware"
	"transcript-sheets/internal/api/v1/dto"
	"transcript-sheets/internal/api/v1/routes"
	"transcript-sheets/internal/app/testutil"
)

const testUploadLimit = 1 << 20

func setupTestRouter(t *testing.T) (*gin.Engine, *testutil.MockServices) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.ErrorHandler(zap.NewNop()))

	mockServices := testutil.NewMockServices(t)
	routes.RegisterRoutes(router, &routes.ServiceContainer{
		TranscriptionService: mockServices.TranscriptionService,
		WebhookService:       mockServices.WebhookService,
		HealthService:        mockServices.HealthService,
		MaxUploadBytes:       testUploadLimit,
		WebhookBodyLimit:     64 << 10,
	})
	return router, mockServices
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestTranscriptionHandler_Transcribe(t *testing.T) {
	audio := []byte("ID3 fake mp3 bytes")

	tests := []struct {
		name           string
		body           string
		setupMocks     func(*testutil.MockServices)
		expectedStatus int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name: "successful transcription",
			body: mustJSON(t, dto.TranscribeRequest{
				FileData: base64.StdEncoding.EncodeToString(audio),
				MimeType: "audio/mpeg",
				FileName: "interview.mp3",
			}),
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("Transcribe", mock.Anything, &dto.Upload{
					Data:     audio,
					MimeType: "audio/mpeg",
					FileName: "interview.mp3",
				}).Return(&dto.TranscribeResponse{
					Transcription: "Hello world.",
					FileName:      "interview.mp3",
					SheetsStatus:  "success",
					WorksheetName: "TRANSCRIPT FINAL",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "Hello world.", body["transcription"])
				assert.Equal(t, "success", body["sheets_status"])
				assert.Equal(t, false, body["degraded"])
			},
		},
		{
			name: "data url prefix is accepted",
			body: mustJSON(t, dto.TranscribeRequest{
				FileData: "data:audio/mpeg;base64," + base64.StdEncoding.EncodeToString(audio),
				MimeType: "audio/mpeg",
				FileName: "interview.mp3",
			}),
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("Transcribe", mock.Anything, mock.MatchedBy(func(u *dto.Upload) bool {
					return bytes.Equal(u.Data, audio)
				})).Return(&dto.TranscribeResponse{Transcription: "Hi.", SheetsStatus: "degraded", Degraded: true}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, true, body["degraded"])
			},
		},
		{
			name:           "validation error - missing fields",
			body:           `{"mime_type":"audio/mpeg"}`,
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusUnprocessableEntity,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "validation", body["kind"])
				details := body["details"].(map[string]interface{})
				assert.Equal(t, "is required", details["file_data"])
				assert.Equal(t, "is required", details["file_name"])
			},
		},
		{
			name:           "invalid base64",
			body:           `{"file_data":"%%%not-base64","mime_type":"audio/mpeg","file_name":"a.mp3"}`,
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "bad_request", body["kind"])
			},
		},
		{
			name:           "malformed json",
			body:           `{"file_data":`,
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusUnprocessableEntity,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				details := body["details"].(map[string]interface{})
				assert.Equal(t, "invalid JSON format", details["request"])
			},
		},
		{
			name: "unsupported type from service",
			body: mustJSON(t, dto.TranscribeRequest{
				FileData: base64.StdEncoding.EncodeToString(audio),
				MimeType: "image/png",
				FileName: "photo.png",
			}),
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("Transcribe", mock.Anything, mock.Anything).
					Return(nil, errors.NewValidationError("Unsupported file type", map[string]string{"mime_type": "must be one of audio/mpeg"}))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "Unsupported file type", body["error"])
			},
		},
		{
			name: "transcription failure is generic",
			body: mustJSON(t, dto.TranscribeRequest{
				FileData: base64.StdEncoding.EncodeToString(audio),
				MimeType: "audio/mpeg",
				FileName: "a.mp3",
			}),
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("Transcribe", mock.Anything, mock.Anything).
					Return(nil, errors.NewTranscriptionError())
			},
			expectedStatus: http.StatusBadGateway,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "transcription_failed", body["kind"])
				assert.NotEmpty(t, body["request_id"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockServices := setupTestRouter(t)
			tt.setupMocks(mockServices)

			req := httptest.NewRequest(http.MethodPost, "/transcribe", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.validateBody(t, decodeBody(t, w))
			mockServices.TranscriptionService.AssertExpectations(t)
		})
	}
}

func TestTranscriptionHandler_BodyLimit(t *testing.T) {
	router, mockServices := setupTestRouter(t)

	oversized := base64.StdEncoding.EncodeToString(make([]byte, 3*testUploadLimit))
	body := mustJSON(t, dto.TranscribeRequest{FileData: oversized, MimeType: "audio/mpeg", FileName: "big.mp3"})

	req := httptest.NewRequest(http.MethodPost, "/transcribe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "payload_too_large", decodeBody(t, w)["kind"])
	mockServices.TranscriptionService.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything)
}

func TestTranscriptionHandler_Upload(t *testing.T) {
	router, mockServices := setupTestRouter(t)
	mockServices.TranscriptionService.On("Transcribe", mock.Anything, &dto.Upload{
		Data:     []byte("RIFF wav"),
		MimeType: "audio/wav",
		FileName: "memo.wav",
	}).Return(&dto.TranscribeResponse{Transcription: "Memo.", FileName: "memo.wav", SheetsStatus: "success"}, nil)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", `form-data; name="file"; filename="memo.wav"`)
	partHeader.Set("Content-Type", "audio/wav")
	part, err := writer.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = part.Write([]byte("RIFF wav"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/transcribe/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Memo.", decodeBody(t, w)["transcription"])
	mockServices.TranscriptionService.AssertExpectations(t)
}

func TestTranscriptionHandler_UploadWithoutFile(t *testing.T) {
	router, _ := setupTestRouter(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("mime_type", "audio/wav"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/transcribe/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", decodeBody(t, w)["error"])
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}
