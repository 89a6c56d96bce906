package services_test

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"transcript-sheets/internal/api/errors"
	"transcript-sheets/internal/api/v1/dto"
	"transcript-sheets/internal/api/v1/services"
	"transcript-sheets/internal/app/mapper"
	"transcript-sheets/internal/app/persistence"
	"transcript-sheets/internal/app/sysinfo"
	"transcript-sheets/internal/app/testutil"
	"transcript-sheets/internal/app/transcriber"
	"transcript-sheets/internal/config"
)

func newAdapter(cfg *config.Config, sheets persistence.SheetsClient) *persistence.Adapter {
	return persistence.NewAdapter(
		sheets,
		[]persistence.BackupStore{persistence.NewLocalBackup(cfg.Backup.Dir)},
		persistence.RetryPolicy{Attempts: cfg.Sheets.RetryAttempts, Timeout: cfg.Sheets.Timeout, Delay: cfg.Sheets.RetryDelay},
		zap.NewNop(),
		nil,
	)
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func requireAPIError(t *testing.T, err error, kind errors.ErrorKind) *errors.APIError {
	t.Helper()
	var apiErr *errors.APIError
	require.True(t, stderrors.As(err, &apiErr), "expected APIError, got %v", err)
	assert.Equal(t, kind, apiErr.Kind)
	return apiErr
}

func TestTranscribeSuccess(t *testing.T) {
	cfg := testutil.NewTestConfig(t, nil)
	sheets := testutil.NewFakeSheets()
	mt := testutil.NewMockTranscriber().ReturnsText("hello there.  this is a test")
	svc := services.NewTranscriptionService(mt, newAdapter(cfg, sheets), cfg, zap.NewNop(), nil)

	resp, err := svc.Transcribe(context.Background(), &dto.Upload{
		Data:     []byte("ID3 fake audio"),
		MimeType: "audio/mpeg",
		FileName: "../My Interview!.mp3",
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello there. This is a test.", resp.Transcription)
	assert.Equal(t, "My_Interview_.mp3", resp.FileName)
	assert.Equal(t, "success", resp.SheetsStatus)
	assert.False(t, resp.Degraded)
	assert.Equal(t, cfg.Sheets.Transcripts.Worksheet, resp.WorksheetName)

	require.Equal(t, 1, sheets.RowCount())
	row := sheets.Rows[0]
	assert.Equal(t, persistence.Target{SpreadsheetID: "sheet-123", Worksheet: "TRANSCRIPT FINAL"}, row.Target)
	assert.Equal(t, "My_Interview_.mp3", row.Row[1])
	assert.Equal(t, "Hello there. This is a test.", row.Row[2])
	assert.Equal(t, services.TranscriptHeader, sheets.Headers[row.Target])

	require.Len(t, mt.SeenFiles, 1)
	assert.True(t, mt.FileExisted[0], "transcriber must see the temp file")
	assert.True(t, strings.HasSuffix(mt.SeenFiles[0], ".mp3"))
	assert.NoFileExists(t, mt.SeenFiles[0])
	assert.Empty(t, dirEntries(t, cfg.Upload.TempDir))

	assert.FileExists(t, filepath.Join(cfg.Upload.TranscriptDir, "My_Interview__transcript.json"))
	assert.Empty(t, dirEntries(t, cfg.Backup.Dir))
}

func TestTranscribeRejectsUnsupportedMimeType(t *testing.T) {
	cfg := testutil.NewTestConfig(t, nil)
	mt := testutil.NewMockTranscriber()
	svc := services.NewTranscriptionService(mt, newAdapter(cfg, testutil.NewFakeSheets()), cfg, zap.NewNop(), nil)

	for _, mimeType := range []string{"image/png", "application/pdf", "text/plain", "", "audio/flac"} {
		_, err := svc.Transcribe(context.Background(), &dto.Upload{Data: []byte("data"), MimeType: mimeType, FileName: "a.mp3"})
		apiErr := requireAPIError(t, err, errors.KindValidation)
		assert.Contains(t, apiErr.Details, "mime_type")
	}

	mt.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything)
	assert.Empty(t, dirEntries(t, cfg.Upload.TempDir))
}

func TestTranscribeRejectsOversizedUpload(t *testing.T) {
	cfg := testutil.NewTestConfig(t, map[string]string{"MAX_UPLOAD_MB": "1"})
	mt := testutil.NewMockTranscriber()
	svc := services.NewTranscriptionService(mt, newAdapter(cfg, testutil.NewFakeSheets()), cfg, zap.NewNop(), nil)

	_, err := svc.Transcribe(context.Background(), &dto.Upload{
		Data:     make([]byte, 1<<20+1),
		MimeType: "audio/wav",
		FileName: "big.wav",
	})
	requireAPIError(t, err, errors.KindPayloadTooLarge)

	_, err = svc.Transcribe(context.Background(), &dto.Upload{MimeType: "audio/wav", FileName: "empty.wav"})
	requireAPIError(t, err, errors.KindValidation)

	mt.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything)
}

func TestTranscribeAcceptsMimeParameters(t *testing.T) {
	cfg := testutil.NewTestConfig(t, nil)
	mt := testutil.NewMockTranscriber().ReturnsText("ok")
	svc := services.NewTranscriptionService(mt, newAdapter(cfg, testutil.NewFakeSheets()), cfg, zap.NewNop(), nil)

	_, err := svc.Transcribe(context.Background(), &dto.Upload{
		Data:     []byte("data"),
		MimeType: "Audio/OGG; codecs=opus",
		FileName: "voice",
	})
	require.NoError(t, err)
	require.Len(t, mt.SeenFiles, 1)
	assert.Equal(t, ".ogg", filepath.Ext(mt.SeenFiles[0]))
}

func TestTranscribeFailureRemovesTempFile(t *testing.T) {
	cfg := testutil.NewTestConfig(t, nil)
	sheets := testutil.NewFakeSheets()
	mt := testutil.NewMockTranscriber().Fails(stderrors.New("upstream said: bad key sk-test-1234567890abcdef1234567890"))
	svc := services.NewTranscriptionService(mt, newAdapter(cfg, sheets), cfg, zap.NewNop(), nil)

	_, err := svc.Transcribe(context.Background(), &dto.Upload{Data: []byte("data"), MimeType: "video/mp4", FileName: "clip.mp4"})
	apiErr := requireAPIError(t, err, errors.KindTranscriptionFailed)
	assert.NotContains(t, apiErr.Error(), "sk-")

	require.Len(t, mt.SeenFiles, 1)
	assert.True(t, mt.FileExisted[0])
	assert.NoFileExists(t, mt.SeenFiles[0])
	assert.Empty(t, dirEntries(t, cfg.Upload.TempDir))
	assert.Zero(t, sheets.Appends)
}

func TestTranscribeRetriesRetryableProviderError(t *testing.T) {
	cfg := testutil.NewTestConfig(t, nil)
	sheets := testutil.NewFakeSheets()
	mt := testutil.NewMockTranscriber()
	mt.On("Transcribe", mock.Anything, mock.Anything).
		Return(nil, &transcriber.TranscriptionError{Code: "rate_limited", Message: "slow down", Provider: "mock", Retryable: true}).Once()
	mt.On("Transcribe", mock.Anything, mock.Anything).Return(testutil.TranscriptionResult("Second time lucky."), nil).Once()
	svc := services.NewTranscriptionService(mt, newAdapter(cfg, sheets), cfg, zap.NewNop(), nil)

	resp, err := svc.Transcribe(context.Background(), &dto.Upload{Data: []byte("data"), MimeType: "audio/mpeg", FileName: "voice.mp3"})
	require.NoError(t, err)
	assert.Equal(t, "Second time lucky.", resp.Transcription)
	mt.AssertNumberOfCalls(t, "Transcribe", 2)
	assert.Equal(t, 1, sheets.RowCount())
}

func TestTranscribeDoesNotRetryPermanentProviderError(t *testing.T) {
	cfg := testutil.NewTestConfig(t, nil)
	mt := testutil.NewMockTranscriber().Fails(&transcriber.TranscriptionError{Code: "auth_failed", Message: "bad key", Provider: "mock"})
	svc := services.NewTranscriptionService(mt, newAdapter(cfg, testutil.NewFakeSheets()), cfg, zap.NewNop(), nil)

	_, err := svc.Transcribe(context.Background(), &dto.Upload{Data: []byte("data"), MimeType: "audio/mpeg", FileName: "voice.mp3"})
	requireAPIError(t, err, errors.KindTranscriptionFailed)
	mt.AssertNumberOfCalls(t, "Transcribe", 1)
}

func TestTranscribeDegradesToLocalBackup(t *testing.T) {
	cfg := testutil.NewTestConfig(t, nil)
	sheets := testutil.NewFakeSheets()
	sheets.Err = stderrors.New("dial tcp: connection refused")
	mt := testutil.NewMockTranscriber().ReturnsText("saved locally")
	svc := services.NewTranscriptionService(mt, newAdapter(cfg, sheets), cfg, zap.NewNop(), nil)

	resp, err := svc.Transcribe(context.Background(), &dto.Upload{Data: []byte("data"), MimeType: "audio/aac", FileName: "note.aac"})
	require.NoError(t, err)

	assert.True(t, resp.Degraded)
	assert.Equal(t, "degraded", resp.SheetsStatus)
	require.Len(t, resp.BackupFiles, 1)
	assert.FileExists(t, resp.BackupFiles[0])
	assert.Len(t, dirEntries(t, cfg.Backup.Dir), 1)
	assert.Empty(t, dirEntries(t, cfg.Upload.TempDir))
}

func TestTranscribeFailsWhenNothingStoresTheResult(t *testing.T) {
	cfg := testutil.NewTestConfig(t, nil)
	adapter := persistence.NewAdapter(
		nil,
		[]persistence.BackupStore{testutil.FailingBackup{Err: stderrors.New("disk full")}},
		persistence.RetryPolicy{Attempts: 1},
		zap.NewNop(),
		nil,
	)
	mt := testutil.NewMockTranscriber().ReturnsText("lost")
	svc := services.NewTranscriptionService(mt, adapter, cfg, zap.NewNop(), nil)

	_, err := svc.Transcribe(context.Background(), &dto.Upload{Data: []byte("data"), MimeType: "audio/mpeg", FileName: "a.mp3"})
	requireAPIError(t, err, errors.KindPersistenceFailed)
	assert.Empty(t, dirEntries(t, cfg.Upload.TempDir))
}

func TestTranscribeSurvivesCancelledRequest(t *testing.T) {
	cfg := testutil.NewTestConfig(t, nil)
	sheets := testutil.NewFakeSheets()
	mt := testutil.NewMockTranscriber()
	mt.On("Transcribe", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), mock.Anything).
		Return(testutil.TranscriptionResult("still running"), nil)
	svc := services.NewTranscriptionService(mt, newAdapter(cfg, sheets), cfg, zap.NewNop(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := svc.Transcribe(ctx, &dto.Upload{Data: []byte("data"), MimeType: "audio/mpeg", FileName: "a.mp3"})
	require.NoError(t, err)
	assert.Equal(t, "Still running.", resp.Transcription)
	assert.Equal(t, 1, sheets.RowCount())
}

func TestTranscribeFileLeavesSourceInPlace(t *testing.T) {
	cfg := testutil.NewTestConfig(t, nil)
	sheets := testutil.NewFakeSheets()
	mt := testutil.NewMockTranscriber().ReturnsText("from disk")
	svc := services.NewTranscriptionService(mt, newAdapter(cfg, sheets), cfg, zap.NewNop(), nil)

	src := filepath.Join(t.TempDir(), "episode 1.m4a")
	require.NoError(t, os.WriteFile(src, []byte("audio"), 0o644))

	degraded, err := svc.TranscribeFile(context.Background(), src)
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.FileExists(t, src)
	assert.Equal(t, []string{src}, mt.SeenFiles)
	assert.Equal(t, "episode_1.m4a", sheets.Rows[0].Row[1])

	notes := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("text"), 0o644))
	_, err = svc.TranscribeFile(context.Background(), notes)
	requireAPIError(t, err, errors.KindValidation)
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"interview.mp3":        "interview.mp3",
		"../../etc/passwd":     "passwd",
		`C:\Users\me\clip.mp4`: "clip.mp4",
		"my file (final).wav":  "my_file_final_.wav",
		"...":                  "uploaded_audio",
		"":                     "uploaded_audio",
		"résumé.m4a":           "r_sum_.m4a",
	}
	for in, want := range tests {
		assert.Equal(t, want, services.SanitizeFileName(in), in)
	}
}

func TestNormalizeMimeType(t *testing.T) {
	assert.Equal(t, "audio/mpeg", services.NormalizeMimeType(" Audio/MPEG ; charset=binary"))
	assert.Equal(t, "", services.NormalizeMimeType(""))
	assert.Equal(t, []string{"audio/aac", "audio/mp4", "audio/mpeg", "audio/ogg", "audio/wav", "audio/x-m4a", "video/mp4"},
		services.SupportedMimeTypes())
}

func videoAskBody() []byte {
	return []byte(`{
		"event_type": "form_response",
		"contact": {
			"contact_id": "c-42",
			"name": "Jane Doe",
			"email": "jane@x.com",
			"created_at": "2024-03-01T08:00:00Z",
			"answers": [
				{"question_id": "q1", "label": "Introduce yourself", "transcription": "Hello", "share_url": "https://videoask.com/a/1"}
			]
		}
	}`)
}

func TestWebhookReceiveVideoAsk(t *testing.T) {
	cfg := testutil.NewTestConfig(t, map[string]string{"VIDEOASK_GOOGLE_SHEET_ID": "sheet-va"})
	sheets := testutil.NewFakeSheets()
	svc := services.NewWebhookService(mapper.New(mapper.DefaultSchema()), newAdapter(cfg, sheets), cfg, zap.NewNop(), nil)

	resp, err := svc.Receive(context.Background(), "VideoAsk", videoAskBody())
	require.NoError(t, err)

	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "c-42", resp.ContactID)
	assert.False(t, resp.Degraded)
	require.Len(t, resp.MappedRow, 14)
	assert.Equal(t, "Jane Doe", resp.MappedRow[0])
	assert.Equal(t, "Hello", resp.MappedData["📝 Introduce Yourself"])

	require.Equal(t, 1, sheets.RowCount())
	assert.Equal(t, persistence.Target{SpreadsheetID: "sheet-va", Worksheet: "VideoAsk Responses"}, sheets.Rows[0].Target)
	assert.Len(t, sheets.Rows[0].Row, 14)
}

func TestWebhookReceiveErrors(t *testing.T) {
	cfg := testutil.NewTestConfig(t, nil)
	sheets := testutil.NewFakeSheets()
	svc := services.NewWebhookService(mapper.New(mapper.DefaultSchema()), newAdapter(cfg, sheets), cfg, zap.NewNop(), nil)

	_, err := svc.Receive(context.Background(), "typeform", videoAskBody())
	requireAPIError(t, err, errors.KindNotFound)

	for _, body := range []string{"", "{not json", `{"event_type":"form_response"}`} {
		_, err = svc.Receive(context.Background(), "videoask", []byte(body))
		requireAPIError(t, err, errors.KindValidation)
	}
	assert.Zero(t, sheets.Appends)
}

func TestWebhookReceiveDegraded(t *testing.T) {
	cfg := testutil.NewTestConfig(t, nil)
	sheets := testutil.NewFakeSheets()
	sheets.Err = context.DeadlineExceeded
	svc := services.NewWebhookService(mapper.New(mapper.DefaultSchema()), newAdapter(cfg, sheets), cfg, zap.NewNop(), nil)

	resp, err := svc.Receive(context.Background(), "videoask", videoAskBody())
	require.NoError(t, err)
	assert.True(t, resp.Degraded)

	files := dirEntries(t, cfg.Backup.Dir)
	require.Len(t, files, 1)
	assert.True(t, strings.HasPrefix(files[0], "videoask_"))
	assert.Contains(t, files[0], "c-42")
}

func TestWebhookTestIsDryRun(t *testing.T) {
	cfg := testutil.NewTestConfig(t, nil)
	sheets := testutil.NewFakeSheets()
	svc := services.NewWebhookService(mapper.New(mapper.DefaultSchema()), newAdapter(cfg, sheets), cfg, zap.NewNop(), nil)

	resp, err := svc.Test(context.Background(), []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "Test User", resp.MappedData["Name"])
	assert.Len(t, resp.MappedRow, 14)

	resp, err = svc.Test(context.Background(), videoAskBody())
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", resp.MappedData["Name"])

	_, err = svc.Test(context.Background(), []byte("{oops"))
	requireAPIError(t, err, errors.KindValidation)

	assert.Zero(t, sheets.Appends)
}

func TestWebhookValidate(t *testing.T) {
	cfg := testutil.NewTestConfig(t, nil)
	sheets := testutil.NewFakeSheets()
	sheets.Titles = []string{"TRANSCRIPT FINAL"}
	svc := services.NewWebhookService(mapper.New(mapper.DefaultSchema()), newAdapter(cfg, sheets), cfg, zap.NewNop(), nil)

	report := svc.Validate(context.Background())
	assert.True(t, report.GoogleSheetsClient)
	assert.True(t, report.TranscriptSheetAccess)
	assert.True(t, report.VideoAskSheetAccess)
	assert.True(t, report.WebhookDataDirectory)
	assert.True(t, report.EnvironmentVariables["GOOGLE_SHEET_ID"])
	assert.False(t, report.EnvironmentVariables["VIDEOASK_GOOGLE_SHEET_ID"])
	assert.Empty(t, report.Errors)

	noClient := services.NewWebhookService(mapper.New(mapper.DefaultSchema()), newAdapter(cfg, nil), cfg, zap.NewNop(), nil)
	report = noClient.Validate(context.Background())
	assert.False(t, report.GoogleSheetsClient)
	assert.False(t, report.TranscriptSheetAccess)
	assert.NotEmpty(t, report.Errors)
}

func TestOverallStatus(t *testing.T) {
	pass := dto.CheckResult{Status: dto.CheckPass}
	warn := dto.CheckResult{Status: dto.CheckWarn}
	fail := dto.CheckResult{Status: dto.CheckFail}

	tests := []struct {
		name   string
		checks map[string]dto.CheckResult
		want   string
	}{
		{"all pass", map[string]dto.CheckResult{"system": pass, "spreadsheet": pass, "transcriber": pass, "backup_storage": pass}, dto.StatusHealthy},
		{"transcriber warns", map[string]dto.CheckResult{"system": pass, "spreadsheet": pass, "transcriber": warn, "backup_storage": pass}, dto.StatusDegraded},
		{"spreadsheet down, backup up", map[string]dto.CheckResult{"system": pass, "spreadsheet": fail, "transcriber": pass, "backup_storage": pass}, dto.StatusDegraded},
		{"nowhere to write", map[string]dto.CheckResult{"system": pass, "spreadsheet": fail, "transcriber": pass, "backup_storage": fail}, dto.StatusUnhealthy},
		{"system fails", map[string]dto.CheckResult{"system": fail, "spreadsheet": pass, "transcriber": pass, "backup_storage": pass}, dto.StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.OverallStatus(tt.checks))
		})
	}
}

func TestHealthReportsEachDependency(t *testing.T) {
	cfg := testutil.NewTestConfig(t, nil)
	sheets := testutil.NewFakeSheets()
	sheets.Titles = []string{"TRANSCRIPT FINAL", "VideoAsk Responses"}
	mt := testutil.NewMockTranscriber()
	mt.On("HealthCheck", mock.Anything).Return(nil)
	started := time.Now().Add(-time.Minute)

	svc := services.NewHealthService(cfg, testutil.FakeSampler{}, mt, newAdapter(cfg, sheets), zap.NewNop(), started)
	resp := svc.Health(context.Background())

	assert.Equal(t, dto.StatusHealthy, resp.Status)
	assert.Equal(t, "test", resp.Environment)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, 60.0)
	require.Len(t, resp.Checks, 4)
	assert.Equal(t, true, resp.Checks["spreadsheet"].Details["worksheet_exists"])
	assert.Equal(t, "mock", resp.Checks["transcriber"].Details["provider"])

	sheets.Err = stderrors.New("403 forbidden")
	resp = svc.Health(context.Background())
	assert.Equal(t, dto.StatusDegraded, resp.Status)
	assert.Equal(t, dto.CheckFail, resp.Checks["spreadsheet"].Status)
	assert.Equal(t, dto.CheckPass, resp.Checks["backup_storage"].Status)
}

func TestHealthChecksSeparateWebhookDocument(t *testing.T) {
	cfg := testutil.NewTestConfig(t, map[string]string{"VIDEOASK_GOOGLE_SHEET_ID": "sheet-va"})
	sheets := testutil.NewFakeSheets()
	sheets.Titles = []string{"TRANSCRIPT FINAL", "VideoAsk Responses"}
	mt := testutil.NewMockTranscriber()
	mt.On("HealthCheck", mock.Anything).Return(nil)

	svc := services.NewHealthService(cfg, testutil.FakeSampler{}, mt, newAdapter(cfg, sheets), zap.NewNop(), time.Now())
	resp := svc.Health(context.Background())
	assert.Equal(t, dto.CheckPass, resp.Checks["spreadsheet"].Status)
	assert.Equal(t, 2, resp.Checks["spreadsheet"].Details["documents"])
	assert.Equal(t, true, resp.Checks["spreadsheet"].Details["webhook_worksheet_exists"])

	sheets.PingErrs = map[string]error{"sheet-va": stderrors.New("404 not found")}
	resp = svc.Health(context.Background())
	assert.Equal(t, dto.StatusDegraded, resp.Status)
	assert.Equal(t, dto.CheckWarn, resp.Checks["spreadsheet"].Status)
	assert.Contains(t, resp.Checks["spreadsheet"].Error, "webhook: 404 not found")
	assert.Equal(t, true, resp.Checks["spreadsheet"].Details["worksheet_exists"])
}

func TestHealthUnhealthyWhenSystemCannotBeSampled(t *testing.T) {
	cfg := testutil.NewTestConfig(t, nil)
	mt := testutil.NewMockTranscriber()
	mt.On("HealthCheck", mock.Anything).Return(stderrors.New("provider down"))

	svc := services.NewHealthService(cfg, testutil.FakeSampler{Err: stderrors.New("no /proc")}, mt,
		newAdapter(cfg, testutil.NewFakeSheets()), zap.NewNop(), time.Now())
	resp := svc.Health(context.Background())

	assert.Equal(t, dto.StatusUnhealthy, resp.Status)
	assert.Equal(t, dto.CheckWarn, resp.Checks["transcriber"].Status)

	high := testutil.FakeSampler{Snapshot: &sysinfo.Snapshot{MemoryPercent: 95, DiskPercent: 10}}
	svc = services.NewHealthService(cfg, high, mt, newAdapter(cfg, testutil.NewFakeSheets()), zap.NewNop(), time.Now())
	assert.Equal(t, dto.CheckWarn, svc.Health(context.Background()).Checks["system"].Status)
}

func TestStatus(t *testing.T) {
	cfg := testutil.NewTestConfig(t, nil)
	svc := services.NewHealthService(cfg, testutil.FakeSampler{}, testutil.NewMockTranscriber(),
		newAdapter(cfg, testutil.NewFakeSheets()), zap.NewNop(), time.Now())

	resp := svc.Status(context.Background())
	assert.Equal(t, services.ServiceName, resp.Service)
	assert.Equal(t, "mock", resp.Provider)
	assert.Equal(t, int64(100), resp.MaxUploadMB)
	assert.True(t, resp.Features["spreadsheet"])
	assert.False(t, resp.Features["object_backup"])
	assert.Positive(t, resp.Runtime.CPUs)
}
