package services

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"transcript-sheets/internal/api/errors"
	"transcript-sheets/internal/api/v1/dto"
	"transcript-sheets/internal/app/metrics"
	"transcript-sheets/internal/app/monitoring"
	"transcript-sheets/internal/app/persistence"
	"transcript-sheets/internal/app/transcriber"
	"transcript-sheets/internal/config"
)

// KindTranscript labels transcript rows in backups and metrics
const KindTranscript = "transcript"

const (
	rowTimeLayout   = "2006-01-02 15:04:05"
	defaultFileName = "uploaded_audio"
)

// TranscriptHeader is the header of the transcript worksheet
var TranscriptHeader = []string{"Timestamp", "Audio Filename", "Transcribed Text"}

// mimeExtensions maps every accepted MIME type to the extension used for its temp file
var mimeExtensions = map[string]string{
	"audio/mpeg":  ".mp3",
	"audio/mp4":   ".m4a",
	"video/mp4":   ".mp4",
	"audio/wav":   ".wav",
	"audio/aac":   ".aac",
	"audio/ogg":   ".ogg",
	"audio/x-m4a": ".m4a",
}

// extensionMimeTypes is used when a file on disk has no declared type
var extensionMimeTypes = map[string]string{
	".mp3": "audio/mpeg",
	".m4a": "audio/x-m4a",
	".mp4": "video/mp4",
	".wav": "audio/wav",
	".aac": "audio/aac",
	".ogg": "audio/ogg",
}

var unsafeFileNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SupportedMimeTypes returns the accepted MIME types in sorted order
func SupportedMimeTypes() []string {
	types := lo.Keys(mimeExtensions)
	sort.Strings(types)
	return types
}

// NormalizeMimeType lowercases a MIME type and strips its parameters
func NormalizeMimeType(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

// SanitizeFileName keeps only the base name and characters safe for file systems
// and spreadsheet cells
func SanitizeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	name = strings.Trim(unsafeFileNameChars.ReplaceAllString(name, "_"), "._")
	if name == "" {
		return defaultFileName
	}
	return name
}

const transcribeRetryDelay = 500 * time.Millisecond

// TranscriptionServiceImpl implements TranscriptionService
type TranscriptionServiceImpl struct {
	transcriber transcriber.Transcriber
	adapter     *persistence.Adapter
	config      *config.Config
	logger      *zap.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
	retryDelay  time.Duration
}

// NewTranscriptionService creates a new transcription service
func NewTranscriptionService(
	t transcriber.Transcriber,
	adapter *persistence.Adapter,
	cfg *config.Config,
	logger *zap.Logger,
	m *metrics.Metrics,
) TranscriptionService {
	return &TranscriptionServiceImpl{
		transcriber: t,
		adapter:     adapter,
		config:      cfg,
		logger:      logger,
		metrics:     m,
		now:         time.Now,
		retryDelay:  transcribeRetryDelay,
	}
}

// Transcribe validates the upload, transcribes it from a temporary file and
// stores the text. The temporary file is removed on every path.
func (s *TranscriptionServiceImpl) Transcribe(ctx context.Context, upload *dto.Upload) (*dto.TranscribeResponse, error) {
	mimeType, err := s.validate(upload.MimeType, int64(len(upload.Data)))
	if err != nil {
		return nil, err
	}

	fileName := SanitizeFileName(upload.FileName)
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, known := extensionMimeTypes[ext]; !known {
		ext = mimeExtensions[mimeType]
	}

	if err := os.MkdirAll(s.config.Upload.TempDir, 0o755); err != nil {
		s.logger.Error("Failed to create upload folder", zap.String("dir", s.config.Upload.TempDir), zap.Error(err))
		return nil, errors.NewInternalError("Failed to store upload")
	}
	tmp, err := os.CreateTemp(s.config.Upload.TempDir, config.TempUploadPrefix+"*"+ext)
	if err != nil {
		s.logger.Error("Failed to create temp file", zap.Error(err))
		return nil, errors.NewInternalError("Failed to store upload")
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Failed to remove temp file", zap.String("path", tmpPath), zap.Error(err))
		}
	}()

	_, writeErr := tmp.Write(upload.Data)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		s.logger.Error("Failed to write temp file",
			zap.String("path", tmpPath),
			zap.NamedError("write_error", writeErr),
			zap.NamedError("close_error", closeErr))
		return nil, errors.NewInternalError("Failed to store upload")
	}

	return s.process(ctx, fileName, mimeType, tmpPath)
}

// TranscribeFile transcribes a media file already on disk. The file is left in place.
func (s *TranscriptionServiceImpl) TranscribeFile(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	mimeType := extensionMimeTypes[strings.ToLower(filepath.Ext(path))]
	if _, err := s.validate(mimeType, info.Size()); err != nil {
		return false, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	resp, err := s.process(ctx, SanitizeFileName(filepath.Base(path)), mimeType, path)
	if err != nil {
		return false, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return resp.Degraded, nil
}

// validate checks type before size so an oversized file of the wrong type
// reports the type problem.
func (s *TranscriptionServiceImpl) validate(declared string, size int64) (string, error) {
	mimeType := NormalizeMimeType(declared)
	if _, ok := mimeExtensions[mimeType]; !ok {
		return "", errors.NewValidationError("Unsupported file type", map[string]string{
			"mime_type": fmt.Sprintf("must be one of %s", strings.Join(SupportedMimeTypes(), ", ")),
		})
	}
	if size > s.config.Upload.MaxBytes {
		return "", errors.NewPayloadTooLargeError(size, s.config.Upload.MaxBytes)
	}
	if size == 0 {
		return "", errors.NewValidationError("Empty file", map[string]string{"file_data": "is empty"})
	}
	return mimeType, nil
}

func (s *TranscriptionServiceImpl) process(ctx context.Context, fileName, mimeType, path string) (*dto.TranscribeResponse, error) {
	// a client disconnect must not abort the transcription or the write that follows it
	ctx = context.WithoutCancel(ctx)
	log := s.logger.With(zap.String("file_name", fileName), zap.String("mime_type", mimeType))
	info := s.transcriber.Info()

	tctx, cancel := context.WithTimeout(ctx, s.config.Transcription.Timeout)
	defer cancel()

	start := s.now()
	result, err := s.transcribe(tctx, log, &transcriber.Request{
		FilePath: path,
		MimeType: mimeType,
		Language: s.config.Transcription.Language,
	})
	elapsed := s.now().Sub(start)
	if err != nil {
		s.metrics.ObserveTranscription(info.Name, false, elapsed)
		log.Error("Transcription failed", zap.String("provider", info.Name), zap.Error(err))
		monitoring.CaptureError(ctx, err, map[string]string{"component": "transcriber", "provider": info.Name})
		return nil, errors.NewTranscriptionError()
	}
	s.metrics.ObserveTranscription(info.Name, true, elapsed)

	text := transcriber.PostProcess(result.Text)
	log.Info("Transcription completed",
		zap.String("provider", result.Provider),
		zap.Duration("elapsed", elapsed),
		zap.Int("characters", len(text)))

	ts := s.now().UTC()
	s.writeTranscript(log, fileName, text, result, ts)

	target := persistence.Target{
		SpreadsheetID: s.config.Sheets.Transcripts.SpreadsheetID,
		Worksheet:     s.config.Sheets.Transcripts.Worksheet,
	}
	row := []interface{}{ts.Format(rowTimeLayout), fileName, text}
	saved, err := s.adapter.Save(ctx, persistence.Entry{
		Kind:       KindTranscript,
		Identifier: fileName,
		Target:     target,
		Header:     TranscriptHeader,
		Row:        row,
		Record: map[string]string{
			TranscriptHeader[0]: ts.Format(rowTimeLayout),
			TranscriptHeader[1]: fileName,
			TranscriptHeader[2]: text,
		},
	})
	if err != nil {
		log.Error("Failed to persist transcript", zap.Error(err))
		monitoring.CaptureError(ctx, err, map[string]string{"component": "persistence", "kind": KindTranscript})
		return nil, errors.NewPersistenceError()
	}

	return &dto.TranscribeResponse{
		Transcription: text,
		FileName:      fileName,
		SheetsStatus:  string(saved.Status),
		Degraded:      saved.Degraded(),
		BackupFiles:   saved.BackupLocations,
		WorksheetName: target.Worksheet,
		Provider:      result.Provider,
		Model:         result.Model,
	}, nil
}

type transcriptFile struct {
	FileName      string    `json:"filename"`
	Transcription string    `json:"transcription"`
	Timestamp     time.Time `json:"timestamp"`
	Provider      string    `json:"provider,omitempty"`
	Model         string    `json:"model,omitempty"`
}

// writeTranscript keeps a local copy next to the spreadsheet row. Failure is logged only.
// transcribe calls the provider and retries once when it reports a retryable
// failure and the deadline has not passed
func (s *TranscriptionServiceImpl) transcribe(ctx context.Context, log *zap.Logger, req *transcriber.Request) (*transcriber.Result, error) {
	result, err := s.transcriber.Transcribe(ctx, req)
	var te *transcriber.TranscriptionError
	if err == nil || !stderrors.As(err, &te) || !te.Retryable {
		return result, err
	}

	log.Warn("Retrying transcription", zap.String("code", te.Code), zap.Error(err))
	select {
	case <-ctx.Done():
		return nil, err
	case <-time.After(s.retryDelay):
	}
	return s.transcriber.Transcribe(ctx, req)
}

func (s *TranscriptionServiceImpl) writeTranscript(log *zap.Logger, fileName, text string, result *transcriber.Result, ts time.Time) {
	dir := s.config.Upload.TranscriptDir
	if dir == "" {
		return
	}

	data, err := json.MarshalIndent(transcriptFile{
		FileName:      fileName,
		Transcription: text,
		Timestamp:     ts,
		Provider:      result.Provider,
		Model:         result.Model,
	}, "", "  ")
	if err == nil {
		err = os.MkdirAll(dir, 0o755)
	}
	if err == nil {
		stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
		err = os.WriteFile(filepath.Join(dir, stem+"_transcript.json"), data, 0o644)
	}
	if err != nil {
		log.Warn("Failed to write local transcript", zap.String("dir", dir), zap.Error(err))
	}
}
