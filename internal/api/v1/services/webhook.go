package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"transcript-sheets/internal/api/errors"
	"transcript-sheets/internal/api/v1/dto"
	"transcript-sheets/internal/app/mapper"
	"transcript-sheets/internal/app/metrics"
	"transcript-sheets/internal/app/monitoring"
	"transcript-sheets/internal/app/persistence"
	"transcript-sheets/internal/config"
)

// ProviderVideoAsk is the only registered webhook provider
const ProviderVideoAsk = "videoask"

// probeTimeout bounds each spreadsheet reachability check
const probeTimeout = 5 * time.Second

// WebhookServiceImpl implements WebhookService
type WebhookServiceImpl struct {
	mapper  *mapper.Mapper
	adapter *persistence.Adapter
	config  *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewWebhookService creates a new webhook service
func NewWebhookService(
	m *mapper.Mapper,
	adapter *persistence.Adapter,
	cfg *config.Config,
	logger *zap.Logger,
	metrics *metrics.Metrics,
) WebhookService {
	return &WebhookServiceImpl{
		mapper:  m,
		adapter: adapter,
		config:  cfg,
		logger:  logger,
		metrics: metrics,
	}
}

// Receive maps a provider payload into a row and appends it to the webhook worksheet
func (s *WebhookServiceImpl) Receive(ctx context.Context, provider string, body []byte) (*dto.WebhookResponse, error) {
	provider = strings.ToLower(provider)
	if provider != ProviderVideoAsk {
		s.metrics.ObserveWebhook("unknown", "rejected")
		return nil, errors.NewNotFoundError("Webhook provider")
	}

	payload, err := mapper.Decode(body)
	if err != nil {
		s.metrics.ObserveWebhook(provider, "invalid")
		s.logger.Warn("Rejected webhook payload", zap.String("provider", provider), zap.Error(err))
		return nil, errors.NewValidationError("Invalid webhook payload", map[string]string{"payload": err.Error()})
	}

	contact := payload.GetContact()
	log := s.logger.With(
		zap.String("provider", provider),
		zap.String("event_type", payload.EventType),
		zap.String("contact_id", contact.GetContactID()))

	schema := s.mapper.Schema()
	row := s.mapper.Map(payload)
	record := row.Record(schema)
	log.Info("Webhook payload mapped", zap.Int("answers", len(contact.GetAnswers())))

	identifier := contact.GetContactID()
	if identifier == "" {
		identifier = contact.GetEmail()
	}

	// the row is already mapped; finish the write even if the sender hangs up
	saved, err := s.adapter.Save(context.WithoutCancel(ctx), persistence.Entry{
		Kind:       provider,
		Identifier: identifier,
		Target: persistence.Target{
			SpreadsheetID: s.config.Sheets.Webhook.SpreadsheetID,
			Worksheet:     s.config.Sheets.Webhook.Worksheet,
		},
		Header: schema.Header(),
		Row:    row.Values(),
		Record: record,
	})
	if err != nil {
		s.metrics.ObserveWebhook(provider, "failed")
		log.Error("Failed to persist webhook row", zap.Error(err))
		monitoring.CaptureError(ctx, err, map[string]string{"component": "persistence", "kind": provider})
		return nil, errors.NewPersistenceError()
	}
	s.metrics.ObserveWebhook(provider, string(saved.Status))

	return &dto.WebhookResponse{
		Status:       "success",
		Provider:     provider,
		ContactID:    contact.GetContactID(),
		MappedRow:    row,
		MappedData:   record,
		SheetsStatus: string(saved.Status),
		Degraded:     saved.Degraded(),
		BackupFiles:  saved.BackupLocations,
	}, nil
}

// Test maps the posted payload, or the built-in sample when the body carries
// no contact, without writing anything.
func (s *WebhookServiceImpl) Test(_ context.Context, body []byte) (*dto.WebhookTestResponse, error) {
	payload, err := mapper.Decode(body)
	switch {
	case err == nil:
	case stderrors.Is(err, mapper.ErrNoContact) || len(strings.TrimSpace(string(body))) == 0:
		payload = mapper.SamplePayload()
	default:
		return nil, errors.NewValidationError("Invalid webhook payload", map[string]string{"payload": err.Error()})
	}

	row := s.mapper.Map(payload)
	return &dto.WebhookTestResponse{
		Status:     "success",
		Message:    "Payload mapped successfully (dry run, nothing was written)",
		MappedRow:  row,
		MappedData: row.Record(s.mapper.Schema()),
	}, nil
}

// Validate reports whether the spreadsheet client, both worksheets and the
// backup directory are usable
func (s *WebhookServiceImpl) Validate(ctx context.Context) *dto.WebhookValidationResponse {
	resp := &dto.WebhookValidationResponse{
		EnvironmentVariables: s.config.EnvironmentReport(),
	}

	client := s.adapter.Sheets()
	resp.GoogleSheetsClient = client != nil
	if client != nil {
		ping := func(name, spreadsheetID string) bool {
			pctx, cancel := context.WithTimeout(ctx, probeTimeout)
			defer cancel()
			if _, err := client.Ping(pctx, spreadsheetID); err != nil {
				resp.Errors = append(resp.Errors, name+": "+err.Error())
				return false
			}
			return true
		}
		resp.TranscriptSheetAccess = ping("transcript sheet", s.config.Sheets.Transcripts.SpreadsheetID)
		if s.config.Sheets.Webhook.SpreadsheetID == s.config.Sheets.Transcripts.SpreadsheetID {
			resp.VideoAskSheetAccess = resp.TranscriptSheetAccess
		} else {
			resp.VideoAskSheetAccess = ping("videoask sheet", s.config.Sheets.Webhook.SpreadsheetID)
		}
	} else {
		resp.Errors = append(resp.Errors, "google sheets client not configured")
	}

	for _, store := range s.adapter.Backups() {
		local, ok := store.(*persistence.LocalBackup)
		if !ok {
			continue
		}
		if err := local.Check(ctx); err != nil {
			resp.Errors = append(resp.Errors, "webhook data directory: "+err.Error())
			continue
		}
		resp.WebhookDataDirectory = true
	}

	return resp
}
