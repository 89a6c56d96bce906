// Package persistence writes results to a spreadsheet, falling back to
// backup stores when the spreadsheet cannot be reached.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"transcript-sheets/internal/app/metrics"
)

// ErrPersistenceFailed means neither the spreadsheet nor any backup store kept the data
var ErrPersistenceFailed = errors.New("persistence failed: remote write and every backup failed")

// unconfirmedAppendError wraps an append that may have been stored despite
// the error. It is never retried.
type unconfirmedAppendError struct {
	err error
}

func (e *unconfirmedAppendError) Error() string {
	return "append outcome unknown: " + e.err.Error()
}

func (e *unconfirmedAppendError) Unwrap() error {
	return e.err
}

// Status is the combined outcome of a save
type Status string

const (
	StatusSuccess  Status = "success"
	StatusDegraded Status = "degraded"
	statusFailed   Status = "failed"
)

const backupTimeLayout = "20060102_150405"

// Entry is one row destined for a worksheet
type Entry struct {
	Kind       string
	Identifier string
	Target     Target
	Header     []string
	Row        []interface{}
	// Record is the header-keyed view of Row, stored in backups for manual recovery
	Record map[string]string
}

// Result reports where the data landed
type Result struct {
	Status          Status
	RemoteError     string
	BackupLocations []string
}

// Degraded reports whether only the backup step succeeded
func (r Result) Degraded() bool {
	return r.Status == StatusDegraded
}

// RetryPolicy bounds the remote step
type RetryPolicy struct {
	Attempts int
	Timeout  time.Duration
	Delay    time.Duration
}

// Backup is the file body written by the fallback step
type Backup struct {
	Kind          string            `json:"kind"`
	Identifier    string            `json:"identifier"`
	Timestamp     time.Time         `json:"timestamp"`
	SpreadsheetID string            `json:"spreadsheet_id"`
	Worksheet     string            `json:"worksheet"`
	Header        []string          `json:"header"`
	Row           []interface{}     `json:"row"`
	Record        map[string]string `json:"record,omitempty"`
	RemoteError   string            `json:"remote_error,omitempty"`
}

// Adapter runs the remote-then-backup strategy. It holds no per-request state
// and is safe for concurrent use.
type Adapter struct {
	sheets  SheetsClient
	backups []BackupStore
	policy  RetryPolicy
	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewAdapter creates an adapter. sheets may be nil when no client could be
// built; every save then goes straight to the backup stores.
func NewAdapter(sheets SheetsClient, backups []BackupStore, policy RetryPolicy, logger *zap.Logger, m *metrics.Metrics) *Adapter {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		sheets:  sheets,
		backups: backups,
		policy:  policy,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// Sheets returns the remote client, which may be nil
func (a *Adapter) Sheets() SheetsClient {
	return a.sheets
}

// Backups returns the configured backup stores
func (a *Adapter) Backups() []BackupStore {
	return a.backups
}

// Save appends the entry remotely, or writes it to every backup store when
// the remote step fails. An error is returned only when nothing kept the data.
func (a *Adapter) Save(ctx context.Context, entry Entry) (Result, error) {
	log := a.logger.With(
		zap.String("kind", entry.Kind),
		zap.String("identifier", entry.Identifier),
		zap.String("target", entry.Target.String()),
	)

	remoteErr := a.saveRemote(ctx, entry)
	if remoteErr == nil {
		a.metrics.ObservePersistence(entry.Kind, string(StatusSuccess))
		log.Info("Row appended to spreadsheet")
		return Result{Status: StatusSuccess}, nil
	}

	log.Warn("Spreadsheet write failed, writing backup", zap.Error(remoteErr))

	locations, backupErr := a.saveBackups(ctx, entry, remoteErr)
	if len(locations) == 0 {
		a.metrics.ObservePersistence(entry.Kind, string(statusFailed))
		log.Error("Backup write failed", zap.Error(backupErr))
		return Result{RemoteError: remoteErr.Error()}, fmt.Errorf("%w: remote: %v; backup: %v", ErrPersistenceFailed, remoteErr, backupErr)
	}
	if backupErr != nil {
		log.Warn("Some backup stores failed", zap.Error(backupErr))
	}

	a.metrics.ObservePersistence(entry.Kind, string(StatusDegraded))
	log.Info("Data saved to backup", zap.Strings("locations", locations))
	return Result{
		Status:          StatusDegraded,
		RemoteError:     remoteErr.Error(),
		BackupLocations: locations,
	}, nil
}

func (a *Adapter) saveRemote(ctx context.Context, entry Entry) error {
	if a.sheets == nil {
		return errors.New("spreadsheet client not configured")
	}

	delay := a.policy.Delay
	var lastErr error
	for attempt := 1; attempt <= a.policy.Attempts; attempt++ {
		lastErr = a.attempt(ctx, entry)
		if lastErr == nil {
			return nil
		}
		var unconfirmed *unconfirmedAppendError
		if IsPermanent(lastErr) || errors.As(lastErr, &unconfirmed) || ctx.Err() != nil || attempt == a.policy.Attempts {
			break
		}

		a.logger.Debug("Retrying spreadsheet write",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(lastErr))

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w (last error: %v)", ctx.Err(), lastErr)
		case <-time.After(delay):
		}
		delay *= 2
	}
	return lastErr
}

func (a *Adapter) attempt(ctx context.Context, entry Entry) error {
	if a.policy.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.policy.Timeout)
		defer cancel()
	}

	if err := a.sheets.EnsureWorksheet(ctx, entry.Target, entry.Header); err != nil {
		return err
	}
	if err := a.sheets.AppendRow(ctx, entry.Target, entry.Row); err != nil {
		if RejectedBeforeWrite(err) {
			return err
		}
		return &unconfirmedAppendError{err: err}
	}
	return nil
}

func (a *Adapter) saveBackups(ctx context.Context, entry Entry, remoteErr error) ([]string, error) {
	if len(a.backups) == 0 {
		return nil, errors.New("no backup stores configured")
	}

	ts := a.now().UTC()
	data, err := json.MarshalIndent(Backup{
		Kind:          entry.Kind,
		Identifier:    entry.Identifier,
		Timestamp:     ts,
		SpreadsheetID: entry.Target.SpreadsheetID,
		Worksheet:     entry.Target.Worksheet,
		Header:        entry.Header,
		Row:           entry.Row,
		Record:        entry.Record,
		RemoteError:   remoteErr.Error(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	// the suffix keeps two saves within the same second apart
	name := BackupName(entry.Kind, entry.Identifier+"_"+uuid.NewString()[:8], ts)

	var locations []string
	var errs []error
	for _, store := range a.backups {
		loc, err := store.Save(ctx, name, data)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", store.Name(), err))
			continue
		}
		locations = append(locations, loc)
	}
	return locations, errors.Join(errs...)
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// BackupName builds <kind>_<YYYYMMDD_HHMMSS>_<identifier>.json
func BackupName(kind, identifier string, ts time.Time) string {
	id := strings.Trim(unsafeNameChars.ReplaceAllString(identifier, "_"), "_.")
	if id == "" {
		id = "unknown"
	}
	return fmt.Sprintf("%s_%s_%s.json", kind, ts.UTC().Format(backupTimeLayout), id)
}
