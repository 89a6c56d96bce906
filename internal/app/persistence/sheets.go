package persistence

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Target identifies a worksheet inside a spreadsheet
type Target struct {
	SpreadsheetID string
	Worksheet     string
}

func (t Target) String() string {
	return t.SpreadsheetID + "/" + t.Worksheet
}

// SheetsClient appends rows to a spreadsheet service
type SheetsClient interface {
	// EnsureWorksheet creates the worksheet when missing and writes the header into an empty one
	EnsureWorksheet(ctx context.Context, target Target, header []string) error
	AppendRow(ctx context.Context, target Target, row []interface{}) error
	// Ping checks that the document is reachable and returns its worksheet titles
	Ping(ctx context.Context, spreadsheetID string) ([]string, error)
}

// GoogleSheets implements SheetsClient on the Sheets v4 API
type GoogleSheets struct {
	srv *sheets.Service
}

// NewGoogleSheets authenticates with service-account credentials
func NewGoogleSheets(ctx context.Context, credentialsJSON []byte) (*GoogleSheets, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}
	return NewGoogleSheetsWithOptions(ctx, option.WithCredentials(creds))
}

// NewGoogleSheetsWithOptions builds the client from raw API options
func NewGoogleSheetsWithOptions(ctx context.Context, opts ...option.ClientOption) (*GoogleSheets, error) {
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &GoogleSheets{srv: srv}, nil
}

func (g *GoogleSheets) EnsureWorksheet(ctx context.Context, target Target, header []string) error {
	titles, err := g.Ping(ctx, target.SpreadsheetID)
	if err != nil {
		return err
	}

	exists := false
	for _, title := range titles {
		if title == target.Worksheet {
			exists = true
			break
		}
	}

	if !exists {
		req := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: target.Worksheet},
				},
			}},
		}
		if _, err := g.srv.Spreadsheets.BatchUpdate(target.SpreadsheetID, req).Context(ctx).Do(); err != nil {
			return fmt.Errorf("failed to create worksheet %q: %w", target.Worksheet, err)
		}
	}

	if len(header) == 0 {
		return nil
	}

	first, err := g.srv.Spreadsheets.Values.Get(target.SpreadsheetID, quoteRange(target.Worksheet, "1:1")).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read header row: %w", err)
	}
	if len(first.Values) > 0 && len(first.Values[0]) > 0 {
		return nil
	}

	values := make([]interface{}, len(header))
	for i, h := range header {
		values[i] = h
	}
	_, err = g.srv.Spreadsheets.Values.Update(target.SpreadsheetID, quoteRange(target.Worksheet, "A1"),
		&sheets.ValueRange{Values: [][]interface{}{values}}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	return nil
}

func (g *GoogleSheets) AppendRow(ctx context.Context, target Target, row []interface{}) error {
	_, err := g.srv.Spreadsheets.Values.Append(target.SpreadsheetID, quoteRange(target.Worksheet, "A1"),
		&sheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row to %s: %w", target, err)
	}
	return nil
}

func (g *GoogleSheets) Ping(ctx context.Context, spreadsheetID string) ([]string, error) {
	doc, err := g.srv.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}

	titles := make([]string, 0, len(doc.Sheets))
	for _, s := range doc.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}
	return titles, nil
}

func quoteRange(worksheet, cells string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(worksheet, "'", "''"), cells)
}

// IsPermanent reports whether a remote error will not go away by retrying:
// bad requests, authentication, permission and missing-document errors.
func IsPermanent(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Code {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	}
	return false
}

// RejectedBeforeWrite reports whether a failed append certainly stored
// nothing: throttling, unavailability, permanent request errors, a token that
// could not be fetched or a connection that was never made. Any other error,
// a deadline in particular, may follow a committed row.
func RejectedBeforeWrite(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests ||
			apiErr.Code == http.StatusServiceUnavailable ||
			IsPermanent(err)
	}

	var tokenErr *oauth2.RetrieveError
	if errors.As(err, &tokenErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
