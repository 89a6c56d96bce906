package testutil

import (
	"context"
	"net/http"
	"sync"

	"google.golang.org/api/googleapi"

	"transcript-sheets/internal/app/persistence"
	"transcript-sheets/internal/app/sysinfo"
)

// AppendedRow is a row captured by FakeSheets
type AppendedRow struct {
	Target persistence.Target
	Row    []interface{}
}

// FakeSheets is an in-memory persistence.SheetsClient. Setting Err makes
// every call fail; FailTimes fails only the first n appends, with FailWith or
// a 503 when FailWith is nil.
type FakeSheets struct {
	mu        sync.Mutex
	Err       error
	FailTimes int
	FailWith  error
	// PingErrs fails Ping for the listed spreadsheet ids
	PingErrs map[string]error
	Appends  int
	Rows     []AppendedRow
	Headers  map[persistence.Target][]string
	Titles   []string
}

// NewFakeSheets creates an empty fake
func NewFakeSheets() *FakeSheets {
	return &FakeSheets{Headers: make(map[persistence.Target][]string)}
}

func (f *FakeSheets) EnsureWorksheet(_ context.Context, target persistence.Target, header []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	if _, ok := f.Headers[target]; !ok {
		f.Headers[target] = header
	}
	return nil
}

func (f *FakeSheets) AppendRow(_ context.Context, target persistence.Target, row []interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Appends++
	if f.Err != nil {
		return f.Err
	}
	if f.FailTimes > 0 {
		f.FailTimes--
		if f.FailWith != nil {
			return f.FailWith
		}
		return &googleapi.Error{Code: http.StatusServiceUnavailable, Message: "The service is currently unavailable."}
	}
	f.Rows = append(f.Rows, AppendedRow{Target: target, Row: row})
	return nil
}

func (f *FakeSheets) Ping(_ context.Context, spreadsheetID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	if err := f.PingErrs[spreadsheetID]; err != nil {
		return nil, err
	}
	return f.Titles, nil
}

// RowCount returns the number of stored rows
func (f *FakeSheets) RowCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Rows)
}

// FakeSampler returns a fixed snapshot
type FakeSampler struct {
	Snapshot *sysinfo.Snapshot
	Err      error
}

func (f FakeSampler) Sample(context.Context) (*sysinfo.Snapshot, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Snapshot == nil {
		return &sysinfo.Snapshot{MemoryPercent: 30, DiskPercent: 40, MemoryTotalBytes: 8 << 30, DiskTotalBytes: 100 << 30}, nil
	}
	return f.Snapshot, nil
}

// FailingBackup is a persistence.BackupStore that always fails
type FailingBackup struct {
	Err error
}

func (f FailingBackup) Name() string { return "failing" }

func (f FailingBackup) Save(context.Context, string, []byte) (string, error) {
	return "", f.Err
}

func (f FailingBackup) Check(context.Context) error { return f.Err }
