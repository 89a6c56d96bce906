// Package converter runs a directory of media files through the transcription
// pipeline, one spreadsheet row per file.
package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"transcript-sheets/internal/config"
)

// MediaExtensions are the file types picked up from an upload directory
var MediaExtensions = []string{".mp3", ".mp4", ".m4a", ".wav"}

// FileTranscriber transcribes one local file and persists the result.
// degraded is true when the row only reached a backup store.
type FileTranscriber interface {
	TranscribeFile(ctx context.Context, path string) (degraded bool, err error)
}

// FileResult is the outcome for one file. Skipped files were never started
// because the run was cancelled.
type FileResult struct {
	File     string
	Degraded bool
	Skipped  bool
	Err      error
	Elapsed  time.Duration
}

// Summary aggregates a batch run
type Summary struct {
	Results   []FileResult
	Succeeded int
	Degraded  int
	Failed    int
	Skipped   int
}

type Converter struct {
	transcriber FileTranscriber
	logger      *zap.Logger
	progress    ProgressConfig
	parallel    int
}

func NewConverter(transcriber FileTranscriber, logger *zap.Logger, progress ProgressConfig, parallel int) *Converter {
	if parallel < 1 {
		parallel = 1
	}
	return &Converter{
		transcriber: transcriber,
		logger:      logger,
		progress:    progress,
		parallel:    parallel,
	}
}

// ListMediaFiles returns the media files directly inside dir, sorted by name.
// The server's in-flight upload files are left alone.
func ListMediaFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), config.TempUploadPrefix) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, allowed := range MediaExtensions {
			if ext == allowed {
				paths = append(paths, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Do processes every media file in inputDir. Per-file failures are recorded
// and skipped. Once ctx is cancelled no new file is started: files already in
// flight finish, the rest are marked skipped and ctx.Err() is returned along
// with the partial summary.
func (c *Converter) Do(ctx context.Context, inputDir string) (*Summary, error) {
	paths, err := ListMediaFiles(inputDir)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Results: make([]FileResult, len(paths))}
	if len(paths) == 0 {
		c.logger.Info("No media files found", zap.String("dir", inputDir))
		return summary, nil
	}

	bar := newBatchProgress(c.progress, len(paths))

	var wg sync.WaitGroup
	sem := make(chan struct{}, c.parallel)
	next := 0
dispatch:
	for ; next < len(paths); next++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case sem <- struct{}{}:
		}
		if ctx.Err() != nil {
			<-sem
			break
		}

		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			summary.Results[i] = c.convertOne(ctx, path)
			bar.record(summary.Results[i])
		}(next, paths[next])
	}
	wg.Wait()

	for i := next; i < len(paths); i++ {
		summary.Results[i] = FileResult{File: filepath.Base(paths[i]), Skipped: true}
	}
	bar.finish()

	for _, r := range summary.Results {
		switch {
		case r.Skipped:
			summary.Skipped++
		case r.Err != nil:
			summary.Failed++
		case r.Degraded:
			summary.Degraded++
		default:
			summary.Succeeded++
		}
	}

	if summary.Skipped > 0 {
		c.logger.Warn("Run cancelled, remaining files skipped", zap.Int("skipped", summary.Skipped))
		return summary, ctx.Err()
	}
	return summary, nil
}

func (c *Converter) convertOne(ctx context.Context, path string) FileResult {
	start := time.Now()
	name := filepath.Base(path)

	degraded, err := c.transcriber.TranscribeFile(ctx, path)
	result := FileResult{File: name, Degraded: degraded, Err: err, Elapsed: time.Since(start)}

	if err != nil {
		c.logger.Warn("File failed, skipping", zap.String("file", name), zap.Error(err))
	} else {
		c.logger.Info("File processed",
			zap.String("file", name),
			zap.Bool("degraded", degraded),
			zap.Duration("elapsed", result.Elapsed))
	}
	return result
}
