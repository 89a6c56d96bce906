package converter

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ProgressConfig controls the batch progress bar. Writer defaults to stderr.
type ProgressConfig struct {
	Enabled bool
	Writer  io.Writer
}

// batchProgress draws one bar for a directory run, with running counts of
// files that only reached a backup store or failed outright
type batchProgress struct {
	container *mpb.Progress
	bar       *mpb.Bar
	degraded  atomic.Int64
	failed    atomic.Int64
}

func newBatchProgress(cfg ProgressConfig, total int) *batchProgress {
	p := &batchProgress{}
	if !cfg.Enabled || total == 0 {
		return p
	}

	writer := cfg.Writer
	if writer == nil {
		writer = os.Stderr
	}
	p.container = mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(150*time.Millisecond),
	)

	label := "transcribing"
	p.bar = p.container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(label, decor.WC{W: len(label) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("%d/%d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Any(func(decor.Statistics) string {
				return fmt.Sprintf("backup:%d failed:%d", p.degraded.Load(), p.failed.Load())
			}, decor.WCSyncSpace),
			decor.OnComplete(decor.Elapsed(decor.ET_STYLE_MMSS, decor.WCSyncSpace), " done"),
		),
	)
	return p
}

// record counts one finished file
func (p *batchProgress) record(r FileResult) {
	switch {
	case r.Err != nil:
		p.failed.Add(1)
	case r.Degraded:
		p.degraded.Add(1)
	}
	if p.bar != nil {
		p.bar.Increment()
	}
}

// finish completes the bar even when the run was cut short and waits for the last render
func (p *batchProgress) finish() {
	if p.bar == nil {
		return
	}
	p.bar.SetTotal(p.bar.Current(), true)
	p.container.Wait()
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}

// ShouldShowProgress enables the bar when forced or when stderr is a terminal
func ShouldShowProgress(forced bool) bool {
	return forced || isTerminal(os.Stderr)
}
