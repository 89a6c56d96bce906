package process

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"transcript-sheets/cmd/tsheets/cmd/common"
	"transcript-sheets/internal/app"
	"transcript-sheets/internal/app/converter"
)

var (
	parallel     int
	showProgress bool
)

func init() {
	Cmd.Flags().IntVarP(&parallel, "parallel", "p", 1, "number of files transcribed at once")
	Cmd.Flags().BoolVar(&showProgress, "progress", false, "force the progress bar even without a terminal")
}

// Cmd represents the process-uploads command
var Cmd = &cobra.Command{
	Use:   "process-uploads [dir]",
	Short: "Transcribe every media file in a directory",
	Long: `Transcribe every media file in a directory and append one spreadsheet row per file.

- dir defaults to UPLOAD_FOLDER; the server's in-flight upload-* files are ignored
- Ctrl-C lets the files in progress finish and skips the rest
- files are kept; a <name>_transcript.json copy goes to TRANSCRIPTS_DIR
- rows that cannot reach the spreadsheet are written to BACKUP_DIR`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := common.Bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		dir := cfg.Upload.TempDir
		if len(args) == 1 {
			dir = args[0]
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		application, err := app.InitializeApplication(context.Background(), cfg, logger)
		if err != nil {
			return err
		}

		conv := converter.NewConverter(application.Transcription, logger, converter.ProgressConfig{
			Enabled: converter.ShouldShowProgress(showProgress),
			Writer:  cmd.ErrOrStderr(),
		}, parallel)

		summary, runErr := conv.Do(ctx, dir)
		if summary == nil {
			return runErr
		}

		out := cmd.OutOrStdout()
		for _, r := range summary.Results {
			switch {
			case r.Skipped:
				fmt.Fprintf(out, "SKIPPED   %s\n", r.File)
			case r.Err != nil:
				fmt.Fprintf(out, "FAILED    %s: %v\n", r.File, r.Err)
			case r.Degraded:
				fmt.Fprintf(out, "BACKUP    %s (%s)\n", r.File, r.Elapsed.Round(time.Millisecond))
			default:
				fmt.Fprintf(out, "OK        %s (%s)\n", r.File, r.Elapsed.Round(time.Millisecond))
			}
		}
		fmt.Fprintf(out, "\n%d succeeded, %d saved to backup, %d failed, %d skipped\n",
			summary.Succeeded, summary.Degraded, summary.Failed, summary.Skipped)

		if runErr != nil {
			return fmt.Errorf("interrupted, %d files not processed: %w", summary.Skipped, runErr)
		}

		if summary.Failed > 0 {
			logger.Warn("Some files failed", zap.Int("failed", summary.Failed))
			return fmt.Errorf("%d of %d files failed", summary.Failed, len(summary.Results))
		}
		return nil
	},
}
