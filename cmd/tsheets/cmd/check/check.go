package check

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"transcript-sheets/internal/app/logging"
	"transcript-sheets/internal/app/monitoring"
	"transcript-sheets/internal/config"
)

var (
	timeout time.Duration
	noAlert bool
)

func init() {
	Cmd.Flags().DurationVarP(&timeout, "timeout", "t", 30*time.Second, "per-request timeout")
	Cmd.Flags().BoolVar(&noAlert, "no-alert", false, "print the report without notifying webhooks")
}

// Cmd represents the check command
var Cmd = &cobra.Command{
	Use:   "check <base_url>",
	Short: "Probe a running instance and alert when it is unhealthy",
	Long: `Probe a running instance and alert when it is unhealthy.

- /health and / must answer 200; /status and /metrics are informational
- alerts go to SLACK_WEBHOOK_URL, DISCORD_WEBHOOK_URL and CUSTOM_WEBHOOK_URL
- exits non-zero when the instance is unhealthy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.LoadEnv(); err != nil {
			return err
		}
		logger, err := logging.NewLogger(logging.Options{Development: true, Level: "info"})
		if err != nil {
			return err
		}
		defer logger.Sync()

		report := monitoring.NewChecker(timeout).Check(cmd.Context(), args[0])

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return err
		}

		if report.Healthy() {
			return nil
		}

		notifier := monitoring.NewNotifier(config.LoadMonitoring(os.Getenv), logger)
		if !noAlert && notifier.Configured() {
			channels, delivered := notifier.Notify(cmd.Context(), report)
			logger.Info("Alert sent", zap.Any("channels", channels), zap.Bool("delivered", delivered))
		}
		return fmt.Errorf("%s is %s", report.BaseURL, report.OverallStatus)
	},
}
