package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"transcript-sheets/cmd/tsheets/cmd/common"
	"transcript-sheets/internal/api/server"
	"transcript-sheets/internal/app"
	"transcript-sheets/internal/app/monitoring"
)

const (
	shutdownTimeout    = 30 * time.Second
	sentryFlushTimeout = 2 * time.Second
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API.

Configuration is read from the environment (and an optional .env file).
The process refuses to start when required settings are missing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := common.Bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		sentryEnabled, err := monitoring.InitSentry(cfg.Monitoring.SentryDSN, cfg.Environment, cfg.Version)
		if err != nil {
			logger.Warn("Sentry disabled", zap.Error(err))
		}
		defer monitoring.FlushSentry(sentryFlushTimeout)

		application, err := app.InitializeApplication(context.Background(), cfg, logger)
		if err != nil {
			logger.Error("Failed to initialize application", zap.Error(err))
			return err
		}
		logger.Info("Configuration loaded", zap.Any("config", cfg.Summary()))

		srv := server.NewServer(cfg, application.Container, logger, sentryEnabled)
		errCh, err := srv.Start()
		if err != nil {
			logger.Error("Failed to start server", zap.Error(err))
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case <-ctx.Done():
			logger.Info("Shutdown signal received")
		case err := <-errCh:
			if err != nil {
				return err
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
