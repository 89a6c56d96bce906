// Package common holds start-up steps shared by the tsheets subcommands.
package common

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"transcript-sheets/internal/app/logging"
	"transcript-sheets/internal/config"
)

// Bootstrap loads the .env file and the validated configuration, builds the
// logger and creates the local working directories.
func Bootstrap() (*config.Config, *zap.Logger, error) {
	envFile, err := config.LoadEnv()
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(os.Getenv)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.NewLogger(logging.Options{
		Development: !cfg.IsProduction(),
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	if envFile != "" {
		logger.Info("Loaded environment file", zap.String("path", envFile))
	}

	for _, dir := range []string{cfg.Upload.TempDir, cfg.Upload.TranscriptDir, cfg.Backup.Dir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Sync()
			return nil, nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	return cfg, logger, nil
}
