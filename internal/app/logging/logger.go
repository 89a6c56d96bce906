// Package logging builds the service's zap logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName is attached to every production log entry
const ServiceName = "transcript-sheets"

// Options selects the encoder and minimum level
type Options struct {
	// Development switches to the coloured console encoder
	Development bool
	// Level is one of debug, info, warn, error. Empty means info.
	Level       string
	Environment string
	Version     string
}

// NewLogger builds a console logger for development and a JSON logger with
// service, environment and version fields otherwise
func NewLogger(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}

	if opts.Development {
		config := zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return config.Build()
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config.Build(zap.Fields(
		zap.String("service", ServiceName),
		zap.String("environment", opts.Environment),
		zap.String("version", opts.Version),
	))
}
