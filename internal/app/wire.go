//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"transcript-sheets/internal/config"
)

// InitializeApplication builds the service graph from a validated configuration
func InitializeApplication(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Application, error) {
	wire.Build(ProviderSet)
	return &Application{}, nil
}
