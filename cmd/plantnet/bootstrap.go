package main

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/plantnet/plantnet-api/internal/infrastructure/config"
	"github.com/plantnet/plantnet-api/pkg/logger"
)

const serviceName = "plantnet"

func loadConfig(ctx context.Context) (*config.Config, error) {
	return config.Load(ctx, envFile)
}

// initLogger emits JSON in production and console output everywhere else.
func initLogger(cfg *config.Config) zerolog.Logger {
	return logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: serviceName,
	})
}
