package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/beanfield/storefront-gateway/config"
	"github.com/beanfield/storefront-gateway/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logStartupInfo(ctx, logger, &cfg)

	adapters, err := bootstrap.BuildAdapters(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer adapters.Close()

	services := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:   &cfg,
		Adapters: adapters,
		Logger:   logger,
	})

	return bootstrap.Run(bootstrap.RunConfig{
		Config:   &cfg,
		Services: services,
		Ready:    adapters.Ready,
		Logger:   logger,
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting storefront gateway",
		"backend_url", cfg.Backend.URL,
		"session_store", string(cfg.Session.Driver),
		"auth_mode", string(cfg.Auth.Mode),
		"catalog_cache", cfg.Cache.Enabled,
		"addr", cfg.HTTP.Addr)
}
