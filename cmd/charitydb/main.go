package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/charitydb/internal/config"
	"github.com/JonMunkholm/charitydb/internal/core"
	"github.com/JonMunkholm/charitydb/internal/logging"
	"github.com/JonMunkholm/charitydb/internal/metrics"
	"github.com/JonMunkholm/charitydb/internal/mirror"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx = logging.WithRunID(ctx, uuid.NewString())
	logger := logging.FromContext(ctx)

	logger.Info("configuration loaded",
		"source", cfg.Paths.SourceCSV,
		"database", cfg.Paths.Database,
		"mirror_enabled", cfg.Mirror.Enabled(),
		"metrics_textfile", cfg.Metrics.TextfilePath,
	)
	logger.Debug("configuration", "config", cfg.String())

	deps := core.Deps{
		Observer: metrics.NewRecorder(cfg.Metrics.TextfilePath),
	}
	if cfg.Mirror.Enabled() {
		deps.Mirror = mirror.NewPublisher(cfg.Mirror)
	}

	if _, err := core.NewService(cfg, deps).Build(ctx); err != nil {
		logger.Error("build failed",
			"error", err,
			"hint", core.FormatUserError(err),
		)
		stop()
		os.Exit(1)
	}
	stop()
}
