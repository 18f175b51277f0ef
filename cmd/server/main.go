package main

import (
	"context"
	"log/slog"
	"os"

	"vidtube/config"
	"vidtube/internal/di"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := app.DB.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	if err := app.DB.Migrate(di.Models()...); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	slog.Info("starting server", "port", cfg.Port)
	if err := app.Server.Run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
