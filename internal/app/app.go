package app

import (
	"context"

	"jobhub_backend/internal/config"
	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/notify"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/services"
	"jobhub_backend/internal/storage"
	"jobhub_backend/internal/validator"
)

// Run boots the data layer: config, logger, repositories for the configured
// backend, then both stores. It logs readiness once the stores are usable.
func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	ctx := context.Background()

	blobs, err := storage.NewLocalBlobStore(cfg.Store.BasePath)
	if err != nil {
		logger.Fatal("Failed to initialize blob storage", "error", err)
	}
	logger.Info("Blob storage initialized", "base_path", cfg.Store.BasePath)

	repos, err := repositories.New(ctx, cfg.Store, blobs)
	if err != nil {
		logger.Fatal("Failed to initialize repositories", "error", err)
	}
	logger.Info("Repositories initialized", "backend", cfg.Store.Backend)

	container, err := services.NewServiceContainer(ctx, repos, validator.New(), notify.LogNotifier{}, cfg.Store.SeedDemoData)
	if err != nil {
		logger.Fatal("Failed to initialize stores", "error", err)
	}

	userCount, err := container.Auth.CountUsers(ctx)
	if err != nil {
		logger.Warn("Could not count users", "error", err)
	}

	fields := []any{
		"backend", cfg.Store.Backend,
		"users", userCount,
		"jobs", len(container.Jobs.Jobs()),
		"applications", len(container.Jobs.Applications()),
	}
	if current := container.Auth.CurrentUser(); current != nil {
		fields = append(fields, "session_user", current.Email)
	}
	logger.Info("Stores ready", fields...)
}
