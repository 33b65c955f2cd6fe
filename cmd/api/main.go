package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dida-sync/config"
	"dida-sync/internal/httpserver"
	"dida-sync/internal/markdown"
	"dida-sync/internal/middleware"
	"dida-sync/internal/store"
	taskHTTP "dida-sync/internal/task/delivery/http"
	"dida-sync/internal/task/repository"
	"dida-sync/internal/task/repository/dida"
	"dida-sync/internal/task/usecase"
	"dida-sync/pkg/log"
)

// @title       Dida Sync API
// @description Task retrieval, filtering and markdown document sync for Dida365 / TickTick.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Dida Sync...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Vault root: %s", cfg.Vault.Root)

	// 3. Task domain
	didaClient := dida.NewClient(dida.Options{
		Username:          cfg.Dida.Username,
		Password:          cfg.Dida.Password,
		APIHost:           hostOrDefault(cfg.Dida.DidaHost, dida.DidaAPIHost),
		CompletedLimit:    cfg.Sync.CompletedLimit,
		RequestsPerMinute: cfg.Sync.RequestsPerMinute,
	}, logger)
	ticktickClient := dida.NewClient(dida.Options{
		Username:          cfg.Dida.Username,
		Password:          cfg.Dida.Password,
		APIHost:           hostOrDefault(cfg.Dida.TickTickHost, dida.TickTickAPIHost),
		CompletedLimit:    cfg.Sync.CompletedLimit,
		RequestsPerMinute: cfg.Sync.RequestsPerMinute,
	}, logger)

	facade := repository.NewFacade(
		dida.New(didaClient, logger),
		dida.New(ticktickClient, logger),
	)

	vault := store.NewVault(logger, cfg.Vault.Root, cfg.Vault.AttachmentDir)
	renderer := markdown.NewRenderer()

	taskUC := usecase.New(logger, facade, vault, renderer, cfg.Sync.WindowDays, cfg.Sync.DisableAutoAction)
	taskHandler := taskHTTP.New(logger, taskUC)

	// 4. HTTP Server
	httpServer, err := httpserver.New(httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Middleware:  middleware.New(logger),
		TaskHandler: taskHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

func hostOrDefault(host, fallback string) string {
	if host != "" {
		return host
	}
	return fallback
}
