package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"dida-sync/config"
	"dida-sync/internal/markdown"
	"dida-sync/internal/model"
	"dida-sync/internal/store"
	"dida-sync/internal/task"
	"dida-sync/internal/task/repository"
	"dida-sync/internal/task/repository/dida"
	"dida-sync/internal/task/usecase"
	"dida-sync/pkg/log"
)

// One-shot sync: reads the target document's `dida:` frontmatter as filter
// criteria, runs the pipeline and rewrites the document body.
func main() {
	doc := flag.String("doc", "", "vault-relative path of the document to sync")
	flag.Parse()

	if *doc == "" {
		fmt.Fprintln(os.Stderr, "usage: sync -doc <vault-relative path>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config: ", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	vault := store.NewVault(logger, cfg.Vault.Root, cfg.Vault.AttachmentDir)

	content, err := vault.ReadDocument(*doc)
	if err != nil {
		logger.Errorf(ctx, "Failed to read document: %v", err)
		os.Exit(1)
	}
	criteria, err := store.ParseFrontmatter(content)
	if err != nil {
		logger.Errorf(ctx, "Failed to read criteria from %s: %v", *doc, err)
		os.Exit(1)
	}

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

	uc := usecase.New(logger, facade, vault, markdown.NewRenderer(), cfg.Sync.WindowDays, cfg.Sync.DisableAutoAction)

	sc := model.Scope{RunID: uuid.NewString()}
	out, err := uc.SyncDocument(ctx, sc, task.SyncInput{
		Criteria: criteria,
		Document: *doc,
	})
	if err != nil {
		logger.Errorf(ctx, "Sync failed: %v", err)
		os.Exit(1)
	}

	logger.Infof(ctx, "Synced %s: tasks=%d attachments=%d written=%v", *doc, out.TaskCount, out.AttachmentCount, out.Written)
}

func hostOrDefault(host, fallback string) string {
	if host != "" {
		return host
	}
	return fallback
}
