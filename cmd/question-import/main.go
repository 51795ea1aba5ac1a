package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/noah-isme/mentoria-api/internal/repository"
	"github.com/noah-isme/mentoria-api/internal/service"
	"github.com/noah-isme/mentoria-api/pkg/cache"
	"github.com/noah-isme/mentoria-api/pkg/config"
	"github.com/noah-isme/mentoria-api/pkg/database"
	"github.com/noah-isme/mentoria-api/pkg/logger"
)

func main() {
	root := flag.String("root", "questions", "directory holding <year>/questions/<n>/details.json")
	retries := flag.Int("retries", 2, "attempts per file after the first failure")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		logr.Fatal("failed to ensure schema", zap.Error(err))
	}

	var questionCache *service.CacheService
	if cfg.Questions.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("skipping cache invalidation", zap.Error(err))
		} else {
			defer client.Close()
			questionCache = service.NewCacheService(repository.NewCacheRepository(client, "mentoria"), nil, cfg.Questions.CacheTTL, logr, true)
		}
	}

	importer := service.NewQuestionImportService(
		repository.NewQuestionRepository(db),
		questionCache,
		logr,
		service.ImportConfig{Workers: cfg.Questions.ImportWorkers, MaxRetries: *retries},
	)

	summary, err := importer.ImportDir(ctx, *root)
	if summary != nil {
		fmt.Printf("processed=%d overflow=%d failed=%d\n", summary.Processed, summary.Overflow, summary.Failed)
	}
	if err != nil {
		logr.Fatal("import failed", zap.String("root", *root), zap.Error(err))
	}
	if summary.Failed > 0 {
		os.Exit(1)
	}
}
