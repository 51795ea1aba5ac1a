package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/mentoria-api/api/swagger"
	"github.com/noah-isme/mentoria-api/internal/repository"
	"github.com/noah-isme/mentoria-api/internal/server"
	"github.com/noah-isme/mentoria-api/internal/service"
	"github.com/noah-isme/mentoria-api/pkg/cache"
	"github.com/noah-isme/mentoria-api/pkg/config"
	"github.com/noah-isme/mentoria-api/pkg/database"
	"github.com/noah-isme/mentoria-api/pkg/logger"
)

// @title Mentoria API
// @version 1.0.0
// @description Tutoring backend: teachers, students, question bank and answer reports
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

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

	metrics := service.NewMetricsService()
	validate := validator.New()

	var questionCache *service.CacheService
	if cfg.Questions.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("question cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			questionCache = service.NewCacheService(repository.NewCacheRepository(client, "mentoria"), metrics, cfg.Questions.CacheTTL, logr, true)
		}
	}

	teacherRepo := repository.NewTeacherRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)

	teachers := service.NewTeacherService(teacherRepo, studentRepo, linkRepo, answerRepo, validate, logr)
	svc := server.Services{
		Auth:      service.NewAuthService(sessionRepo, teacherRepo, studentRepo, validate, metrics, logr, service.AuthConfig{SessionTTL: cfg.Session.TTL}),
		Teachers:  teachers,
		Students:  service.NewStudentService(studentRepo, teacherRepo, linkRepo, validate, logr),
		Questions: service.NewQuestionService(questionRepo, answerRepo, questionCache, metrics, logr),
		Exports:   service.NewExportService(teachers, logr),
		Metrics:   metrics,
		DB:        db,
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.NewRouter(cfg, svc, logr),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
