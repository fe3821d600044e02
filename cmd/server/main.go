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
	"go.uber.org/zap"

	"expertap/internal/config"
	"expertap/internal/handler"
	"expertap/internal/logging"
	"expertap/internal/parser"
	"expertap/internal/repository/postgres"
	"expertap/internal/router"
	"expertap/internal/service"
	s3storage "expertap/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logging.Sync(logger) }()
	zap.ReplaceGlobals(logger)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize services
	decisionRepo := postgres.NewDecisionRepo(db)
	authSvc := service.NewAuthService(cfg.Auth)
	decisionSvc := service.NewDecisionService(decisionRepo, parser.New(), s3Client, service.DecisionServiceConfig{
		MaxFileSizeBytes: cfg.S3.MaxFileSizeBytes(),
		LegacyEncoding:   cfg.Import.LegacyEncoding,
		Bucket:           cfg.S3.Bucket,
		Prefix:           cfg.S3.Prefix,
		PresignExpiry:    cfg.S3.PresignExpiry,
	}, logger)

	// Initialize handlers
	decisionH := handler.NewDecisionHandler(decisionSvc, cfg.S3.MaxFileSizeBytes())
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(logger, authSvc, decisionH, healthH, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_starting", zap.String("addr", cfg.Server.Port), zap.String("environment", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("server_shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
