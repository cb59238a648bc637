package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/sefazor/eventhub-backend/internal/config"
	"github.com/sefazor/eventhub-backend/internal/handler"
	"github.com/sefazor/eventhub-backend/internal/middleware"
	"github.com/sefazor/eventhub-backend/internal/repository"
	"github.com/sefazor/eventhub-backend/internal/service"
	"github.com/sefazor/eventhub-backend/pkg/database"
	"github.com/sefazor/eventhub-backend/pkg/email"
	jwtPkg "github.com/sefazor/eventhub-backend/pkg/jwt"
	"github.com/sefazor/eventhub-backend/pkg/storage"
	"github.com/sefazor/eventhub-backend/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env
	if err := config.LoadEnvFiles(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.NewDatabase(cfg, logger)
	if err != nil {
		return err
	}
	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("database migrated")
	}

	tokens, err := jwtPkg.NewManager(cfg.Auth.SecretKey, cfg.Auth.Algorithm, cfg.Auth.TokenExpiry)
	if err != nil {
		return fmt.Errorf("init token manager: %w", err)
	}

	validator := utils.NewValidator()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)

	// Optional collaborators
	var mailer service.Mailer
	if cfg.Email.Enabled() {
		mailer = email.NewEmailService(cfg.Email, logger)
	}
	var pictures storage.StorageService
	if cfg.R2.Enabled() {
		r2Storage, err := storage.NewCloudflareStorage(ctx, cfg.R2, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize R2 storage: %w", err)
		}
		pictures = r2Storage
	}

	// Services
	authService := service.NewAuthService(db, userRepo, tokens, validator, mailer, logger)
	userService := service.NewUserService(db, userRepo, logger)
	eventService := service.NewEventService(db, eventRepo, pictures, logger)

	app := handler.NewFiberApp(
		handler.Handlers{
			Auth:   handler.NewAuthHandler(authService, validator),
			User:   handler.NewUserHandler(userService, validator),
			Event:  handler.NewEventHandler(eventService, validator),
			Health: handler.NewHealthHandler(db),
		},
		middleware.AuthMiddleware(authService, logger),
		handler.AppOptions{
			CORSOrigins: cfg.CORSOrigins,
			AccessLog:   true,
			Uploads:     pictures != nil,
		},
		logger,
	)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening",
			zap.String("port", cfg.Port),
			zap.Bool("uploads", pictures != nil),
			zap.Bool("welcome_mail", mailer != nil),
		)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
