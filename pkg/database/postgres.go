package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sefazor/eventhub-backend/internal/config"
	"github.com/sefazor/eventhub-backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the Postgres pool described by cfg.
func NewDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.URL), GormConfig(log, cfg.DebugMode))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	log.Info("database connected",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)
	return db, nil
}

// GormConfig is shared by the Postgres pool and the test databases so both
// report unique violations as gorm.ErrDuplicatedKey. SQL logging goes to log.
func GormConfig(log *zap.Logger, debug bool) *gorm.Config {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return &gorm.Config{
		TranslateError: true,
		Logger: logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

// RunMigrations creates or updates the users and events tables.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Event{},
	)
}

// Ping checks that the database answers within ctx.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
