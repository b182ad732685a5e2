package database

import (
	"context"
	"fmt"
	"time"

	appconfig "orderflow/internal/infrastructure/config"
	"orderflow/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	connectAttempts = 10
	connectBackoff  = 2 * time.Second
)

// ConnectGorm opens the relational store selected by cfg.Driver and checks
// connectivity. Postgres gets a few retries while its container comes up.
func ConnectGorm(ctx context.Context, cfg appconfig.StorageConfig, logLevel string) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database_dsn is empty")
	}
	var dialector gorm.Dialector
	switch cfg.Driver {
	case appconfig.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case appconfig.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("storage driver %q is not relational", cfg.Driver)
	}

	level := gormlogger.Silent
	if logLevel == "debug" {
		level = gormlogger.Info
	}
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(level)}

	var (
		db  *gorm.DB
		err error
	)
	for i := 0; i < connectAttempts; i++ {
		db, err = gorm.Open(dialector, gcfg)
		if err == nil {
			break
		}
		logger.Warnf(ctx, "[database][gorm] connect failed attempt=%d err=%v", i+1, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectBackoff):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	if pingErr := db.WithContext(ctx).Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	logger.Infof(ctx, "[database][gorm] connected driver=%s", cfg.Driver)
	return db, nil
}
