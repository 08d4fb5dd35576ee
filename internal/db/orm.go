package db

import (
	"fmt"
	"time"

	"aerocost/api/internal/config"
	"aerocost/api/internal/logging"
	gormModels "aerocost/api/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitORM opens the primary store. Postgres in deployed environments,
// SQLite for local runs and tests.
func InitORM(cfg config.DatabaseConfig, appEnv string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.IsSQLite() {
		dialector = sqlite.Open(cfg.SQLitePath)
	} else {
		dialector = postgres.Open(cfg.DSN())
	}

	logLevel := logger.Warn
	if appEnv == "production" {
		logLevel = logger.Error
	}

	var (
		db  *gorm.DB
		err error
	)
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(dialector, &gorm.Config{
			Logger:         logger.Default.LogMode(logLevel),
			TranslateError: true,
		})
		if err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	if cfg.IsSQLite() {
		// SQLite allows one writer; a single connection avoids SQLITE_BUSY
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	logging.Info("[DB] Connected via GORM", "driver", cfg.Driver)
	return db, nil
}

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&gormModels.User{},
		&gormModels.Aircraft{},
		&gormModels.FixedCost{},
		&gormModels.VariableCost{},
		&gormModels.Route{},
		&gormModels.FxRate{},
		&gormModels.Flight{},
		&gormModels.CalculationLog{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}
