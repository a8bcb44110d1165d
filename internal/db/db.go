package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ledger-app-go/internal/config"
	"ledger-app-go/internal/domain/ledger"
	"ledger-app-go/pkg/logger"
)

const (
	defaultMaxOpenConns    = 10
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 30 * time.Minute
)

// Open connects to the configured database, applies pool settings, and
// migrates the ledger schema.
func Open(cfg config.DBConfig, log logger.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg, log)
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = defaultMaxOpenConns
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = defaultMaxIdleConns
	}
	connMaxLifetime := cfg.ConnMaxLifetime
	if connMaxLifetime == 0 {
		connMaxLifetime = defaultConnMaxLifetime
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if err := Migrate(gormDB); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("db: connected", "driver", cfg.Driver)
	return gormDB, nil
}

// Migrate creates or updates the ledger tables. AutoMigrate is used instead
// of SQL files so the same schema loads on both supported dialects.
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&ledger.User{},
		&ledger.Expense{},
		&ledger.Income{},
		&ledger.Balance{},
		&ledger.Budget{},
	)
}

func dialectorFor(cfg config.DBConfig, log logger.Logger) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		log.Info("db: connecting to postgres", "host", cfg.Host, "port", cfg.Port, "dbname", cfg.Name, "sslmode", cfg.SSLMode)
		return postgres.Open(cfg.GetDSN()), nil
	case config.DriverSQLite:
		if cfg.SQLitePath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
		log.Info("db: opening sqlite", "path", cfg.SQLitePath)
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.Driver)
	}
}
