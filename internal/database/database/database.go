// Package database opens and manages the gorm postgres connection.
package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/perftrack/perftrack/internal/database/config"
	"github.com/perftrack/perftrack/internal/database/pool"
	"github.com/perftrack/perftrack/pkg/retry"
)

// connectBudget bounds the whole retry loop, not a single attempt.
const connectBudget = 2 * time.Minute

// New connects using configuration read from the environment.
func New() (*gorm.DB, error) {
	return NewWithConfig(config.LoadConfigFromEnv())
}

// NewWithConfig connects to postgres with retries and applies the
// connection pool limits. Connection errors are sanitized before they
// are returned so credentials stay out of logs.
func NewWithConfig(cfg config.Config) (*gorm.DB, error) {
	dsn := config.BuildDSN(cfg)
	retryCfg := config.LoadRetryConfigFromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), connectBudget)
	defer cancel()

	db, err := retry.DoWithResult(ctx, retryCfg, func() (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	})
	if err != nil {
		return nil, config.SanitizeError(err, cfg)
	}

	if err := pool.SetupConnectionPool(db, pool.LoadPoolConfigFromEnv()); err != nil {
		return nil, err
	}
	return db, nil
}

// HealthCheck pings the underlying connection.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetStats exposes pool statistics for diagnostics.
func GetStats(db *gorm.DB) (*sql.DBStats, error) {
	if db == nil {
		return nil, errors.New("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	stats := sqlDB.Stats()
	return &stats, nil
}
