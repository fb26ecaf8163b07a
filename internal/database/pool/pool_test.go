package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestSetupConnectionPool(t *testing.T) {
	t.Run("applies limits", func(t *testing.T) {
		db := openDB(t)
		cfg := Config{
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: time.Minute,
			ConnMaxIdleTime: time.Minute,
		}
		require.NoError(t, SetupConnectionPool(db, cfg))

		sqlDB, err := db.DB()
		require.NoError(t, err)
		assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
	})

	t.Run("rejects zero max open", func(t *testing.T) {
		err := SetupConnectionPool(openDB(t), Config{MaxOpenConns: 0})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MaxOpenConns")
	})

	t.Run("rejects idle above open", func(t *testing.T) {
		err := SetupConnectionPool(openDB(t), Config{MaxOpenConns: 2, MaxIdleConns: 5})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceed")
	})

	t.Run("rejects negative idle", func(t *testing.T) {
		err := SetupConnectionPool(openDB(t), Config{MaxOpenConns: 5, MaxIdleConns: -1})
		require.Error(t, err)
	})
}

func TestLoadPoolConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := LoadPoolConfigFromEnv()
		assert.Equal(t, DefaultPoolConfig(), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("DB_POOL_MAX_OPEN", "50")
		t.Setenv("DB_POOL_CONN_MAX_LIFETIME", "1h")

		cfg := LoadPoolConfigFromEnv()
		assert.Equal(t, 50, cfg.MaxOpenConns)
		assert.Equal(t, time.Hour, cfg.ConnMaxLifetime)
		assert.Equal(t, DefaultPoolConfig().MaxIdleConns, cfg.MaxIdleConns)
	})

	t.Run("garbage falls back", func(t *testing.T) {
		t.Setenv("DB_POOL_MAX_OPEN", "many")
		cfg := LoadPoolConfigFromEnv()
		assert.Equal(t, DefaultPoolConfig().MaxOpenConns, cfg.MaxOpenConns)
	})
}
