package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Contains(t, cfg.Database.DSN, "dbname=spotly_db")
	assert.Equal(t, 8192, cfg.Reservation.DefaultSlotCapacity)
	assert.Equal(t, 8192, cfg.Reservation.MaxSlotCapacity)
	assert.False(t, cfg.Reservation.SkipStartedSlots)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/spots.db")
	t.Setenv("RESERVE_SKIP_STARTED_SLOTS", "true")
	t.Setenv("STORE_RETRY_INITIAL_INTERVAL", "50ms")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SPOT_MAX_SLOT_CAPACITY", "not-a-number")

	cfg := Load()

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/spots.db", cfg.Database.DSN)
	assert.True(t, cfg.Reservation.SkipStartedSlots)
	assert.Equal(t, 50*time.Millisecond, cfg.Retry.InitialInterval)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 8192, cfg.Reservation.MaxSlotCapacity, "invalid values fall back")
}
