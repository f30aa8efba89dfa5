package testutil

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"spotly/internal/shared/config"
	"spotly/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const testDBLockID int64 = 801234569

// NewDB returns a migrated store. TEST_DATABASE_URL selects a PostgreSQL
// server, which is skipped when unreachable; otherwise every call gets a
// private in-memory SQLite database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	if dsn := os.Getenv("TEST_DATABASE_URL"); dsn != "" {
		return newPostgres(t, dsn)
	}
	return newSQLite(t)
}

func newSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, t.Name()) + "_" + uuid.NewString()[:8]
	db, err := database.OpenSQL(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    "file:" + name + "?mode=memory&cache=shared",
	}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	closeOnCleanup(t, db)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newPostgres(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQL(config.DatabaseConfig{
		Driver:       config.DriverPostgres,
		DSN:          dsn,
		MaxIdleConns: 4,
		MaxOpenConns: 16,
	}, nil)
	if err != nil {
		t.Skipf("skipping PostgreSQL tests: %v", err)
	}
	closeOnCleanup(t, db)

	lockTestDB(t, db)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec(`TRUNCATE tickets, slots, spots`).Error; err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

// lockTestDB serializes packages that share one PostgreSQL database
func lockTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		t.Fatalf("acquire lock conn: %v", err)
	}
	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, testDBLockID); err != nil {
		_ = conn.Close()
		t.Fatalf("acquire test lock: %v", err)
	}

	t.Cleanup(func() {
		_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, testDBLockID)
		_ = conn.Close()
	})
}

func closeOnCleanup(t *testing.T, db *gorm.DB) {
	t.Helper()
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
}
