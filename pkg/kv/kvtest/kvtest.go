// Package kvtest provides throwaway stores for tests.
package kvtest

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/angelmondragon/wandermart-backend/pkg/config"
	"github.com/angelmondragon/wandermart-backend/pkg/kv"
	"github.com/angelmondragon/wandermart-backend/pkg/migrate"
	redisclient "github.com/angelmondragon/wandermart-backend/pkg/redis"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewSQLite opens a private in-memory sqlite database, applies the
// migrations and returns a store on top of it.
func NewSQLite(t testing.TB) *kv.GormStore {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := migrate.Up(context.Background(), sqlDB, config.StoreBackendSQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return kv.NewGormStore(conn)
}

// NewRedis starts a miniredis server and returns a store backed by it.
func NewRedis(t testing.TB) (*kv.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	raw := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = raw.Close() })
	return kv.NewRedisStore(redisclient.NewWithClient(raw, "test")), mr
}
