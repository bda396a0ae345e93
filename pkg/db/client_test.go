package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/angelmondragon/wandermart-backend/pkg/config"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testModel struct {
	ID   int
	Name string `gorm:"uniqueIndex"`
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&testModel{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func TestPing(t *testing.T) {
	client := Wrap(newTestDB(t), config.StoreBackendSQLite)
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
	if client.Driver() != config.StoreBackendSQLite {
		t.Fatalf("unexpected driver %q", client.Driver())
	}
}

func TestNewRejectsMissingDSNAndUnknownBackend(t *testing.T) {
	ctx := context.Background()
	if _, err := New(ctx, config.StoreBackendSQLite, config.DBConfig{}, nil); err == nil {
		t.Fatal("expected missing dsn error")
	}
	if _, err := New(ctx, "mysql", config.DBConfig{DSN: "x"}, nil); err == nil {
		t.Fatal("expected unsupported backend error")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	conn := newTestDB(t)
	if err := conn.Create(&testModel{Name: "dup"}).Error; err != nil {
		t.Fatalf("seed insert: %v", err)
	}
	err := conn.Create(&testModel{Name: "dup"}).Error
	if !IsUniqueViolation(err) {
		t.Fatalf("expected sqlite unique violation, got %v", err)
	}

	if !IsUniqueViolation(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"})) {
		t.Fatal("expected postgres unique violation")
	}
	if IsUniqueViolation(errors.New("other")) || IsUniqueViolation(nil) {
		t.Fatal("unexpected unique violation")
	}
}
