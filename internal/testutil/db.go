// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sefazor/eventhub-backend/pkg/database"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory SQLite database closed at test cleanup.
// A single connection keeps every query on the same in-memory database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(zaptest.NewLogger(t), false))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
