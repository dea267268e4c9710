package app

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/R3MiX9002/my-gemini-app/internal/platform/sqlite"
	"github.com/R3MiX9002/my-gemini-app/internal/store"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatalf("sqlite.New() error = %v", err)
	}
	if err := store.InitSchema(db); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
