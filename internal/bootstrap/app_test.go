package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/R3MiX9002/my-gemini-app/internal/config"
	"github.com/R3MiX9002/my-gemini-app/internal/model"
	"github.com/R3MiX9002/my-gemini-app/internal/store"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App: config.AppConfig{Name: "test", Env: "test", Port: 8080},
		Database: config.DatabaseConfig{
			Driver:     config.DriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "nested", "app.db"),
		},
	}
}

func TestNew_SQLiteOnly(t *testing.T) {
	app, err := New(context.Background(), testConfig(t), zap.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}()

	if app.DefaultUser == nil || app.DefaultUser.Name != model.DefaultUserName || app.DefaultUser.ID == 0 {
		t.Fatalf("DefaultUser = %+v", app.DefaultUser)
	}
	if app.Redis != nil || app.MQConn != nil || app.UploadWorker != nil {
		t.Fatal("optional dependencies should stay disabled without config")
	}

	tables, err := store.Tables(app.DB)
	if err != nil {
		t.Fatalf("Tables() error = %v", err)
	}
	if len(tables) != len(store.Models()) {
		t.Fatalf("Tables() = %v, want %d tables", tables, len(store.Models()))
	}
}

func TestNew_ReusesDefaultUser(t *testing.T) {
	cfg := testConfig(t)
	first, err := New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	firstID := first.DefaultUser.ID
	_ = first.Close()

	second, err := New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer second.Close()
	if second.DefaultUser.ID != firstID {
		t.Fatalf("DefaultUser.ID = %d, want %d", second.DefaultUser.ID, firstID)
	}
}
