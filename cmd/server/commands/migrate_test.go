package commands

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrateCmd(t *testing.T) {
	dir := isolate(t)
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "app.db"))

	out, err := run(t, "migrate")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, table := range []string{"users", "sessions", "context_points", "uploaded_files"} {
		if !strings.Contains(out, table) {
			t.Errorf("output missing table %q:\n%s", table, out)
		}
	}
}

func TestMigrateCmd_InvalidConfig(t *testing.T) {
	isolate(t)
	t.Setenv("DB_DRIVER", "postgres")

	if _, err := run(t, "migrate"); err == nil {
		t.Fatal("Execute() error = nil, want unsupported driver error")
	}
}
