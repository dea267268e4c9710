package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate keeps config.Load away from any real config or .env file.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("CONFIG_FILE", filepath.Join(dir, "missing.toml"))
	t.Setenv("LOG_LEVEL", "error")
	configFile = ""
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	if cmd.Use != "my-gemini-app" {
		t.Errorf("Use = %q, want %q", cmd.Use, "my-gemini-app")
	}
	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}
	if !strings.Contains(cmd.Long, "Examples:") {
		t.Error("Long description should contain examples")
	}
	if cmd.RunE == nil {
		t.Error("root command should serve when run without a subcommand")
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"serve", "migrate", "cube", "github-sync"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			if err != nil {
				t.Fatalf("Find(%q) error = %v", name, err)
			}
			if sub.Use != name {
				t.Errorf("Use = %q, want %q", sub.Use, name)
			}
		})
	}
}

func TestRootCmd_ConfigFlag(t *testing.T) {
	cmd := NewRootCmd()
	flag := cmd.PersistentFlags().Lookup("config")
	if flag == nil {
		t.Fatal("--config flag not found")
	}
	if flag.DefValue != "" {
		t.Errorf("--config default = %q, want empty", flag.DefValue)
	}
}
