package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points CONFIG_FILE at a path that does not exist and moves into an
// empty directory so no stray .env file is picked up.
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
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Port != 80 {
		t.Errorf("App.Port = %d, want 80", cfg.App.Port)
	}
	if cfg.LLM.APIKey != PlaceholderAPIKey {
		t.Errorf("LLM.APIKey = %q, want placeholder", cfg.LLM.APIKey)
	}
	if cfg.LLMConfigured() {
		t.Error("LLMConfigured() = true with placeholder key")
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Search.Bing.Market != "de-DE" {
		t.Errorf("Search.Bing.Market = %q, want de-DE", cfg.Search.Bing.Market)
	}
	if cfg.SearchCacheTTL() != 0 {
		t.Errorf("SearchCacheTTL() = %v, want 0", cfg.SearchCacheTTL())
	}
	if cfg.HTTPAddr() != "0.0.0.0:80" {
		t.Errorf("HTTPAddr() = %q", cfg.HTTPAddr())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "8081")
	t.Setenv("GOOGLE_API_KEY", "real-key")
	t.Setenv("BING_API_KEY", "bing-key")
	t.Setenv("YAHOO_SEARCH_URL", "http://yahoo.test/search")
	t.Setenv("SEARCH_CACHE_TTL_SECONDS", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Port != 8081 {
		t.Errorf("App.Port = %d, want 8081", cfg.App.Port)
	}
	if !cfg.LLMConfigured() {
		t.Error("LLMConfigured() = false, want true")
	}
	if cfg.Search.Bing.APIKey != "bing-key" {
		t.Errorf("Search.Bing.APIKey = %q, want bing-key", cfg.Search.Bing.APIKey)
	}
	if cfg.Search.Yahoo.URL != "http://yahoo.test/search" {
		t.Errorf("Search.Yahoo.URL = %q", cfg.Search.Yahoo.URL)
	}
	if cfg.SearchCacheTTL().Seconds() != 30 {
		t.Errorf("SearchCacheTTL() = %v, want 30s", cfg.SearchCacheTTL())
	}
}

func TestLoad_TOMLFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	content := `
[app]
port = 9090
web_dir = "public"

[database]
sqlite_path = "/tmp/other.db"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.App.Port != 9090 {
		t.Errorf("App.Port = %d, want 9090", cfg.App.Port)
	}
	if cfg.App.WebDir != "public" {
		t.Errorf("App.WebDir = %q, want public", cfg.App.WebDir)
	}
	if cfg.Database.SQLitePath != "/tmp/other.db" {
		t.Errorf("Database.SQLitePath = %q", cfg.Database.SQLitePath)
	}
	// untouched sections keep their defaults
	if cfg.LLM.Model != "gemini-1.5-flash" {
		t.Errorf("LLM.Model = %q, want default", cfg.LLM.Model)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LLM_MODEL=gemini-1.5-pro\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("LLM_MODEL") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LLM.Model != "gemini-1.5-pro" {
		t.Errorf("LLM.Model = %q, want gemini-1.5-pro", cfg.LLM.Model)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"mysql driver", func(c *Config) { c.Database.Driver = DriverMySQL }, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "postgres" }, true},
		{"zero port", func(c *Config) { c.App.Port = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
