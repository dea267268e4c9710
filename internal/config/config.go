package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// PlaceholderAPIKey is the value shipped in the default config. The chat relay
// refuses to call the model while the key still holds it.
const PlaceholderAPIKey = "TODO"

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Config struct {
	App      AppConfig      `toml:"app"`
	LLM      LLMConfig      `toml:"llm"`
	Database DatabaseConfig `toml:"database"`
	Upload   UploadConfig   `toml:"upload"`
	Search   SearchConfig   `toml:"search"`
	Redis    RedisConfig    `toml:"redis"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	GitHub   GitHubConfig   `toml:"github"`
}

type AppConfig struct {
	Name     string `toml:"name" env:"APP_NAME"`
	Env      string `toml:"env" env:"APP_ENV"`
	Host     string `toml:"host" env:"APP_HOST"`
	Port     int    `toml:"port" env:"PORT"`
	GinMode  string `toml:"gin_mode" env:"GIN_MODE"`
	WebDir   string `toml:"web_dir" env:"WEB_DIR"`
	LogLevel string `toml:"log_level" env:"LOG_LEVEL"`
}

type LLMConfig struct {
	BaseURL        string `toml:"base_url" env:"LLM_BASE_URL"`
	APIKey         string `toml:"api_key" env:"GOOGLE_API_KEY"`
	Model          string `toml:"model" env:"LLM_MODEL"`
	StreamBuffer   int    `toml:"stream_buffer" env:"LLM_STREAM_BUFFER"`
	TimeoutSeconds int    `toml:"timeout_seconds" env:"LLM_TIMEOUT_SECONDS"`
}

type DatabaseConfig struct {
	Driver     string      `toml:"driver" env:"DB_DRIVER"`
	SQLitePath string      `toml:"sqlite_path" env:"SQLITE_PATH"`
	MySQL      MySQLConfig `toml:"mysql"`
}

type MySQLConfig struct {
	Host     string `toml:"host" env:"MYSQL_HOST"`
	Port     int    `toml:"port" env:"MYSQL_PORT"`
	User     string `toml:"user" env:"MYSQL_USER"`
	Password string `toml:"password" env:"MYSQL_PASSWORD"`
	DB       string `toml:"db" env:"MYSQL_DB"`
	Params   string `toml:"params" env:"MYSQL_PARAMS"`
}

type UploadConfig struct {
	Dir         string `toml:"dir" env:"UPLOAD_DIR"`
	MaxMemoryMB int    `toml:"max_memory_mb" env:"UPLOAD_MAX_MEMORY_MB"`
}

type SearchConfig struct {
	Yahoo           SearchEngineConfig `toml:"yahoo" envPrefix:"YAHOO_"`
	Bing            SearchEngineConfig `toml:"bing" envPrefix:"BING_"`
	TimeoutSeconds  int                `toml:"timeout_seconds" env:"SEARCH_TIMEOUT_SECONDS"`
	CacheTTLSeconds int                `toml:"cache_ttl_seconds" env:"SEARCH_CACHE_TTL_SECONDS"`
}

type SearchEngineConfig struct {
	URL    string `toml:"url" env:"SEARCH_URL"`
	APIKey string `toml:"api_key" env:"API_KEY"`
	Market string `toml:"market" env:"MARKET"`
}

// RedisConfig is optional; an empty Addr disables Redis.
type RedisConfig struct {
	Addr     string `toml:"addr" env:"REDIS_ADDR"`
	Password string `toml:"password" env:"REDIS_PASSWORD"`
	DB       int    `toml:"db" env:"REDIS_DB"`
}

// RabbitMQConfig is optional; an empty URL disables upload events.
type RabbitMQConfig struct {
	URL         string `toml:"url" env:"RABBITMQ_URL"`
	UploadQueue string `toml:"upload_queue" env:"RABBITMQ_UPLOAD_QUEUE"`
}

type GitHubConfig struct {
	Token  string `toml:"token" env:"GITHUB_TOKEN"`
	APIURL string `toml:"api_url" env:"GITHUB_API_URL"`
}

// Load builds the config from defaults, the TOML file named by CONFIG_FILE,
// a local .env file and finally the process environment.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env file failed: %w", err)
	}

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config failed: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.App.Port)
	}
	return nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		c.Database.MySQL.User,
		c.Database.MySQL.Password,
		c.Database.MySQL.Host,
		c.Database.MySQL.Port,
		c.Database.MySQL.DB,
		c.Database.MySQL.Params,
	)
}

// LLMConfigured reports whether a real chat API key is set.
func (c *Config) LLMConfigured() bool {
	key := strings.TrimSpace(c.LLM.APIKey)
	return key != "" && key != PlaceholderAPIKey
}

func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.Search.TimeoutSeconds) * time.Second
}

func (c *Config) SearchCacheTTL() time.Duration {
	return time.Duration(c.Search.CacheTTLSeconds) * time.Second
}

func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:     "my-gemini-app",
			Env:      "dev",
			Host:     "0.0.0.0",
			Port:     80,
			GinMode:  "release",
			WebDir:   "web",
			LogLevel: "info",
		},
		LLM: LLMConfig{
			BaseURL:        "https://generativelanguage.googleapis.com/v1beta/openai",
			APIKey:         PlaceholderAPIKey,
			Model:          "gemini-1.5-flash",
			StreamBuffer:   16,
			TimeoutSeconds: 120,
		},
		Database: DatabaseConfig{
			Driver:     DriverSQLite,
			SQLitePath: "data/app.db",
			MySQL: MySQLConfig{
				Host:   "127.0.0.1",
				Port:   3306,
				User:   "root",
				DB:     "my_gemini_app",
				Params: "parseTime=true&loc=Local&charset=utf8mb4",
			},
		},
		Upload: UploadConfig{
			Dir:         "uploads",
			MaxMemoryMB: 32,
		},
		Search: SearchConfig{
			Yahoo: SearchEngineConfig{
				URL: "https://api.search.yahoo.com/search",
			},
			Bing: SearchEngineConfig{
				URL:    "https://api.bing.microsoft.com/v7.0/search",
				Market: "de-DE",
			},
			TimeoutSeconds:  15,
			CacheTTLSeconds: 0,
		},
		RabbitMQ: RabbitMQConfig{
			UploadQueue: "files.uploaded",
		},
		GitHub: GitHubConfig{
			APIURL: "https://api.github.com",
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
