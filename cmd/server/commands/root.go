package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/R3MiX9002/my-gemini-app/internal/config"
	"github.com/R3MiX9002/my-gemini-app/internal/pkg/logger"
)

var configFile string

// NewRootCmd builds the CLI. Without a subcommand it serves HTTP.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "my-gemini-app",
		Short: "Gemini chat relay, search passthrough and upload server",
		Long: `my-gemini-app serves the web client, relays chat requests to the
Gemini API as server-sent events, proxies Yahoo and Bing searches and
stores uploaded files and context records in SQLite.

Examples:
  my-gemini-app
  my-gemini-app serve --config configs/config.toml
  my-gemini-app migrate
  my-gemini-app cube
  my-gemini-app github-sync --dir ./site --owner me --repo site --branch deploy`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a TOML config file (overrides CONFIG_FILE)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewCubeCmd())
	cmd.AddCommand(NewGitHubSyncCmd())
	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

// loadRuntime reads the config and builds the process logger.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	if configFile != "" {
		if err := os.Setenv("CONFIG_FILE", configFile); err != nil {
			return nil, nil, fmt.Errorf("set CONFIG_FILE failed: %w", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
