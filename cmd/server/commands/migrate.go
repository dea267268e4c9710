package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/R3MiX9002/my-gemini-app/internal/bootstrap"
	"github.com/R3MiX9002/my-gemini-app/internal/store"
)

func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables and list them",
		Long: `Create any missing table in the configured database and print the
tables that exist afterwards. Existing tables and rows are left alone.

Examples:
  my-gemini-app migrate
  SQLITE_PATH=/tmp/app.db my-gemini-app migrate`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := bootstrap.OpenDatabase(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := store.InitSchema(db); err != nil {
		return err
	}
	tables, err := store.Tables(db)
	if err != nil {
		return err
	}
	for _, table := range tables {
		fmt.Fprintln(cmd.OutOrStdout(), table)
	}
	return nil
}
