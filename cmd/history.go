package cmd

import (
	"fmt"
	"os"

	"github.com/lushalytics/dateplot/internal/contract"
	"github.com/lushalytics/dateplot/internal/history"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyConfig loads the minimal configuration needed for history operations.
// This avoids input file validation for simple maintenance commands.
func historyConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := contract.ValidateHistoryBackend(cfg, viper.GetString("history-backend"), viper.GetString("history-db-connect")); err != nil {
		return err
	}
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// historySetup loads the history config and opens the run store.
func historySetup(_ *cobra.Command, _ []string) error {
	if err := historyConfig(); err != nil {
		return err
	}
	return history.InitHistory(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// historyMaintenanceSetup loads the history config without opening the store,
// so tables are neither created nor locked.
func historyMaintenanceSetup(_ *cobra.Command, _ []string) error {
	return historyConfig()
}

// sqlitePath is the SQLite file in use: the connection string if set, else the default.
func sqlitePath() string {
	if cfg.HistoryDBConnect != "" {
		return cfg.HistoryDBConnect
	}
	return history.GetHistoryDBFilePath()
}

// historyCmd is focused on run history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the history of plot runs",
	Long: `Manage the record of plot runs.

Every plot run is recorded with its chart kind, timing, row counts and
configuration. Supported backends: SQLite (default), MySQL, PostgreSQL,
or None (disabled).

Subcommands:
  status  - Show run history statistics
  export  - Export runs to Parquet for analytics
  clear   - Remove all run history
  migrate - Run database schema migrations

Examples:
  # Check history status
  dateplot history status

  # Export for analysis in pandas/DuckDB
  dateplot history export --output-file runs.parquet`,
}

// historyStatusCmd shows run history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display run history statistics and connection details",
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := history.Manager.GetRunStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		history.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports plot runs to a Parquet file.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export plot runs to Parquet for BI tools and analytics",
	Long: `Export every recorded plot run to a Parquet file.

Requires: --output-file parameter

Examples:
  dateplot history export --output-file runs.parquet
  duckdb -c "SELECT kind, count(*) FROM read_parquet('runs.parquet') GROUP BY kind"`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteHistoryExport(os.Stderr, history.Manager, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all run history",
	Long: `Delete all stored plot runs.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  dateplot history export --output-file backup.parquet
  dateplot history clear`,
	PreRunE: historyMaintenanceSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ClearHistory(cfg.HistoryBackend, sqlitePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the run store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  dateplot history migrate

  # Rollback to initial state
  dateplot history migrate --target-version 0`,
	PreRunE: historyMaintenanceSetup,
	Run: func(_ *cobra.Command, _ []string) {
		connStr := cfg.HistoryDBConnect
		if connStr == "" {
			connStr = sqlitePath()
		}
		targetVersion := viper.GetInt("target-version")
		if err := history.MigrateHistory(os.Stdout, cfg.HistoryBackend, connStr, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
