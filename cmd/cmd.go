// Package cmd defines the command-line interface for dateplot.
package cmd

import (
	"github.com/lushalytics/dateplot/internal/contract"
	"github.com/lushalytics/dateplot/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(lineCmd)
	rootCmd.AddCommand(errorCmd)
	rootCmd.AddCommand(barCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("date", "", "Column holding the row date")
	rootCmd.PersistentFlags().StringSliceP("filter", "f", nil, "Keep rows where column matches, as 'column=value|value' (repeatable)")
	rootCmd.PersistentFlags().StringP("granularity", "g", contract.DefaultGranularity, "Bucket size: daily or weekly or monthly")
	rootCmd.PersistentFlags().Bool("incomplete-drop", false, "Drop the latest bucket when its period is not fully observed")
	rootCmd.PersistentFlags().Int("days-back", contract.DefaultDaysBack, "Only keep rows from the last N days (0 = keep everything)")
	rootCmd.PersistentFlags().String("week-start", contract.DefaultWeekStart, "First day of weekly buckets")
	rootCmd.PersistentFlags().String("title", "", "Chart title")
	rootCmd.PersistentFlags().Int("width", 0, "Chart width in pixels (0 = chart default)")
	rootCmd.PersistentFlags().Int("height", 0, "Chart height in pixels (0 = chart default)")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or json or csv or parquet or svg or png")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in status lines (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("style-file", "", "Path to a TOML theme applied before the config file style block")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Local flags are bound to Viper when the command runs, since line, bar
	// and error share flag names.
	lineCmd.Flags().StringP("target", "t", "", "Comma-separated metric columns to plot")
	lineCmd.Flags().StringP("segment", "s", "", "Column splitting the chart into one line per value")
	lineCmd.Flags().StringP("aggregator", "a", "", "Reduction per bucket: sum or avg or weighted_avg (empty = daily pass-through)")
	lineCmd.Flags().String("count", "", "Weight column for weighted_avg")

	barCmd.Flags().StringP("target", "t", "", "Metric column to sum")
	barCmd.Flags().StringP("segment", "s", "", "Column stacking the bars")
	barCmd.Flags().Bool("part-of-whole", false, "Plot each segment as a percentage of its period total")

	errorCmd.Flags().String("actual", "", "Column with observed values")
	errorCmd.Flags().String("predicted", "", "Column with predicted values")
	errorCmd.Flags().String("count", "", "Sample size column used as the weight")
	errorCmd.Flags().String("y-range", "", "Fixed y range as 'lo,hi' (default 0,1)")

	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
