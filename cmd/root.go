package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/lushalytics/dateplot/core"
	"github.com/lushalytics/dateplot/internal/contract"
	"github.com/lushalytics/dateplot/internal/history"
	"github.com/lushalytics/dateplot/internal/outwriter"
	"github.com/lushalytics/dateplot/internal/source"
	"github.com/lushalytics/dateplot/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// profilePrefix is the file prefix for CPU and memory profiles; empty disables profiling.
var profilePrefix string

// Collaborators for the plot commands.
var (
	tableSource  contract.TableSource  = source.FileSource{}
	outputWriter contract.OutputWriter = outwriter.NewOutWriter()
)

// startProfiling starts CPU profiling if enabled.
func startProfiling() error {
	if profilePrefix == "" {
		return nil
	}

	cpuFile, err := os.Create(profilePrefix + ".cpu.prof")
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		return fmt.Errorf("could not start CPU profiling: %w", err)
	}

	// Memory profiling will be captured at the end
	_, err = fmt.Fprintf(os.Stderr, "Profiling enabled. CPU profile: %s.cpu.prof, Memory profile: %s.mem.prof\n", profilePrefix, profilePrefix)
	return err
}

// stopProfiling stops profiling and writes memory profile.
func stopProfiling() error {
	if profilePrefix == "" {
		return nil
	}

	pprof.StopCPUProfile()

	memFile, err := os.Create(profilePrefix + ".mem.prof")
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer func() { _ = memFile.Close() }()

	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}

	_, err = fmt.Fprintf(os.Stderr, "Profiling complete. Use 'go tool pprof %s.cpu.prof' to analyze.\n", profilePrefix)
	return err
}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "dateplot",
	Short: "Bucket dated rows by day, week or month and chart them.",
	Long: `Dateplot turns a flat table of dated rows into time-bucketed aggregates
and declarative chart specifications (line, error line, bar).`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig sets up config file lookup, ENV variables and defaults.
func initConfig() {
	setConfigFile()

	// Set environment variable prefix
	viper.SetEnvPrefix("DATEPLOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("granularity", contract.DefaultGranularity)
	viper.SetDefault("days-back", contract.DefaultDaysBack)
	viper.SetDefault("week-start", contract.DefaultWeekStart)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("history-backend", schema.SQLiteBackend)
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("emoji", "no")
	viper.SetDefault("color", "yes")
}

// setConfigFile points Viper at --config or the default .dateplot.yaml lookup.
func setConfigFile() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".dateplot") // Name of config file (without extension)
	viper.SetConfigType("yaml")      // We'll use YAML format
	viper.AddConfigPath(".")         // Look in the current directory
	viper.AddConfigPath("$HOME")     // Look in the home directory
}

// loadConfigFile reads the config file if present. A missing file is fine.
func loadConfigFile() error {
	setConfigFile()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// unmarshalInput merges defaults, file, env and flags into the raw input struct.
// The command's local flags are bound here so commands can share flag names.
func unmarshalInput(cmd *cobra.Command) error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding %s flags: %w", cmd.Name(), err)
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return nil
}

// plotSetup unmarshals config and runs validation for one plot kind.
func plotSetup(kind schema.ChartKind) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		profilePrefix = viper.GetString("profile")
		if err := startProfiling(); err != nil {
			return fmt.Errorf("failed to start profiling: %w", err)
		}

		// 1. Read config file, env and flags.
		if err := unmarshalInput(cmd); err != nil {
			return err
		}

		// 2. Handle positional arguments (which Viper doesn't do).
		input.KindStr = string(kind)
		if len(args) == 1 {
			input.InputPathStr = args[0]
		}

		// 3. Run all validation and complex parsing.
		if err := contract.ProcessAndValidate(cfg, input); err != nil {
			return err
		}

		// 4. Initialize run history with validated config
		if err := history.InitHistory(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			return err
		}
		return nil
	}
}

// runPlot executes the plot described by the global config.
func runPlot(_ *cobra.Command, _ []string) {
	if err := core.ExecutePlot(rootCtx, cfg, tableSource, history.Manager, outputWriter); err != nil {
		contract.LogFatal(fmt.Sprintf("Cannot plot %s", cfg.InputPath), err)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// StopProfiling stops profiling if enabled.
func StopProfiling() error {
	return stopProfiling()
}
