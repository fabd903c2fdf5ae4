// Package main provides a performance benchmarking tool for the dateplot CLI.
// It generates synthetic daily tables of increasing size, times each plot kind
// against them with and without run history, and writes a CSV report.
//
// Prerequisites:
// - dateplot binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where the synthetic tables are written
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the averaged timings of one command on one table.
type BenchmarkResult struct {
	Table         string
	Command       string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	NoHistoryRuns int
	HistoryRuns   int
	TableRows     []int
	Segments      []string
	Commands      map[string][]string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:       os.Args[1],
		Timeout:       5 * time.Minute,
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		TableRows:     []int{1_000, 100_000, 1_000_000},
		Segments:      []string{"north", "south", "east", "west", "online"},
		Commands: map[string][]string{
			"line":  {"line", "--date", "day", "--target", "revenue", "--segment", "region", "--aggregator", "avg", "--granularity", "weekly"},
			"bar":   {"bar", "--date", "day", "--target", "orders", "--segment", "region", "--granularity", "monthly"},
			"error": {"error", "--date", "day", "--actual", "clicked", "--predicted", "p_click", "--count", "impressions", "--granularity", "weekly"},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	tables, err := generateTables(config)
	if err != nil {
		fmt.Printf("Failed to generate tables: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, tables)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the dateplot binary and the work dir exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("dateplot"); err != nil {
		return fmt.Errorf("dateplot binary not found in PATH")
	}
	if info, err := os.Stat(config.WorkDir); err != nil || !info.IsDir() {
		return fmt.Errorf("work dir %s is not a directory", config.WorkDir)
	}
	return nil
}

// generateTables writes one synthetic CSV per configured size and returns their paths.
// Rows are spread over the last two years so every granularity gets many buckets.
func generateTables(config BenchmarkConfig) ([]string, error) {
	rng := rand.New(rand.NewPCG(42, 7))
	end := time.Now().UTC().Truncate(24 * time.Hour)
	const spanDays = 730

	var paths []string
	for _, n := range config.TableRows {
		path := filepath.Join(config.WorkDir, fmt.Sprintf("dateplot_bench_%d.csv", n))
		fmt.Printf("Generating %s\n", path)

		file, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		writer := csv.NewWriter(file)
		if err := writer.Write([]string{"day", "region", "revenue", "orders", "clicked", "p_click", "impressions"}); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("failed to write CSV header: %w", err)
		}
		for i := range n {
			day := end.AddDate(0, 0, -(i % spanDays))
			p := rng.Float64()
			record := []string{
				day.Format("2006-01-02"),
				config.Segments[rng.IntN(len(config.Segments))],
				strconv.FormatFloat(rng.Float64()*500, 'f', 2, 64),
				strconv.Itoa(rng.IntN(40)),
				strconv.FormatFloat(p+(rng.Float64()-0.5)/10, 'f', 4, 64),
				strconv.FormatFloat(p, 'f', 4, 64),
				strconv.Itoa(100 + rng.IntN(20_000)),
			}
			if err := writer.Write(record); err != nil {
				_ = file.Close()
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			_ = file.Close()
			return nil, err
		}
		if err := file.Close(); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// runBenchmarks executes all commands against every generated table
func runBenchmarks(config BenchmarkConfig, tables []string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d tables, %v timeout, no-history: %d runs, history: %d runs\n",
		len(tables), config.Timeout, config.NoHistoryRuns, config.HistoryRuns)

	historyDB := filepath.Join(config.WorkDir, "dateplot_bench_history.db")
	for _, table := range tables {
		fmt.Printf("Benchmarking %s\n", filepath.Base(table))
		for _, command := range []string{"line", "bar", "error"} {
			results = append(results, runBenchmarkSuite(config, table, command, historyDB))
		}
	}
	_ = os.Remove(historyDB)

	return results
}

// runBenchmarkSuite runs a command without history, then with a SQLite history store
func runBenchmarkSuite(config BenchmarkConfig, table, command, historyDB string) BenchmarkResult {
	runPhase := func(backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s %s phase (%d runs)\n", command, phaseName, numRuns)
		cold, times := runBenchmark(config, table, command, backend, historyDB, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	_, noHistoryAvg := runPhase("none", config.NoHistoryRuns, "No-history")
	coldTime, warmAvg := runPhase("sqlite", config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Table:         filepath.Base(table),
		Command:       command,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes one plot command numRuns times and returns the cold time and warm times
func runBenchmark(config BenchmarkConfig, table, command, backend, historyDB string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := append([]string{}, config.Commands[command]...)
	args = append(args, table, "--days-back", "0", "--emoji", "no", "--history-backend", backend)
	if backend == "sqlite" {
		args = append(args, "--history-db-connect", historyDB)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("dateplot", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks the summary line printed after a text plot
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Plotted") && strings.Contains(outputStr, "History backend:")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/dateplot_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"table", "cmd", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Table, result.Command, result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "line", "Line Plots:")
	printCommandSummary(results, "bar", "Bar Plots:")
	printCommandSummary(results, "error", "Error Line Plots:")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-28s: No-history: %s, Cold: %s, Warm: %s\n", result.Table, result.NoHistoryTime, result.ColdTime, result.WarmTime)
		}
	}
}
