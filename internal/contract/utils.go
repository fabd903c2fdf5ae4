package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/lushalytics/dateplot/schema"
)

// Color variables for console output.
var (
	SmallColor  = color.New(color.FgRed, color.Bold) // SmallColor flags a sample too thin to trust.
	MediumColor = color.New(color.FgYellow)          // MediumColor is standard caution, not bold.
	LargeColor  = color.New(color.FgGreen)           // LargeColor marks a well-populated bucket.
)

// GetColorLabel returns a colored sample size label for console output (table).
// It uses schema.GetSampleSizeLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(n int64) string {
	text := schema.GetSampleSizeLabel(n)

	switch text {
	case schema.LargeSample:
		return LargeColor.Sprint(text)
	case schema.MediumSample:
		return MediumColor.Sprint(text)
	default:
		return SmallColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".dateplot_history.db"
	}
	return filepath.Join(homeDir, ".dateplot_history.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
