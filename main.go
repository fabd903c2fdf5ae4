// main is the entry point for the dateplot CLI.
package main

import (
	"fmt"
	"os"

	"github.com/lushalytics/dateplot/cmd"
	"github.com/lushalytics/dateplot/internal/history"
)

func main() {
	defer history.CloseHistory()

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		fmt.Fprintln(os.Stderr, "Warn stopping profiler:", stopErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		history.CloseHistory()
		os.Exit(1)
	}
}
