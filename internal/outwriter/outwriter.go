// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/lushalytics/dateplot/internal/contract"
	"github.com/lushalytics/dateplot/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

var _ contract.OutputWriter = &OutWriter{} // Compile-time check

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WritePlot prints a finished chart using the configured output format.
func (ow *OutWriter) WritePlot(spec *schema.ChartSpec, result *schema.PipelineResult, cfg *contract.Config, duration time.Duration) error {
	return PrintPlotResults(spec, result, cfg, duration)
}
