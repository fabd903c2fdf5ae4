// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/lushalytics/dateplot/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Shared tool argument descriptions.
const (
	pathDesc        = "Path to the input table (.csv with a header row, or .json array of objects)."
	dateDesc        = "Column holding the row date."
	granularityDesc = "Bucket size (daily, weekly, monthly). Defaults to 'daily'."
	filterDesc      = "Row filters as 'column=value|value'. Filters on different columns are ANDed."
	daysBackDesc    = "Only keep rows from the last N days (defaults to the server's --days-back). 0 keeps everything."
)

// NewMCPServer initializes and configures the dateplot MCP server without starting it.
// baseInput carries the settings shared by every call (history backend, style).
// This is exposed for unit testing.
func NewMCPServer(baseInput *contract.ConfigRawInput, src contract.TableSource, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Dateplot Chart Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseInput: baseInput,
		src:       src,
		mgr:       mgr,
	}

	// --- 1. Tool: plot_line ---
	s.AddTool(mcp.NewTool("plot_line",
		mcp.WithDescription("Bucket rows by date and return a line chart specification as JSON."),
		mcp.WithString("path", mcp.Description(pathDesc), mcp.Required()),
		mcp.WithString("date", mcp.Description(dateDesc), mcp.Required()),
		mcp.WithString("target", mcp.Description("Comma-separated metric columns to plot."), mcp.Required()),
		mcp.WithString("segment", mcp.Description("Column splitting the chart into one line per value. Needs a single target.")),
		mcp.WithString("aggregator", mcp.Description("Reduction per bucket. Omit for daily pass-through."), mcp.Enum("sum", "avg", "weighted_avg")),
		mcp.WithString("count", mcp.Description("Weight column for weighted_avg.")),
		mcp.WithString("granularity", mcp.Description(granularityDesc), mcp.Enum("daily", "weekly", "monthly")),
		mcp.WithArray("filter", mcp.Description(filterDesc), mcp.WithStringItems()),
		mcp.WithNumber("days_back", mcp.Description(daysBackDesc)),
		mcp.WithBoolean("incomplete_drop", mcp.Description("Drop the latest bucket when its period is not fully observed.")),
		mcp.WithString("title", mcp.Description("Chart title.")),
	), h.handlePlotLine)

	// --- 2. Tool: plot_bar ---
	s.AddTool(mcp.NewTool("plot_bar",
		mcp.WithDescription("Sum a metric per date bucket and return a (stacked) bar chart specification as JSON."),
		mcp.WithString("path", mcp.Description(pathDesc), mcp.Required()),
		mcp.WithString("date", mcp.Description(dateDesc), mcp.Required()),
		mcp.WithString("target", mcp.Description("Metric column to sum."), mcp.Required()),
		mcp.WithString("segment", mcp.Description("Column stacking the bars.")),
		mcp.WithBoolean("part_of_whole", mcp.Description("Plot each segment as a percentage of its period total.")),
		mcp.WithString("granularity", mcp.Description(granularityDesc), mcp.Enum("daily", "weekly", "monthly")),
		mcp.WithArray("filter", mcp.Description(filterDesc), mcp.WithStringItems()),
		mcp.WithNumber("days_back", mcp.Description(daysBackDesc)),
		mcp.WithBoolean("incomplete_drop", mcp.Description("Drop the latest bucket when its period is not fully observed.")),
		mcp.WithString("title", mcp.Description("Chart title.")),
	), h.handlePlotBar)

	// --- 3. Tool: plot_error_line ---
	s.AddTool(mcp.NewTool("plot_error_line",
		mcp.WithDescription("Compare actual and predicted values per date bucket, weighted by a count column."),
		mcp.WithString("path", mcp.Description(pathDesc), mcp.Required()),
		mcp.WithString("date", mcp.Description(dateDesc), mcp.Required()),
		mcp.WithString("actual", mcp.Description("Column with observed values."), mcp.Required()),
		mcp.WithString("predicted", mcp.Description("Column with predicted values."), mcp.Required()),
		mcp.WithString("count", mcp.Description("Sample size column used as the weight."), mcp.Required()),
		mcp.WithString("y_range", mcp.Description("Fixed y range as 'lo,hi'. Defaults to '0,1'.")),
		mcp.WithString("granularity", mcp.Description(granularityDesc), mcp.Enum("daily", "weekly", "monthly")),
		mcp.WithArray("filter", mcp.Description(filterDesc), mcp.WithStringItems()),
		mcp.WithNumber("days_back", mcp.Description(daysBackDesc)),
		mcp.WithBoolean("incomplete_drop", mcp.Description("Drop the latest bucket when its period is not fully observed.")),
		mcp.WithString("title", mcp.Description("Chart title.")),
	), h.handlePlotErrorLine)

	return s
}

// StartMCPServer starts the dateplot MCP server on stdio.
func StartMCPServer(_ context.Context, baseInput *contract.ConfigRawInput, src contract.TableSource, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseInput, src, mgr)
	return server.ServeStdio(s)
}
