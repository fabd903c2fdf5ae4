package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/lushalytics/dateplot/core"
	"github.com/lushalytics/dateplot/internal/contract"
	"github.com/lushalytics/dateplot/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseInput *contract.ConfigRawInput
	src       contract.TableSource
	mgr       contract.HistoryManager
}

// specCollector keeps the chart instead of printing it.
type specCollector struct {
	spec *schema.ChartSpec
}

var _ contract.OutputWriter = &specCollector{} // Compile-time check

func (c *specCollector) WritePlot(spec *schema.ChartSpec, _ *schema.PipelineResult, _ *contract.Config, _ time.Duration) error {
	c.spec = spec
	return nil
}

// newInput copies the base input and applies the arguments every tool shares.
func (h *toolHandler) newInput(kind schema.ChartKind, request mcp.CallToolRequest) *contract.ConfigRawInput {
	input := contract.ConfigRawInput{}
	if h.baseInput != nil {
		input = *h.baseInput
		input.Filter = slices.Clone(h.baseInput.Filter)
	}
	input.KindStr = string(kind)
	input.InputPathStr = request.GetString("path", "")
	input.Date = request.GetString("date", "")
	input.Granularity = request.GetString("granularity", input.Granularity)
	input.Filter = append(input.Filter, request.GetStringSlice("filter", nil)...)
	input.DaysBack = request.GetInt("days_back", input.DaysBack)
	input.IncompleteDrop = request.GetBool("incomplete_drop", input.IncompleteDrop)
	input.Title = request.GetString("title", input.Title)

	// The chart comes back as JSON, never as a file or table
	input.Output = string(schema.JSONOut)
	input.OutputFile = ""
	if input.Emoji == "" {
		input.Emoji = "no"
	}
	if input.Color == "" {
		input.Color = "no"
	}
	return &input
}

// plot validates input, runs the plot and returns the chart as a tool result.
func (h *toolHandler) plot(ctx context.Context, input *contract.ConfigRawInput) (*mcp.CallToolResult, error) {
	cfg := &contract.Config{}
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid plot parameters: %v", err)), nil
	}

	collector := &specCollector{}
	if err := core.ExecutePlot(ctx, cfg, h.src, h.mgr, collector); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("plot failed: %v", err)), nil
	}

	jsonData, err := json.MarshalIndent(collector.spec, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode chart: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handlePlotLine(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input := h.newInput(schema.LineChart, request)
	input.Target = request.GetString("target", "")
	input.Segment = request.GetString("segment", "")
	input.Aggregator = request.GetString("aggregator", "")
	input.Count = request.GetString("count", "")
	return h.plot(ctx, input)
}

func (h *toolHandler) handlePlotBar(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input := h.newInput(schema.BarChart, request)
	input.Target = request.GetString("target", "")
	input.Segment = request.GetString("segment", "")
	input.PartOfWhole = request.GetBool("part_of_whole", false)
	return h.plot(ctx, input)
}

func (h *toolHandler) handlePlotErrorLine(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input := h.newInput(schema.ErrorLineChart, request)
	input.Actual = request.GetString("actual", "")
	input.Predicted = request.GetString("predicted", "")
	input.Count = request.GetString("count", "")
	input.YRange = request.GetString("y_range", "")
	return h.plot(ctx, input)
}
