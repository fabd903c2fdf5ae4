package mcp

import (
	"testing"

	"github.com/lushalytics/dateplot/internal/contract"
	"github.com/lushalytics/dateplot/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
)

func toolRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Name: "plot_line", Arguments: args}}
}

func TestNewInput_InheritsServerDefaults(t *testing.T) {
	h := &toolHandler{baseInput: &contract.ConfigRawInput{
		DaysBack:       contract.DefaultDaysBack,
		IncompleteDrop: true,
		Granularity:    "weekly",
		Filter:         []string{"region=east"},
		Output:         "csv",
		OutputFile:     "out.csv",
	}}

	input := h.newInput(schema.LineChart, toolRequest(map[string]any{"path": "sales.csv", "date": "date"}))
	assert.Equal(t, contract.DefaultDaysBack, input.DaysBack)
	assert.True(t, input.IncompleteDrop)
	assert.Equal(t, "weekly", input.Granularity)
	assert.Equal(t, string(schema.JSONOut), input.Output)
	assert.Empty(t, input.OutputFile)
	assert.Equal(t, "no", input.Emoji)
	assert.Equal(t, "no", input.Color)
}

func TestNewInput_ArgumentsOverrideServerDefaults(t *testing.T) {
	base := &contract.ConfigRawInput{DaysBack: contract.DefaultDaysBack, Filter: []string{"region=east"}}
	h := &toolHandler{baseInput: base}

	input := h.newInput(schema.BarChart, toolRequest(map[string]any{
		"path":            "sales.csv",
		"date":            "date",
		"days_back":       float64(0),
		"incomplete_drop": true,
		"filter":          []any{"channel=web"},
	}))
	assert.Equal(t, 0, input.DaysBack)
	assert.True(t, input.IncompleteDrop)
	assert.Equal(t, []string{"region=east", "channel=web"}, input.Filter)
	assert.Equal(t, []string{"region=east"}, base.Filter, "base input must not change")
	assert.Equal(t, string(schema.BarChart), input.KindStr)
}
