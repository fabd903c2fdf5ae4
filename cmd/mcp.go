package cmd

import (
	"github.com/lushalytics/dateplot/internal/history"
	"github.com/lushalytics/dateplot/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpSetup loads the shared settings and opens run history. Plot parameters
// arrive per tool call, so nothing plot-specific is validated here.
func mcpSetup(cmd *cobra.Command, _ []string) error {
	if err := unmarshalInput(cmd); err != nil {
		return err
	}
	if err := historyConfig(); err != nil {
		return err
	}
	return history.InitHistory(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the dateplot MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents build charts via standard tools:
plot_line, plot_bar and plot_error_line. Each tool returns the chart specification as JSON.`,
	PreRunE: mcpSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, input, tableSource, history.Manager)
	},
}
