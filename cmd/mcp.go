package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/cpitrend/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [dataset]",
	Short: "Start the cpitrend MCP server",
	Long: `Launch an MCP server that lets AI agents fill, annotate, report and chart CPI series via standard tools.

The dataset argument is optional: tools accept CSV text or a dataset path per call.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// stdio carries the protocol, so a dataset is not required up front.
		if len(args) == 0 {
			args = []string{"-"}
		}
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		if cfg.DatasetPath == "-" {
			cfg.DatasetPath = ""
		}
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}
