package cmd

import (
	"github.com/spf13/cobra"
	"github.com/techdebtgpt/maintsight/internal/contract"
	"github.com/techdebtgpt/maintsight/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the maintsight MCP server",
	Long:  `Launch an MCP server that allows AI agents to run maintainability predictions via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Normal setup; stdout stays reserved for the protocol itself.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, contract.NewLocalGitClient())
	},
}
