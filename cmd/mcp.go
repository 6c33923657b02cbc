package cmd

import (
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/internal/githubfetch"
	"github.com/repopulse/repopulse/internal/mcp"
	"github.com/repopulse/repopulse/internal/reportstore"
	"github.com/repopulse/repopulse/schema"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the RepoPulse MCP server",
	Long:  `Launch an MCP server that allows AI agents to score repository health via standard tools.`,
	// Keep stdout clean; it carries the protocol.
	PreRunE: lightSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		source, err := githubfetch.NewSource(rootCtx, cfg)
		if err != nil {
			return err
		}

		var store contract.ReportStore
		if cfg.StoreBackend != schema.NoneBackend {
			store, err = reportstore.NewStore(cfg.StoreBackend, cfg.StoreDBConnect)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
		}

		return mcp.StartMCPServer(rootCtx, cfg, source, store)
	},
}
