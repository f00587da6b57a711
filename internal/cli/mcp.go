package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/radialstack/internal/mcp"
	"github.com/matzehuels/radialstack/pkg/pipeline"
)

// mcpCommand creates the mcp command.
func (c *CLI) mcpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol host on stdio",
		Long: `Run the Model Context Protocol host on stdin and stdout. It exposes
render_radial_chart, transform_table and list_style_options to MCP clients.
Logs go to stderr.`,
		Example: `  {"mcpServers": {"radialstack": {"command": "radialstack", "args": ["mcp"]}}}`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.loadConfig(cmd.Flags()); err != nil {
				return err
			}
			return mcp.StartMCPServer(cmd.Context(), pipeline.NewRunner(c.Logger))
		},
	}
}
