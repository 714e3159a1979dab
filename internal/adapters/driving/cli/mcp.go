package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC. Use --http to
serve the streamable HTTP transport instead.

Tools: list_documents, delete_documents, reload_documents, set_language.
Resources: docdeck://documents, docdeck://documents/{filename}.

Examples:
  # Stdio mode (default, for desktop assistants)
  docdeck mcp

  # HTTP mode (for MCP Inspector, remote access)
  docdeck mcp --http localhost:8080`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().String("http", "", "listen address for HTTP mode (empty = stdio)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("http")

	server, err := mcp.NewServer(&mcp.Ports{
		Explorer: explorerService,
		Identity: identityService,
		Language: languageService,
		Files:    fileService,
	})
	if err != nil {
		return err
	}

	if addr != "" {
		cmd.PrintErrf("MCP server listening on http://%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}
	return server.Run(cmd.Context())
}
