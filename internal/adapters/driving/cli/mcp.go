package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvec/internal/adapters/driving/mcp"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC. Use --port
to serve streamable HTTP instead.

Tools: search, ingest_file, ingest_directory, list_collections,
get_collection_info, delete_collection, delete_point, list_uploaded_files,
delete_uploaded_file, delete_all_uploaded_files.

Examples:
  # Stdio mode
  docvec mcp

  # HTTP mode (for MCP Inspector, remote access)
  docvec mcp --port 8080

Client configuration:
  {
    "mcpServers": {
      "docvec": {
        "command": "/path/to/docvec",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if err := requireServices(cmd); err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Search:      searchService,
		Ingest:      ingestService,
		Collections: collectionService,
		Uploads:     uploadService,
		Settings:    settingsService,
	})
	if err != nil {
		return err
	}

	if mcpPort > 0 {
		addr := fmt.Sprintf(":%d", mcpPort)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
