package stakegraph

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/stakegraph/stakegraph/pkg/config"
	mcptools "github.com/stakegraph/stakegraph/pkg/mcptools"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Model Context Protocol (MCP) server",
	Long: `Start the Model Context Protocol (MCP) server to provide MCP tool access
to the staked knowledge graph.

The MCP server provides tools for:
- Looking up an account and its ranked positions
- Searching staked atoms
- Enumerating following and followers with interest enrichment

The server can communicate over stdio or HTTP transport and is designed to
work with MCP clients like Claude Desktop or other compatible applications.`,
	RunE: runMCPServer,
}

var (
	mcpTransport string
	mcpHost      string
	mcpPort      int
)

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().StringVar(&mcpTransport, "transport", "stdio", "Transport protocol (stdio, http)")
	mcpCmd.Flags().StringVar(&mcpHost, "mcp-host", "localhost", "Host for HTTP transport")
	mcpCmd.Flags().IntVar(&mcpPort, "mcp-port", 8081, "Port for HTTP transport")
}

func runMCPServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Graph.Endpoint == "" {
		return fmt.Errorf("graph endpoint is required")
	}

	graph, cleanup, err := initializeGraph(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize StakeGraph: %w", err)
	}
	defer cleanup()
	defer graph.Close()

	s := mcptools.NewServer(graph)

	switch mcpTransport {
	case "stdio":
		return server.ServeStdio(s)
	case "http":
		addr := fmt.Sprintf("%s:%d", mcpHost, mcpPort)
		fmt.Printf("Starting MCP server on %s\n", addr)
		return server.NewStreamableHTTPServer(s).Start(addr)
	default:
		return fmt.Errorf("unsupported transport: %s", mcpTransport)
	}
}
