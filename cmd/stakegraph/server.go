package stakegraph

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stakegraph/stakegraph/pkg/config"
	"github.com/stakegraph/stakegraph/pkg/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the StakeGraph HTTP server",
	Long: `Start the StakeGraph HTTP server to provide REST API access to the
staked knowledge graph.

The server provides endpoints for:
- Account lookup with ranked positions
- Follower and following enumeration with interest enrichment
- Searching staked atoms
- Health checks

Configuration can be provided through config files, environment variables, or command-line flags.`,
	RunE: runServer,
}

var (
	serverHost string
	serverPort int
	serverMode string
)

func init() {
	rootCmd.AddCommand(serverCmd)

	// Server-specific flags
	serverCmd.Flags().StringVar(&serverHost, "host", "localhost", "Server host")
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Server port")
	serverCmd.Flags().StringVar(&serverMode, "mode", "debug", "Server mode (debug, release, test)")

	// Graph backend flags
	serverCmd.Flags().String("graph-endpoint", "", "Graph backend GraphQL endpoint")
	serverCmd.Flags().String("graph-api-key", "", "Graph backend API key")
	serverCmd.Flags().String("follow-predicate-id", "", "Term id of the follow predicate atom")

	// Telemetry flags
	serverCmd.Flags().String("telemetry-parquet-path", "", "Path to directory for error telemetry")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	overrideConfigWithFlags(cmd, cfg)

	if err := validateServerConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Println("Initializing StakeGraph...")
	graph, cleanup, err := initializeGraph(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize StakeGraph: %w", err)
	}
	defer cleanup()
	defer graph.Close()

	srv := server.New(cfg, graph)
	srv.Setup()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal: %v\n", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		fmt.Println("Server stopped gracefully")
		return nil
	}
}

func overrideConfigWithFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serverHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = serverPort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serverMode
	}

	if cmd.Flags().Changed("graph-endpoint") {
		cfg.Graph.Endpoint, _ = cmd.Flags().GetString("graph-endpoint")
	}
	if cmd.Flags().Changed("graph-api-key") {
		cfg.Graph.APIKey, _ = cmd.Flags().GetString("graph-api-key")
	}
	if cmd.Flags().Changed("follow-predicate-id") {
		cfg.Graph.FollowPredicateID, _ = cmd.Flags().GetString("follow-predicate-id")
	}

	if cmd.Flags().Changed("telemetry-parquet-path") {
		cfg.Telemetry.ParquetPath, _ = cmd.Flags().GetString("telemetry-parquet-path")
	}
}

func validateServerConfig(cfg *config.Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Server.Port)
	}
	if cfg.Graph.Endpoint == "" {
		return fmt.Errorf("graph endpoint is required")
	}
	return nil
}
